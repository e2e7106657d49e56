package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ItemService manages items. Ownership of existing items is checked before
// Update and Delete are called, so they trust the item they are given.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	newID       func() string
}

func NewItemService(db *sql.DB, m repomanager.RepositoryManager) *ItemService {
	return &ItemService{db: db, repomanager: m, newID: uuid.NewString}
}

// List returns the items owned by userID, newest first.
func (s *ItemService) List(ctx context.Context, userID string) ([]models.Item, error) {
	items, err := s.repomanager.Items(s.db).FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return items, nil
}

// Get loads a single item. Unknown ids yield common.ErrorNotFound.
func (s *ItemService) Get(ctx context.Context, id string) (*models.Item, error) {
	it, err := s.repomanager.Items(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return it, nil
}

// Create stores a new item owned by userID. Title is required.
func (s *ItemService) Create(ctx context.Context, userID, title, description string) (*models.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	it := &models.Item{ID: s.newID(), UserID: userID, Title: title, Description: strings.TrimSpace(description)}
	created, err := s.repomanager.Items(s.db).Create(ctx, it)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return created, nil
}

// Update applies the non-empty fields of patch to item and stores it.
func (s *ItemService) Update(ctx context.Context, item *models.Item, patch models.ItemPatch) (*models.Item, error) {
	// Whitespace-only fields count as empty and leave the value unchanged.
	patch.Title = strings.TrimSpace(patch.Title)
	patch.Description = strings.TrimSpace(patch.Description)

	updated := *item
	patch.Apply(&updated)

	if err := s.repomanager.Items(s.db).Update(ctx, &updated); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return &updated, nil
}

// Delete removes the item with the given id.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Items(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return nil
}
