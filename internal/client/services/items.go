package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/client/client"
	"github.com/dmitrijs2005/itemkeeper/internal/client/models"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrIDRequired      = errors.New("item id is required")
	ErrNothingToUpdate = errors.New("nothing to update")
)

// ItemService manages the caller's items. Every call takes the session token.
type ItemService interface {
	// List returns items matching query, newest first.
	List(ctx context.Context, token, query string) ([]models.Item, error)
	Add(ctx context.Context, token, title, description string) (*models.Item, error)
	// Edit changes only the non-empty fields.
	Edit(ctx context.Context, token, id, title, description string) (*models.Item, error)
	Delete(ctx context.Context, token, id string) error
}

type itemService struct {
	client client.Client
}

func NewItemService(c client.Client) ItemService {
	return &itemService{client: c}
}

func (s *itemService) List(ctx context.Context, token, query string) ([]models.Item, error) {
	all, err := s.client.ListItems(ctx, token)
	if err != nil {
		return nil, err
	}

	out := make([]models.Item, 0, len(all))
	for _, it := range all {
		if it.Matches(query) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *itemService) Add(ctx context.Context, token, title, description string) (*models.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	return s.client.CreateItem(ctx, token, title, strings.TrimSpace(description))
}

func (s *itemService) Edit(ctx context.Context, token, id, title, description string) (*models.Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrIDRequired
	}
	title, description = strings.TrimSpace(title), strings.TrimSpace(description)
	if title == "" && description == "" {
		return nil, ErrNothingToUpdate
	}
	return s.client.UpdateItem(ctx, token, id, title, description)
}

func (s *itemService) Delete(ctx context.Context, token, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrIDRequired
	}
	return s.client.DeleteItem(ctx, token, id)
}
