package items

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*models.Item, error)
	FindByOwner(ctx context.Context, userID string) ([]models.Item, error)
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id string) error
}
