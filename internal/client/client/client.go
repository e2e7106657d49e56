package client

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/client/models"
)

// Client is the API contract the CLI depends on. Calls that need an identity
// take the token explicitly; the client itself keeps no session.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, username, email, password string) (string, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	ListItems(ctx context.Context, token string) ([]models.Item, error)
	CreateItem(ctx context.Context, token, title, description string) (*models.Item, error)
	UpdateItem(ctx context.Context, token, id, title, description string) (*models.Item, error)
	DeleteItem(ctx context.Context, token, id string) error
}
