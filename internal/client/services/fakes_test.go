package services

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/client/models"
)

// fakeClient implements client.Client and records the last call.
type fakeClient struct {
	calls []string

	gotEmail, gotPassword, gotUsername string
	gotToken, gotID                    string
	gotTitle, gotDescription           string

	token string
	items []models.Item
	item  *models.Item
	err   error
}

func (f *fakeClient) Login(_ context.Context, email, password string) (string, error) {
	f.calls = append(f.calls, "login")
	f.gotEmail, f.gotPassword = email, password
	return f.token, f.err
}

func (f *fakeClient) Register(_ context.Context, username, email, password string) (string, error) {
	f.calls = append(f.calls, "register")
	f.gotUsername, f.gotEmail, f.gotPassword = username, email, password
	return f.token, f.err
}

func (f *fakeClient) CurrentUser(_ context.Context, token string) (*models.User, error) {
	f.calls = append(f.calls, "user")
	f.gotToken = token
	return &models.User{ID: "u1"}, f.err
}

func (f *fakeClient) ListItems(_ context.Context, token string) ([]models.Item, error) {
	f.calls = append(f.calls, "list")
	f.gotToken = token
	return f.items, f.err
}

func (f *fakeClient) CreateItem(_ context.Context, token, title, description string) (*models.Item, error) {
	f.calls = append(f.calls, "create")
	f.gotToken, f.gotTitle, f.gotDescription = token, title, description
	return f.item, f.err
}

func (f *fakeClient) UpdateItem(_ context.Context, token, id, title, description string) (*models.Item, error) {
	f.calls = append(f.calls, "update")
	f.gotToken, f.gotID, f.gotTitle, f.gotDescription = token, id, title, description
	return f.item, f.err
}

func (f *fakeClient) DeleteItem(_ context.Context, token, id string) error {
	f.calls = append(f.calls, "delete")
	f.gotToken, f.gotID = token, id
	return f.err
}
