// Package services contains application services for the itemkeeper client.
// This file defines the authentication service: credential exchange for a
// token at login and registration.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/client/client"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrUsernameRequired = errors.New("username is required")
)

// AuthService exchanges credentials for a token. Passwords are passed as
// byte slices so callers can wipe them after use.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (string, error)
	Register(ctx context.Context, username, email string, password []byte) (string, error)
}

type authService struct {
	client client.Client
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmailRequired
	}
	if len(password) == 0 {
		return "", ErrPasswordRequired
	}
	return a.client.Login(ctx, email, string(password))
}

func (a *authService) Register(ctx context.Context, username, email string, password []byte) (string, error) {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if username == "" {
		return "", ErrUsernameRequired
	}
	if email == "" {
		return "", ErrEmailRequired
	}
	if len(password) == 0 {
		return "", ErrPasswordRequired
	}
	return a.client.Register(ctx, username, email, string(password))
}
