// Package services contains server-side business logic. This file implements
// UserService, which registers users, verifies credentials and issues access
// tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/config"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenEncoder mints access tokens for a subject.
type TokenEncoder interface {
	Encode(subject string, ttl time.Duration) (string, error)
}

// PasswordHasher hashes and verifies passwords. Hashes are opaque strings.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// UserService provides authentication-related operations:
// - Register: create users and sign them in
// - Login: verify credentials and mint a token
// - CurrentUser: resolve the user behind a token subject
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenEncoder
	passwords   PasswordHasher
	tokenTTL    time.Duration
	newID       func() string

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenEncoder, passwords PasswordHasher, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		passwords:   passwords,
		tokenTTL:    cfg.TokenValidityDuration,
		newID:       uuid.NewString,
	}
}

// Login checks email and password and returns a signed token for the user.
//
// An unknown email and a wrong password both yield
// common.ErrInvalidCredentials. Storage faults yield common.ErrorInternal.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", common.ErrInvalidCredentials
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.burnVerify(password)
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	ok, err := s.passwords.Verify(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("%w: verify password: %v", common.ErrorInternal, err)
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	return s.issue(user.ID)
}

// Register creates a user and returns a token for it, so a new account is
// signed in right away. A taken email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, email, password string) (string, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	if username == "" || email == "" || password == "" {
		return "", common.ErrorValidation
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	user := &models.User{ID: s.newID(), UserName: username, Email: email, PasswordHash: hash}
	repo := s.repomanager.Users(s.db)
	if _, err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", err
		}
		return "", fmt.Errorf("%w: error creating user: %v", common.ErrorInternal, err)
	}

	return s.issue(user.ID)
}

// CurrentUser returns the user with id userID, or common.ErrorNotFound when
// the account no longer exists.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return user, nil
}

// --- helpers below ---

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) issue(userID string) (string, error) {
	token, err := s.tokens.Encode(userID, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}

// burnVerify runs one verification against a throwaway hash so unknown
// accounts take about as long as wrong passwords.
func (s *UserService) burnVerify(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.passwords.Hash("itemkeeper-dummy-password")
	})
	if s.dummyHash != "" {
		_, _ = s.passwords.Verify(password, s.dummyHash)
	}
}
