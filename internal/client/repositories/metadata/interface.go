// Package metadata stores small key/value settings of the client, such as the
// persisted session token, in the local SQLite database.
package metadata

import (
	"context"
	"time"
)

// Repository is a key/value table. Get returns (nil, nil) for absent keys.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Keys used for the persisted session.
const (
	KeyToken          = "token"
	KeyTokenExpiresAt = "token_expires_at"
)

// TokenStore persists the session token together with a local expiry hint.
type TokenStore interface {
	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string, expiresAt time.Time) error
	ClearToken(ctx context.Context) error
}
