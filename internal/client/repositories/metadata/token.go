package metadata

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
)

// SQLiteTokenStore keeps the token and its expiry hint in the metadata table.
// Both keys are always written and removed together.
type SQLiteTokenStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteTokenStore(db *sql.DB) *SQLiteTokenStore {
	return &SQLiteTokenStore{db: db, now: time.Now}
}

// LoadToken returns the stored token, or "" when there is none or its hint
// has passed. An expired token is removed.
func (s *SQLiteTokenStore) LoadToken(ctx context.Context) (string, error) {
	repo := NewSQLiteRepository(s.db)

	tok, err := repo.Get(ctx, KeyToken)
	if err != nil || len(tok) == 0 {
		return "", err
	}

	raw, err := repo.Get(ctx, KeyTokenExpiresAt)
	if err != nil {
		return "", err
	}
	if raw != nil {
		exp, perr := time.Parse(time.RFC3339, string(raw))
		if perr != nil || !s.now().Before(exp) {
			return "", s.ClearToken(ctx)
		}
	}

	return string(tok), nil
}

// SaveToken stores token with its expiry hint as one atomic pair.
func (s *SQLiteTokenStore) SaveToken(ctx context.Context, token string, expiresAt time.Time) error {
	return dbx.Atomic(ctx, s.db,
		setKey(KeyToken, []byte(token)),
		setKey(KeyTokenExpiresAt, []byte(expiresAt.UTC().Format(time.RFC3339))),
	)
}

// ClearToken removes the token and its hint together.
func (s *SQLiteTokenStore) ClearToken(ctx context.Context) error {
	return dbx.Atomic(ctx, s.db, deleteKey(KeyToken), deleteKey(KeyTokenExpiresAt))
}

func setKey(key string, value []byte) dbx.Step {
	return func(ctx context.Context, q dbx.DBTX) error {
		return NewSQLiteRepository(q).Set(ctx, key, value)
	}
}

func deleteKey(key string) dbx.Step {
	return func(ctx context.Context, q dbx.DBTX) error {
		return NewSQLiteRepository(q).Delete(ctx, key)
	}
}
