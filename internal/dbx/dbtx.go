// Package dbx holds the database/sql seams shared by repositories: DBTX, the
// handle both *sql.DB and *sql.Tx satisfy, and Atomic, which applies a group
// of writes all-or-nothing.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the subset of database/sql used by the repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxBeginner starts transactions. *sql.DB and *sql.Conn implement it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Step is one write of an atomic group. It must use q, not the outer handle.
type Step func(ctx context.Context, q DBTX) error

// Atomic runs steps in order inside one transaction and commits only if all
// of them succeed. The session token and its expiry hint are written and
// removed this way so a reader never sees one without the other.
//
// A failing step stops the group; its error is returned wrapped with the step
// index. A panicking step rolls the transaction back before the panic
// continues.
func Atomic(ctx context.Context, db TxBeginner, steps ...Step) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	// No-op once committed.
	defer func() { _ = tx.Rollback() }()

	for i, step := range steps {
		if err := step(ctx, tx); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
