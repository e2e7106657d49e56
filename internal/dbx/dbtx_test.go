package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openKV(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func put(k, v string) Step {
	return func(ctx context.Context, q DBTX) error {
		_, err := q.ExecContext(ctx, `INSERT INTO kv (k, v) VALUES (?, ?)
			ON CONFLICT(k) DO UPDATE SET v = excluded.v`, k, v)
		return err
	}
}

func del(k string) Step {
	return func(ctx context.Context, q DBTX) error {
		_, err := q.ExecContext(ctx, `DELETE FROM kv WHERE k = ?`, k)
		return err
	}
}

func keys(t *testing.T, db *sql.DB) map[string]string {
	t.Helper()
	rows, err := db.Query(`SELECT k, v FROM kv`)
	require.NoError(t, err)
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		require.NoError(t, rows.Scan(&k, &v))
		out[k] = v
	}
	require.NoError(t, rows.Err())
	return out
}

func TestAtomic_WritesPairTogether(t *testing.T) {
	db := openKV(t)
	ctx := context.Background()

	require.NoError(t, Atomic(ctx, db, put("token", "abc"), put("token_expires_at", "2030-01-01T00:00:00Z")))
	assert.Equal(t, map[string]string{"token": "abc", "token_expires_at": "2030-01-01T00:00:00Z"}, keys(t, db))

	require.NoError(t, Atomic(ctx, db, del("token"), del("token_expires_at")))
	assert.Empty(t, keys(t, db))
}

func TestAtomic_FailedSecondStepLeavesNoHalfPair(t *testing.T) {
	db := openKV(t)
	ctx := context.Background()
	require.NoError(t, Atomic(ctx, db, put("token", "old"), put("token_expires_at", "old-exp")))

	boom := errors.New("disk full")
	err := Atomic(ctx, db, put("token", "new"), func(context.Context, DBTX) error { return boom })

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "step 1")
	assert.Equal(t, map[string]string{"token": "old", "token_expires_at": "old-exp"}, keys(t, db),
		"the previous pair must survive untouched")
}

func TestAtomic_StopsAtFirstFailure(t *testing.T) {
	db := openKV(t)

	ran := false
	err := Atomic(context.Background(), db,
		func(context.Context, DBTX) error { return sql.ErrConnDone },
		func(context.Context, DBTX) error {
			ran = true
			return nil
		},
	)

	require.ErrorIs(t, err, sql.ErrConnDone)
	assert.Contains(t, err.Error(), "step 0")
	assert.False(t, ran)
}

func TestAtomic_PanicRollsBack(t *testing.T) {
	db := openKV(t)

	func() {
		defer func() {
			require.NotNil(t, recover(), "panic must propagate")
		}()
		_ = Atomic(context.Background(), db, put("token", "abc"), func(context.Context, DBTX) error {
			panic("kaput")
		})
	}()

	assert.Empty(t, keys(t, db))
}

func TestAtomic_NoStepsCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	require.NoError(t, Atomic(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAtomic_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	err = Atomic(context.Background(), db, put("token", "abc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin tx")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAtomic_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO kv").WithArgs("token", "abc").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errors.New("locked"))

	err = Atomic(context.Background(), db, put("token", "abc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit tx")
	require.NoError(t, mock.ExpectationsWereMet())
}
