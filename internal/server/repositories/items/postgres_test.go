package items

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	itemID  = "6f1c2a4e-8d3b-4c11-9a55-0d7e3b2f9a10"
	ownerID = "0b9e6c1a-2f4d-4e8a-8c3b-5a7d9e1f2c34"

	selectByIDQ    = `(?s)^SELECT\s+id,\s*user_id,\s*title,\s*description,\s*created_at\s+FROM\s+items\s+WHERE\s+id\s*=\s*\$1$`
	selectByOwnerQ = `(?s)^SELECT\s+id,\s*user_id,\s*title,\s*description,\s*created_at\s+FROM\s+items\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC$`
	insertQ        = `(?s)^INSERT\s+INTO\s+items\s*\(id,\s*user_id,\s*title,\s*description\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at$`
	updateQ        = `(?s)^UPDATE\s+items\s+SET\s+title\s*=\s*\$2,\s*description\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$1$`
	deleteQ        = `(?s)^DELETE\s+FROM\s+items\s+WHERE\s+id\s*=\s*\$1$`
)

var (
	cols = []string{"id", "user_id", "title", "description", "created_at"}
	t0   = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestFindByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectByIDQ).WithArgs(itemID).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(itemID, ownerID, "milk", "2l", t0))

	got, err := repo.FindByID(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, &models.Item{ID: itemID, UserID: ownerID, Title: "milk", Description: "2l", CreatedAt: t0}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectByIDQ).WithArgs(itemID).WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), itemID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFindByID_InvalidIDSkipsQuery(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	_, err := repo.FindByID(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectByIDQ).WithArgs(itemID).WillReturnError(errors.New("boom"))

	_, err := repo.FindByID(context.Background(), itemID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, err.Error(), "db error")
}

func TestFindByOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectByOwnerQ).WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("b", ownerID, "newer", "", t0.Add(time.Hour)).
			AddRow("a", ownerID, "older", "", t0))

	got, err := repo.FindByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "newer", got[0].Title)
	assert.Equal(t, "older", got[1].Title)
}

func TestFindByOwner_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectByOwnerQ).WithArgs(ownerID).WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.FindByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindByOwner_RowError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectByOwnerQ).WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("a", ownerID, "x", "", t0).
			RowError(0, errors.New("net")))

	_, err := repo.FindByOwner(context.Background(), ownerID)
	require.Error(t, err)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).WithArgs(itemID, ownerID, "milk", "2l").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(t0))

	got, err := repo.Create(context.Background(), &models.Item{ID: itemID, UserID: ownerID, Title: "milk", Description: "2l"})
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(t0))
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(updateQ).WithArgs(itemID, "T", "D").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateQ).WithArgs(itemID, "T", "D").WillReturnResult(sqlmock.NewResult(0, 0))

	it := &models.Item{ID: itemID, UserID: ownerID, Title: "T", Description: "D"}
	require.NoError(t, repo.Update(context.Background(), it))
	require.ErrorIs(t, repo.Update(context.Background(), it), common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteQ).WithArgs(itemID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteQ).WithArgs(itemID).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(deleteQ).WithArgs(itemID).WillReturnError(errors.New("boom"))

	require.NoError(t, repo.Delete(context.Background(), itemID))
	require.ErrorIs(t, repo.Delete(context.Background(), itemID), common.ErrorNotFound)
	require.Error(t, repo.Delete(context.Background(), itemID))
}
