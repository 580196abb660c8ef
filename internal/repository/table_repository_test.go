package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockTableRepo(t *testing.T) (*TableRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTableRepo(db), mock
}

const deleteGuardQuery = `SELECT COUNT(*) FROM reservations WHERE table_id = ? AND start_time > UTC_TIMESTAMP()`

func TestTableDeleteRejectedWhileUpcomingReservationExists(t *testing.T) {
	repo, mock := newMockTableRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(deleteGuardQuery)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 7)

	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableDeleteSucceedsWithOnlyPastReservations(t *testing.T) {
	repo, mock := newMockTableRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(deleteGuardQuery)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tables WHERE id = ?`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 7)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableDeleteMissingTable(t *testing.T) {
	repo, mock := newMockTableRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(deleteGuardQuery)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tables WHERE id = ?`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedDefaultsInsertsIntoEmptyRegistry(t *testing.T) {
	repo, mock := newMockTableRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM tables`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO tables (name, capacity) VALUES (?, ?),(?, ?),(?, ?),(?, ?),(?, ?),(?, ?)`)).
		WithArgs(
			"Window 1", 2,
			"Window 2", 2,
			"Center 4", 4,
			"Center 5", 4,
			"Patio 6", 6,
			"Banquet", 8,
		).
		WillReturnResult(sqlmock.NewResult(1, 6))
	mock.ExpectCommit()

	inserted, err := repo.SeedDefaults(context.Background())

	require.NoError(t, err)
	assert.Equal(t, len(defaultTables), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedDefaultsSkipsPopulatedRegistry(t *testing.T) {
	repo, mock := newMockTableRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM tables`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectRollback()

	inserted, err := repo.SeedDefaults(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
