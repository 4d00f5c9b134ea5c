package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/railway-reservation/internal/model"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, *SeatSlotRepo, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return mock, NewSeatSlotRepo(db), func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	}
}

func TestMarkBookedTxClaimsSeat(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE seat_slots SET status = 'BOOKED'").
		WithArgs(uint64(7), uint64(3), uint32(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	db := repo.db
	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.MarkBookedTx(context.Background(), tx, 7, 3, 12))
	require.NoError(t, tx.Commit())
}

func TestMarkBookedTxConflictOnZeroRows(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE seat_slots SET status = 'BOOKED'").
		WithArgs(uint64(7), uint64(3), uint32(12)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := repo.db.Begin()
	require.NoError(t, err)
	err = repo.MarkBookedTx(context.Background(), tx, 7, 3, 12)
	assert.ErrorIs(t, err, ErrSeatConflict)
	require.NoError(t, tx.Rollback())
}

func TestMarkAvailableTxIdempotent(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE seat_slots SET status = 'AVAILABLE'").
		WithArgs(uint64(7), uint64(3), uint32(12)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := repo.db.Begin()
	require.NoError(t, err)
	assert.NoError(t, repo.MarkAvailableTx(context.Background(), tx, 7, 3, 12))
	require.NoError(t, tx.Commit())
}

func TestEnsureForScheduleTxBulkInsert(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	comps := []model.Compartment{
		{ID: 10, TotalSeats: 3},
		{ID: 11, TotalSeats: 2},
	}

	mock.ExpectBegin()
	// 5 seats, 4 args each
	mock.ExpectExec("INSERT IGNORE INTO seat_slots").
		WithArgs(
			uint64(7), uint64(10), uint32(1), model.SeatAvailable,
			uint64(7), uint64(10), uint32(2), model.SeatAvailable,
			uint64(7), uint64(10), uint32(3), model.SeatAvailable,
			uint64(7), uint64(11), uint32(1), model.SeatAvailable,
			uint64(7), uint64(11), uint32(2), model.SeatAvailable,
		).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	tx, err := repo.db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.EnsureForScheduleTx(context.Background(), tx, 7, comps))
	require.NoError(t, tx.Commit())
}

func TestEnsureForScheduleTxNoCompartmentsNoQuery(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectCommit()

	tx, err := repo.db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.EnsureForScheduleTx(context.Background(), tx, 7, nil))
	require.NoError(t, tx.Commit())
}

func TestSeatMapScansOrderedEntries(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	cols := []string{"compartment_id", "compartment_number", "class_id", "class_name", "seat_number", "is_booked"}
	mock.ExpectQuery("SELECT ss.compartment_id, tc.compartment_number").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(10, 1, 2, "First", 1, false).
			AddRow(10, 1, 2, "First", 2, true).
			AddRow(10, 1, 2, "First", 3, false).
			AddRow(11, 2, 3, "Sleeper", 1, false).
			AddRow(11, 2, 3, "Sleeper", 2, false))

	entries, err := repo.SeatMap(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, uint64(10), entries[0].CompartmentID)
	assert.True(t, entries[1].IsBooked)
	assert.Equal(t, "Sleeper", entries[3].ClassName)
	assert.Equal(t, uint32(2), entries[4].SeatNumber)
}
