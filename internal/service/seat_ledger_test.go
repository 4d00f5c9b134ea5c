package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/railway-reservation/internal/repository"
)

func newLedger(t *testing.T) (sqlmock.Sqlmock, *SeatLedger, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	ledger := NewSeatLedger(
		repository.NewScheduleRepo(db),
		repository.NewCompartmentRepo(db),
		repository.NewSeatSlotRepo(db),
		zap.NewNop(),
	)
	return mock, ledger, func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	}
}

var scheduleCols = []string{
	"schedule_id", "train_id", "from_station", "to_station",
	"departure_time", "arrival_time", "distance_km", "days_of_operation", "is_active",
}

func TestEnsureSlotsNoCompartments(t *testing.T) {
	mock, ledger, done := newLedger(t)
	defer done()

	mock.ExpectQuery("SELECT schedule_id, train_id, from_station").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(scheduleCols).
			AddRow(7, 4, 1, 2, "08:00:00", "14:30:00", 100, "Daily", true))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT compartment_id, train_id, class_id, compartment_number, total_seats").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"compartment_id", "train_id", "class_id", "compartment_number", "total_seats"}))
	mock.ExpectRollback()

	_, err := ledger.EnsureSlots(context.Background(), 7)
	assert.ErrorIs(t, err, repository.ErrNoCompartments)
}

func TestEnsureSlotsScheduleMissing(t *testing.T) {
	mock, ledger, done := newLedger(t)
	defer done()

	mock.ExpectQuery("SELECT schedule_id, train_id, from_station").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows(scheduleCols))

	_, err := ledger.EnsureSlots(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrScheduleNotFound)
}

func TestSeatMapMaterializesThenReads(t *testing.T) {
	mock, ledger, done := newLedger(t)
	defer done()

	mock.ExpectQuery("SELECT schedule_id, train_id, from_station").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(scheduleCols).
			AddRow(7, 4, 1, 2, "08:00:00", "14:30:00", 100, "Daily", true))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT compartment_id, train_id, class_id, compartment_number, total_seats").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"compartment_id", "train_id", "class_id", "compartment_number", "total_seats"}).
			AddRow(3, 4, 2, 1, 2))
	mock.ExpectExec("INSERT IGNORE INTO seat_slots").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT ss.compartment_id, tc.compartment_number").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"compartment_id", "compartment_number", "class_id", "class_name", "seat_number", "is_booked"}).
			AddRow(3, 1, 2, "First", 1, false).
			AddRow(3, 1, 2, "First", 2, true))

	entries, err := ledger.SeatMap(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, entries[0].IsBooked)
	assert.True(t, entries[1].IsBooked)
	assert.Equal(t, "First", entries[0].ClassName)
}
