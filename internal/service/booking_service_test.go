package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/railway-reservation/internal/model"
	"github.com/iliyamo/railway-reservation/internal/queue"
	"github.com/iliyamo/railway-reservation/internal/repository"
)

type svcFixture struct {
	mock      sqlmock.Sqlmock
	svc       *BookingService
	confirmed chan queue.BookingConfirmedEvent
	cancelled chan queue.BookingCancelledEvent
	close     func()
}

func newFixture(t *testing.T) *svcFixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	schedules := repository.NewScheduleRepo(db)
	compartments := repository.NewCompartmentRepo(db)
	classes := repository.NewClassRepo(db)
	slots := repository.NewSeatSlotRepo(db)
	bookings := repository.NewBookingRepo(db)
	ledger := NewSeatLedger(schedules, compartments, slots, zap.NewNop())
	svc := NewBookingService(schedules, compartments, classes, slots, bookings, ledger, zap.NewNop())

	f := &svcFixture{
		mock:      mock,
		svc:       svc,
		confirmed: make(chan queue.BookingConfirmedEvent, 1),
		cancelled: make(chan queue.BookingCancelledEvent, 1),
	}
	svc.publishConfirmed = func(_ context.Context, ev queue.BookingConfirmedEvent) error {
		f.confirmed <- ev
		return nil
	}
	svc.publishCancelled = func(_ context.Context, ev queue.BookingCancelledEvent) error {
		f.cancelled <- ev
		return nil
	}
	f.close = func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	}
	return f
}

var scheduleDetailCols = []string{
	"schedule_id", "train_id", "from_station", "to_station",
	"departure_time", "arrival_time", "distance_km", "days_of_operation", "is_active",
	"train_name", "fare_per_km", "from_name", "to_name",
}

func (f *svcFixture) expectScheduleDetail(active bool) {
	f.mock.ExpectQuery("SELECT s.schedule_id, s.train_id, s.from_station").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(scheduleDetailCols).
			AddRow(7, 4, 1, 2, "08:00:00", "14:30:00", 100, "Daily", active, "Night Express", 2.5, "Central", "Harbour"))
}

func (f *svcFixture) expectCompartment(totalSeats uint32) {
	f.mock.ExpectQuery("SELECT tc.compartment_id, tc.train_id, tc.class_id").
		WithArgs(uint64(3), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"compartment_id", "train_id", "class_id", "compartment_number", "total_seats"}).
			AddRow(3, 4, 2, 1, totalSeats))
}

func (f *svcFixture) expectClass() {
	f.mock.ExpectQuery("SELECT class_id, class_name, fare_multiplier FROM train_classes").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"class_id", "class_name", "fare_multiplier"}).
			AddRow(2, "First", 1.5))
}

func (f *svcFixture) expectLayoutList() {
	f.mock.ExpectQuery("SELECT compartment_id, train_id, class_id, compartment_number, total_seats").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"compartment_id", "train_id", "class_id", "compartment_number", "total_seats"}).
			AddRow(3, 4, 2, 1, 2))
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		UserID:          5,
		ScheduleID:      7,
		CompartmentID:   3,
		SeatNumber:      2,
		PassengerName:   "Asha Verma",
		PassengerAge:    34,
		PassengerGender: "female",
	}
}

func TestCreateBookingHappyPath(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.expectScheduleDetail(true)
	f.expectCompartment(2)
	f.expectClass()

	f.mock.ExpectBegin()
	f.expectLayoutList()
	f.mock.ExpectExec("INSERT IGNORE INTO seat_slots").
		WillReturnResult(sqlmock.NewResult(0, 2))
	f.mock.ExpectExec("UPDATE seat_slots SET status = 'BOOKED'").
		WithArgs(uint64(7), uint64(3), uint32(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectQuery("SELECT booking_id FROM bookings").
		WithArgs(uint64(7), uint64(3), uint32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id"}))
	f.mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))
	now := time.Now().UTC()
	f.mock.ExpectQuery("SELECT booking_date, created_at, updated_at FROM bookings").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"booking_date", "created_at", "updated_at"}).
			AddRow(now, now, now))
	f.mock.ExpectCommit()

	b, err := f.svc.CreateBooking(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), b.ID)
	assert.Equal(t, model.BookingConfirmed, b.Status)
	// fare snapshot: 100km * 2.5 * 1.5
	assert.Equal(t, int64(375), b.FareAmount)
	assert.NotEmpty(t, b.Ref)

	select {
	case ev := <-f.confirmed:
		assert.Equal(t, uint64(42), ev.BookingID)
		assert.Equal(t, "Night Express", ev.TrainName)
		assert.Equal(t, int64(375), ev.FareAmount)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmed event not published")
	}
}

func TestCreateBookingSeatConflict(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.expectScheduleDetail(true)
	f.expectCompartment(2)
	f.expectClass()

	f.mock.ExpectBegin()
	f.expectLayoutList()
	f.mock.ExpectExec("INSERT IGNORE INTO seat_slots").
		WillReturnResult(sqlmock.NewResult(0, 0))
	f.mock.ExpectExec("UPDATE seat_slots SET status = 'BOOKED'").
		WithArgs(uint64(7), uint64(3), uint32(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	f.mock.ExpectRollback()

	_, err := f.svc.CreateBooking(context.Background(), validInput())
	assert.ErrorIs(t, err, repository.ErrSeatConflict)
}

func TestCreateBookingConflictOnActiveBookingRecheck(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.expectScheduleDetail(true)
	f.expectCompartment(2)
	f.expectClass()

	f.mock.ExpectBegin()
	f.expectLayoutList()
	f.mock.ExpectExec("INSERT IGNORE INTO seat_slots").
		WillReturnResult(sqlmock.NewResult(0, 0))
	f.mock.ExpectExec("UPDATE seat_slots SET status = 'BOOKED'").
		WithArgs(uint64(7), uint64(3), uint32(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// A booking row still references the slot even though the slot
	// itself read AVAILABLE; the re-check wins.
	f.mock.ExpectQuery("SELECT booking_id FROM bookings").
		WithArgs(uint64(7), uint64(3), uint32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id"}).AddRow(13))
	f.mock.ExpectRollback()

	_, err := f.svc.CreateBooking(context.Background(), validInput())
	assert.ErrorIs(t, err, repository.ErrSeatConflict)
}

func TestCreateBookingSeatOutOfRange(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.expectScheduleDetail(true)
	f.expectCompartment(2)

	in := validInput()
	in.SeatNumber = 5
	_, err := f.svc.CreateBooking(context.Background(), in)
	assert.ErrorIs(t, err, ErrSeatOutOfRange)
}

func TestCreateBookingInactiveSchedule(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.expectScheduleDetail(false)

	_, err := f.svc.CreateBooking(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrScheduleInactive)
}

func TestCreateBookingRejectsBadPassenger(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	cases := []func(*CreateBookingInput){
		func(in *CreateBookingInput) { in.PassengerName = "  " },
		func(in *CreateBookingInput) { in.PassengerAge = 0 },
		func(in *CreateBookingInput) { in.PassengerAge = 150 },
		func(in *CreateBookingInput) { in.PassengerGender = "unknown" },
	}
	for _, mutate := range cases {
		in := validInput()
		mutate(&in)
		_, err := f.svc.CreateBooking(context.Background(), in)
		assert.ErrorIs(t, err, ErrBadPassenger)
	}
}

var bookingCols = []string{
	"booking_id", "booking_ref", "user_id", "schedule_id", "compartment_id", "seat_number",
	"passenger_name", "passenger_age", "passenger_gender", "fare_amount", "status",
	"booking_date", "created_at", "updated_at",
}

func bookingRow(status string, userID uint64) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(bookingCols).
		AddRow(42, "ref-42", userID, 7, 3, 2, "Asha Verma", 34, "female", 375, status, now, now, now)
}

func TestCancelBookingReleasesSeat(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.mock.ExpectBegin()
	f.mock.ExpectQuery("SELECT booking_id, booking_ref").
		WithArgs(uint64(42)).
		WillReturnRows(bookingRow(model.BookingConfirmed, 5))
	f.mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(model.BookingCancelled, uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec("UPDATE seat_slots SET status = 'AVAILABLE'").
		WithArgs(uint64(7), uint64(3), uint32(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	b, err := f.svc.CancelBooking(context.Background(), 42, 5)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, b.Status)

	select {
	case ev := <-f.cancelled:
		assert.Equal(t, uint64(42), ev.BookingID)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled event not published")
	}
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.mock.ExpectBegin()
	f.mock.ExpectQuery("SELECT booking_id, booking_ref").
		WithArgs(uint64(42)).
		WillReturnRows(bookingRow(model.BookingCancelled, 5))
	f.mock.ExpectRollback()

	_, err := f.svc.CancelBooking(context.Background(), 42, 5)
	assert.ErrorIs(t, err, repository.ErrAlreadyCancelled)
}

func TestCancelBookingWrongOwner(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.mock.ExpectBegin()
	f.mock.ExpectQuery("SELECT booking_id, booking_ref").
		WithArgs(uint64(42)).
		WillReturnRows(bookingRow(model.BookingConfirmed, 9))
	f.mock.ExpectRollback()

	_, err := f.svc.CancelBooking(context.Background(), 42, 5)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelBookingNotFound(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.mock.ExpectBegin()
	f.mock.ExpectQuery("SELECT booking_id, booking_ref").
		WithArgs(uint64(404)).
		WillReturnError(sql.ErrNoRows)
	f.mock.ExpectRollback()

	_, err := f.svc.CancelBooking(context.Background(), 404, 5)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

func TestUpdateStatusCancelReleasesSeat(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.mock.ExpectBegin()
	f.mock.ExpectQuery("SELECT booking_id, booking_ref").
		WithArgs(uint64(42)).
		WillReturnRows(bookingRow(model.BookingConfirmed, 5))
	f.mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(model.BookingCancelled, uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec("UPDATE seat_slots SET status = 'AVAILABLE'").
		WithArgs(uint64(7), uint64(3), uint32(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	b, err := f.svc.UpdateStatus(context.Background(), 42, model.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, b.Status)

	select {
	case <-f.cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled event not published")
	}
}

func TestUpdateStatusCompleteDoesNotTouchSeat(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.mock.ExpectBegin()
	f.mock.ExpectQuery("SELECT booking_id, booking_ref").
		WithArgs(uint64(42)).
		WillReturnRows(bookingRow(model.BookingConfirmed, 5))
	f.mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(model.BookingCompleted, uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	b, err := f.svc.UpdateStatus(context.Background(), 42, model.BookingCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCompleted, b.Status)
}

func TestUpdateStatusInvalidTransitions(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	// Target outside the allowed set fails before any query.
	_, err := f.svc.UpdateStatus(context.Background(), 42, model.BookingPending)
	assert.ErrorIs(t, err, repository.ErrInvalidTransition)

	// PENDING cannot complete without confirmation.
	f.mock.ExpectBegin()
	f.mock.ExpectQuery("SELECT booking_id, booking_ref").
		WithArgs(uint64(42)).
		WillReturnRows(bookingRow(model.BookingPending, 5))
	f.mock.ExpectRollback()

	_, err = f.svc.UpdateStatus(context.Background(), 42, model.BookingCompleted)
	assert.ErrorIs(t, err, repository.ErrInvalidTransition)
}

func TestFareQuote(t *testing.T) {
	f := newFixture(t)
	defer f.close()

	f.expectScheduleDetail(true)
	f.expectCompartment(2)
	f.expectClass()

	quote, err := f.svc.Fare(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(375), quote.Amount)
	assert.Equal(t, "First", quote.ClassName)
	assert.Equal(t, 1.5, quote.ClassMultiplier)
}
