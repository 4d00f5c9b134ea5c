package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/railway-reservation/internal/model"
)

// BookingRepo provides CRUD operations for bookings.  Every booking
// references exactly one seat slot by (schedule_id, compartment_id,
// seat_number) and snapshots its fare at creation time.  All writes
// that touch seat occupancy run inside a transaction owned by the
// booking service.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingDetail is a booking joined with the schedule, train and
// station names for display.  It is what listing and detail endpoints
// return to clients.
type BookingDetail struct {
	model.Booking
	TrainName       string `json:"train_name"`
	DepartureTime   string `json:"departure_time"`
	ArrivalTime     string `json:"arrival_time"`
	FromStationName string `json:"from_station_name"`
	ToStationName   string `json:"to_station_name"`
	ClassName       string `json:"class_name"`
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated ID plus DB-default fields on
// the provided record.  The caller must commit or roll back the
// transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
	           (booking_ref, user_id, schedule_id, compartment_id, seat_number,
	            passenger_name, passenger_age, passenger_gender, fare_amount, status, booking_date)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_DATE)`
	res, err := tx.ExecContext(ctx, q,
		b.Ref, b.UserID, b.ScheduleID, b.CompartmentID, b.SeatNumber,
		b.PassengerName, b.PassengerAge, b.PassengerGender, b.FareAmount, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	const sel = `SELECT booking_date, created_at, updated_at FROM bookings WHERE booking_id = ?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.BookingDate, &b.CreatedAt, &b.UpdatedAt)
}

// ExistsActiveTx reports whether an active (pending or confirmed)
// booking already references the given seat slot.  It runs inside the
// booking transaction with FOR UPDATE so the re-check in createBooking
// step 3 observes committed state under the row lock.
func (r *BookingRepo) ExistsActiveTx(ctx context.Context, tx *sql.Tx, scheduleID, compartmentID uint64, seatNumber uint32) (bool, error) {
	const q = `SELECT booking_id FROM bookings
	           WHERE schedule_id = ? AND compartment_id = ? AND seat_number = ?
	             AND status IN ('PENDING','CONFIRMED')
	           LIMIT 1 FOR UPDATE`
	var id uint64
	err := tx.QueryRowContext(ctx, q, scheduleID, compartmentID, seatNumber).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByID retrieves a booking by its ID, returning ErrBookingNotFound
// when there is no matching row.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT booking_id, booking_ref, user_id, schedule_id, compartment_id, seat_number,
	                  passenger_name, passenger_age, passenger_gender, fare_amount, status,
	                  booking_date, created_at, updated_at
	           FROM bookings WHERE booking_id = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Ref, &b.UserID, &b.ScheduleID, &b.CompartmentID, &b.SeatNumber,
		&b.PassengerName, &b.PassengerAge, &b.PassengerGender, &b.FareAmount, &b.Status,
		&b.BookingDate, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByIDTx is GetByID inside a transaction, locking the row with
// FOR UPDATE.  Cancel and status-override load the booking through
// this so a concurrent cancel of the same booking serializes.
func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	const q = `SELECT booking_id, booking_ref, user_id, schedule_id, compartment_id, seat_number,
	                  passenger_name, passenger_age, passenger_gender, fare_amount, status,
	                  booking_date, created_at, updated_at
	           FROM bookings WHERE booking_id = ? FOR UPDATE`
	var b model.Booking
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Ref, &b.UserID, &b.ScheduleID, &b.CompartmentID, &b.SeatNumber,
		&b.PassengerName, &b.PassengerAge, &b.PassengerGender, &b.FareAmount, &b.Status,
		&b.BookingDate, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateStatusTx sets the booking status inside the caller's
// transaction.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	const q = `UPDATE bookings SET status = ? WHERE booking_id = ?`
	_, err := tx.ExecContext(ctx, q, status, id)
	return err
}

const bookingDetailSelect = `SELECT b.booking_id, b.booking_ref, b.user_id, b.schedule_id, b.compartment_id, b.seat_number,
	       b.passenger_name, b.passenger_age, b.passenger_gender, b.fare_amount, b.status,
	       b.booking_date, b.created_at, b.updated_at,
	       t.train_name,
	       TIME_FORMAT(s.departure_time, '%H:%i:%s'), TIME_FORMAT(s.arrival_time, '%H:%i:%s'),
	       fs.station_name, ts.station_name, cl.class_name
	FROM bookings b
	JOIN schedules s ON s.schedule_id = b.schedule_id
	JOIN trains t ON t.train_id = s.train_id
	JOIN stations fs ON fs.station_id = s.from_station
	JOIN stations ts ON ts.station_id = s.to_station
	JOIN train_compartments tc ON tc.compartment_id = b.compartment_id
	JOIN train_classes cl ON cl.class_id = tc.class_id`

func scanBookingDetail(row interface {
	Scan(dest ...interface{}) error
}) (*BookingDetail, error) {
	var d BookingDetail
	err := row.Scan(
		&d.ID, &d.Ref, &d.UserID, &d.ScheduleID, &d.CompartmentID, &d.SeatNumber,
		&d.PassengerName, &d.PassengerAge, &d.PassengerGender, &d.FareAmount, &d.Status,
		&d.BookingDate, &d.CreatedAt, &d.UpdatedAt,
		&d.TrainName, &d.DepartureTime, &d.ArrivalTime,
		&d.FromStationName, &d.ToStationName, &d.ClassName)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDetail returns a single booking with its schedule, train, station
// and class names.  Returns ErrBookingNotFound when absent.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*BookingDetail, error) {
	q := bookingDetailSelect + ` WHERE b.booking_id = ?`
	d, err := scanBookingDetail(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListByUser returns all bookings created by a user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	q := bookingDetailSelect + ` WHERE b.user_id = ? ORDER BY b.created_at DESC`
	return r.queryDetails(ctx, q, userID)
}

// ListAll returns bookings for administrators, optionally filtered by
// status and/or schedule.  Ordered newest first.
func (r *BookingRepo) ListAll(ctx context.Context, status string, scheduleID uint64) ([]BookingDetail, error) {
	q := bookingDetailSelect + ` WHERE 1=1`
	args := make([]interface{}, 0, 2)
	if status != "" {
		q += ` AND b.status = ?`
		args = append(args, status)
	}
	if scheduleID != 0 {
		q += ` AND b.schedule_id = ?`
		args = append(args, scheduleID)
	}
	q += ` ORDER BY b.created_at DESC`
	return r.queryDetails(ctx, q, args...)
}

func (r *BookingRepo) queryDetails(ctx context.Context, q string, args ...interface{}) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, rows.Err()
}
