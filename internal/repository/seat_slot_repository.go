package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/railway-reservation/internal/model"
)

// SeatSlotRepo provides data access to the seat_slots table, the
// per-run seat inventory.  Slots are materialized lazily from the
// compartment layout; status flips happen only inside the booking
// service's transactions.
type SeatSlotRepo struct {
	db *sql.DB
}

// NewSeatSlotRepo returns a SeatSlotRepo bound to the provided database.
func NewSeatSlotRepo(db *sql.DB) *SeatSlotRepo { return &SeatSlotRepo{db: db} }

// EnsureForScheduleTx guarantees a seat_slots row exists for every seat
// of every given compartment of the schedule, inserting missing rows as
// AVAILABLE in a single statement.  INSERT IGNORE makes the call
// idempotent: rows already present (including BOOKED ones) are left
// untouched.  The caller must commit or roll back the transaction.
func (r *SeatSlotRepo) EnsureForScheduleTx(ctx context.Context, tx *sql.Tx, scheduleID uint64, comps []model.Compartment) error {
	if len(comps) == 0 {
		return nil
	}
	query := `INSERT IGNORE INTO seat_slots (schedule_id, compartment_id, seat_number, status) VALUES `
	args := make([]interface{}, 0)
	first := true
	for _, c := range comps {
		for seat := uint32(1); seat <= c.TotalSeats; seat++ {
			if !first {
				query += ","
			}
			first = false
			query += "(?, ?, ?, ?)"
			args = append(args, scheduleID, c.ID, seat, model.SeatAvailable)
		}
	}
	if first {
		// every compartment had zero seats; nothing to insert
		return nil
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// SeatMap returns one entry per seat slot of the schedule, joined with
// compartment and class data, ordered by compartment number then seat
// number.  The ordering makes the result deterministic for a given
// database state.  Callers must materialize slots first; rows missing
// from seat_slots simply do not appear here.
func (r *SeatSlotRepo) SeatMap(ctx context.Context, scheduleID uint64) ([]model.SeatMapEntry, error) {
	const q = `SELECT ss.compartment_id, tc.compartment_number, tc.class_id, cl.class_name,
	                  ss.seat_number, ss.status = 'BOOKED'
	           FROM seat_slots ss
	           JOIN train_compartments tc ON tc.compartment_id = ss.compartment_id
	           JOIN train_classes cl ON cl.class_id = tc.class_id
	           WHERE ss.schedule_id = ?
	           ORDER BY tc.compartment_number, ss.seat_number`
	rows, err := r.db.QueryContext(ctx, q, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.SeatMapEntry, 0)
	for rows.Next() {
		var e model.SeatMapEntry
		if err := rows.Scan(&e.CompartmentID, &e.CompartmentNumber, &e.ClassID, &e.ClassName, &e.SeatNumber, &e.IsBooked); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountForSchedule reports how many slot rows exist for a schedule.
// The ledger uses it to skip materialization when the set is complete.
func (r *SeatSlotRepo) CountForSchedule(ctx context.Context, scheduleID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM seat_slots WHERE schedule_id = ?`
	var n int
	err := r.db.QueryRowContext(ctx, q, scheduleID).Scan(&n)
	return n, err
}

// MarkBookedTx atomically claims a seat slot for a booking: it flips
// the slot from AVAILABLE to BOOKED and returns ErrSeatConflict when
// the slot was already BOOKED.  Under InnoDB the row lock taken by the
// UPDATE serializes concurrent claims, so exactly one of two racing
// booking transactions succeeds; the other observes zero affected rows.
func (r *SeatSlotRepo) MarkBookedTx(ctx context.Context, tx *sql.Tx, scheduleID, compartmentID uint64, seatNumber uint32) error {
	const q = `UPDATE seat_slots SET status = 'BOOKED'
	           WHERE schedule_id = ? AND compartment_id = ? AND seat_number = ? AND status = 'AVAILABLE'`
	res, err := tx.ExecContext(ctx, q, scheduleID, compartmentID, seatNumber)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSeatConflict
	}
	return nil
}

// MarkAvailableTx releases a seat slot when the booking holding it is
// cancelled.  The transition is idempotent: releasing an already
// available slot affects zero rows and is not an error.
func (r *SeatSlotRepo) MarkAvailableTx(ctx context.Context, tx *sql.Tx, scheduleID, compartmentID uint64, seatNumber uint32) error {
	const q = `UPDATE seat_slots SET status = 'AVAILABLE'
	           WHERE schedule_id = ? AND compartment_id = ? AND seat_number = ? AND status = 'BOOKED'`
	_, err := tx.ExecContext(ctx, q, scheduleID, compartmentID, seatNumber)
	return err
}
