package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/railway-reservation/internal/model"
)

// CompartmentRepo provides data access for train compartments.  The
// compartment layout of a train is the source of truth for seat slot
// materialization: every schedule of the train gets one slot per seat
// number 1..TotalSeats of every compartment.
type CompartmentRepo struct {
	db *sql.DB
}

// NewCompartmentRepo constructs a CompartmentRepo bound to the given database.
func NewCompartmentRepo(db *sql.DB) *CompartmentRepo { return &CompartmentRepo{db: db} }

// Create inserts a compartment record. On success the ID is populated.
func (r *CompartmentRepo) Create(ctx context.Context, c *model.Compartment) error {
	const q = `INSERT INTO train_compartments (train_id, class_id, compartment_number, total_seats)
	           VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.TrainID, c.ClassID, c.CompartmentNumber, c.TotalSeats)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID retrieves a compartment by its ID, returning
// ErrCompartmentNotFound when there is no matching row.
func (r *CompartmentRepo) GetByID(ctx context.Context, id uint64) (*model.Compartment, error) {
	const q = `SELECT compartment_id, train_id, class_id, compartment_number, total_seats
	           FROM train_compartments WHERE compartment_id = ?`
	var c model.Compartment
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.TrainID, &c.ClassID, &c.CompartmentNumber, &c.TotalSeats)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompartmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByTrain returns all compartments of a train ordered by
// compartment number.  The ordering makes slot materialization and
// seat maps deterministic for a given database state.
func (r *CompartmentRepo) ListByTrain(ctx context.Context, trainID uint64) ([]model.Compartment, error) {
	const q = `SELECT compartment_id, train_id, class_id, compartment_number, total_seats
	           FROM train_compartments
	           WHERE train_id = ?
	           ORDER BY compartment_number`
	rows, err := r.db.QueryContext(ctx, q, trainID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comps := make([]model.Compartment, 0)
	for rows.Next() {
		var c model.Compartment
		if err := rows.Scan(&c.ID, &c.TrainID, &c.ClassID, &c.CompartmentNumber, &c.TotalSeats); err != nil {
			return nil, err
		}
		comps = append(comps, c)
	}
	return comps, rows.Err()
}

// GetForSchedule loads a compartment and verifies it belongs to the
// train of the given schedule.  Booking uses this to reject seat
// addresses that point at another train's compartment.
func (r *CompartmentRepo) GetForSchedule(ctx context.Context, compartmentID, scheduleID uint64) (*model.Compartment, error) {
	const q = `SELECT tc.compartment_id, tc.train_id, tc.class_id, tc.compartment_number, tc.total_seats
	           FROM train_compartments tc
	           JOIN schedules s ON s.train_id = tc.train_id
	           WHERE tc.compartment_id = ? AND s.schedule_id = ?`
	var c model.Compartment
	err := r.db.QueryRowContext(ctx, q, compartmentID, scheduleID).Scan(
		&c.ID, &c.TrainID, &c.ClassID, &c.CompartmentNumber, &c.TotalSeats)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompartmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
