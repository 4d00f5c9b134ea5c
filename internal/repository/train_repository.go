package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/railway-reservation/internal/model"
)

// TrainRepo manages persistence for trains.  The compartments of a
// train define the seat inventory of every schedule it runs, so trains
// with sold seats are deactivated instead of deleted.
type TrainRepo struct {
	db *sql.DB
}

// NewTrainRepo constructs a TrainRepo with the given DB handle.
func NewTrainRepo(db *sql.DB) *TrainRepo {
	return &TrainRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *TrainRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a train record. On success the train's ID is populated.
func (r *TrainRepo) Create(ctx context.Context, t *model.Train) error {
	const q = `INSERT INTO trains (train_name, fare_per_km) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.FarePerKm)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	t.IsActive = true
	return nil
}

// GetByID retrieves a train by its ID, returning ErrTrainNotFound when
// there is no matching row.
func (r *TrainRepo) GetByID(ctx context.Context, id uint64) (*model.Train, error) {
	const q = `SELECT train_id, train_name, fare_per_km, is_active FROM trains WHERE train_id = ?`
	var t model.Train
	err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name, &t.FarePerKm, &t.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrainNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListAll returns every train ordered by name.  Inactive trains are
// included so administrators can see the full fleet.
func (r *TrainRepo) ListAll(ctx context.Context) ([]model.Train, error) {
	const q = `SELECT train_id, train_name, fare_per_km, is_active FROM trains ORDER BY train_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trains := make([]model.Train, 0)
	for rows.Next() {
		var t model.Train
		if err := rows.Scan(&t.ID, &t.Name, &t.FarePerKm, &t.IsActive); err != nil {
			return nil, err
		}
		trains = append(trains, t)
	}
	return trains, rows.Err()
}

// SetActive flips the is_active flag.  Returns ErrTrainNotFound when
// the train does not exist.
func (r *TrainRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	const q = `UPDATE trains SET is_active = ? WHERE train_id = ?`
	res, err := r.db.ExecContext(ctx, q, active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports zero affected rows for a no-op update too, so
		// distinguish "absent" from "already in that state".
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
