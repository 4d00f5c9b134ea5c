package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/railway-reservation/internal/model"
)

// ClassRepo manages persistence for train travel classes.  A class
// carries the fare multiplier applied to every seat of the
// compartments that reference it.
type ClassRepo struct {
	db *sql.DB
}

// NewClassRepo constructs a ClassRepo with the given DB handle.
func NewClassRepo(db *sql.DB) *ClassRepo {
	return &ClassRepo{db: db}
}

// Create inserts a class record. On success the class's ID is populated.
func (r *ClassRepo) Create(ctx context.Context, c *model.TrainClass) error {
	const q = `INSERT INTO train_classes (class_name, fare_multiplier) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.FareMultiplier)
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

// GetByID retrieves a class by its ID, returning ErrClassNotFound when
// there is no matching row.
func (r *ClassRepo) GetByID(ctx context.Context, id uint64) (*model.TrainClass, error) {
	const q = `SELECT class_id, class_name, fare_multiplier FROM train_classes WHERE class_id = ?`
	var c model.TrainClass
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.FareMultiplier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListAll returns every class ordered by fare multiplier descending so
// premium classes list first.
func (r *ClassRepo) ListAll(ctx context.Context) ([]model.TrainClass, error) {
	const q = `SELECT class_id, class_name, fare_multiplier FROM train_classes ORDER BY fare_multiplier DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]model.TrainClass, 0)
	for rows.Next() {
		var c model.TrainClass
		if err := rows.Scan(&c.ID, &c.Name, &c.FareMultiplier); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}
