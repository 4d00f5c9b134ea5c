package repository // repository defines data access for stations

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"

	"github.com/iliyamo/railway-reservation/internal/model"
)

// StationRepo provides methods to work with stations in the database.
// Stations are reference data: the booking core reads them but never
// writes; only administrators mutate the table.
type StationRepo struct {
	db *sql.DB
}

// NewStationRepo constructs a StationRepo with the given DB handle.
func NewStationRepo(db *sql.DB) *StationRepo {
	return &StationRepo{db: db}
}

// Create inserts a station record. On success the station's ID is populated.
func (r *StationRepo) Create(ctx context.Context, s *model.Station) error {
	const q = `INSERT INTO stations (station_name, city, state) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.City, s.State)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID retrieves a station by its ID, returning ErrStationNotFound
// when there is no matching row.
func (r *StationRepo) GetByID(ctx context.Context, id uint64) (*model.Station, error) {
	const q = `SELECT station_id, station_name, city, state FROM stations WHERE station_id = ?`
	var s model.Station
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &s.City, &s.State)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListAll returns every station ordered by name.
func (r *StationRepo) ListAll(ctx context.Context) ([]model.Station, error) {
	const q = `SELECT station_id, station_name, city, state FROM stations ORDER BY station_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := make([]model.Station, 0)
	for rows.Next() {
		var s model.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State); err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}
