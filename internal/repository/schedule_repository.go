// Package repository contains data access logic for the reservation
// domain.  This file defines repository methods for schedules.  A
// schedule is a timetabled run of a train between two stations; once
// seats are sold against it, it is deactivated rather than deleted.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/railway-reservation/internal/model"
)

// ScheduleRepo manages persistence for schedules.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo constructs a ScheduleRepo with the given DB handle.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories.
func (r *ScheduleRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new schedule and assigns the generated ID back to
// the struct.  DaysOfOperation defaults to "Daily" when empty.
func (r *ScheduleRepo) Create(ctx context.Context, s *model.Schedule) error {
	if s.DaysOfOperation == "" {
		s.DaysOfOperation = "Daily"
	}
	const q = `INSERT INTO schedules (train_id, from_station, to_station, departure_time, arrival_time, distance_km, days_of_operation)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		s.TrainID, s.FromStationID, s.ToStationID, s.DepartureTime, s.ArrivalTime, s.DistanceKm, s.DaysOfOperation)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	s.IsActive = true
	return nil
}

// GetByID retrieves a schedule by its ID.  It returns
// ErrScheduleNotFound if there is no matching row.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uint64) (*model.Schedule, error) {
	const q = `SELECT schedule_id, train_id, from_station, to_station,
	                  TIME_FORMAT(departure_time, '%H:%i:%s'), TIME_FORMAT(arrival_time, '%H:%i:%s'),
	                  distance_km, days_of_operation, is_active
	           FROM schedules WHERE schedule_id = ?`
	var s model.Schedule
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.TrainID, &s.FromStationID, &s.ToStationID,
		&s.DepartureTime, &s.ArrivalTime, &s.DistanceKm, &s.DaysOfOperation, &s.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetDetail returns a schedule joined with the train name, the train's
// fare-per-km rate and both station names.  The booking service reads
// this to price a seat; list/detail endpoints return it to clients.
// Returns ErrScheduleNotFound when the schedule does not exist.
func (r *ScheduleRepo) GetDetail(ctx context.Context, id uint64) (*model.ScheduleDetail, error) {
	const q = `SELECT s.schedule_id, s.train_id, s.from_station, s.to_station,
	                  TIME_FORMAT(s.departure_time, '%H:%i:%s'), TIME_FORMAT(s.arrival_time, '%H:%i:%s'),
	                  s.distance_km, s.days_of_operation, s.is_active,
	                  t.train_name, t.fare_per_km,
	                  fs.station_name, ts.station_name
	           FROM schedules s
	           JOIN trains t ON t.train_id = s.train_id
	           JOIN stations fs ON fs.station_id = s.from_station
	           JOIN stations ts ON ts.station_id = s.to_station
	           WHERE s.schedule_id = ?`
	var d model.ScheduleDetail
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.TrainID, &d.FromStationID, &d.ToStationID,
		&d.DepartureTime, &d.ArrivalTime, &d.DistanceKm, &d.DaysOfOperation, &d.IsActive,
		&d.TrainName, &d.FarePerKm,
		&d.FromStationName, &d.ToStationName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Search returns active schedules joined with train and station names.
// When fromStationID or toStationID are non-zero the result is
// restricted to direct routes between them; there is no multi-leg
// routing.  Results are ordered by departure time.
func (r *ScheduleRepo) Search(ctx context.Context, fromStationID, toStationID uint64) ([]model.ScheduleDetail, error) {
	q := `SELECT s.schedule_id, s.train_id, s.from_station, s.to_station,
	             TIME_FORMAT(s.departure_time, '%H:%i:%s'), TIME_FORMAT(s.arrival_time, '%H:%i:%s'),
	             s.distance_km, s.days_of_operation, s.is_active,
	             t.train_name, t.fare_per_km,
	             fs.station_name, ts.station_name
	      FROM schedules s
	      JOIN trains t ON t.train_id = s.train_id
	      JOIN stations fs ON fs.station_id = s.from_station
	      JOIN stations ts ON ts.station_id = s.to_station
	      WHERE s.is_active = 1 AND t.is_active = 1`
	args := make([]interface{}, 0, 2)
	if fromStationID != 0 {
		q += ` AND s.from_station = ?`
		args = append(args, fromStationID)
	}
	if toStationID != 0 {
		q += ` AND s.to_station = ?`
		args = append(args, toStationID)
	}
	q += ` ORDER BY s.departure_time`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]model.ScheduleDetail, 0)
	for rows.Next() {
		var d model.ScheduleDetail
		if err := rows.Scan(
			&d.ID, &d.TrainID, &d.FromStationID, &d.ToStationID,
			&d.DepartureTime, &d.ArrivalTime, &d.DistanceKm, &d.DaysOfOperation, &d.IsActive,
			&d.TrainName, &d.FarePerKm,
			&d.FromStationName, &d.ToStationName); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// SetActive flips the is_active flag, the teardown mechanism preferred
// over deletion once seats have been sold against a schedule.
func (r *ScheduleRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	const q = `UPDATE schedules SET is_active = ? WHERE schedule_id = ?`
	res, err := r.db.ExecContext(ctx, q, active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
