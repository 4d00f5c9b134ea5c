// Package service contains the business logic that spans multiple
// repositories: seat inventory materialization and the booking
// lifecycle.  Handlers translate its sentinel errors to HTTP
// responses; repositories never reach past a single table or join.
package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/iliyamo/railway-reservation/internal/model"
	"github.com/iliyamo/railway-reservation/internal/repository"
)

// SeatLedger materializes and reads the per-schedule seat inventory.
// Slots are derived lazily from the compartment layout of the
// schedule's train the first time seats are queried or booked, so a
// schedule with no slot rows simply has every seat available.
type SeatLedger struct {
	schedules    *repository.ScheduleRepo
	compartments *repository.CompartmentRepo
	slots        *repository.SeatSlotRepo
	log          *zap.Logger
}

// NewSeatLedger constructs a SeatLedger.  All dependencies must be
// non-nil.
func NewSeatLedger(schedules *repository.ScheduleRepo, compartments *repository.CompartmentRepo, slots *repository.SeatSlotRepo, log *zap.Logger) *SeatLedger {
	if schedules == nil || compartments == nil || slots == nil {
		panic("nil repository passed to NewSeatLedger")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SeatLedger{schedules: schedules, compartments: compartments, slots: slots, log: log}
}

// EnsureSlotsTx materializes the slot rows for a schedule inside the
// caller's transaction and returns the compartment layout used.  A
// train with no compartments cannot produce any slots and yields
// repository.ErrNoCompartments instead of fabricating a layout.
// Re-running is a no-op thanks to the unique key on
// (schedule_id, compartment_id, seat_number).
func (l *SeatLedger) EnsureSlotsTx(ctx context.Context, tx *sql.Tx, s *model.Schedule) ([]model.Compartment, error) {
	comps, err := l.compartments.ListByTrain(ctx, s.TrainID)
	if err != nil {
		return nil, err
	}
	if len(comps) == 0 {
		return nil, repository.ErrNoCompartments
	}
	if err := l.slots.EnsureForScheduleTx(ctx, tx, s.ID, comps); err != nil {
		return nil, err
	}
	return comps, nil
}

// EnsureSlots is EnsureSlotsTx in its own transaction, looking the
// schedule up first.  Returns repository.ErrScheduleNotFound when the
// schedule does not exist.
func (l *SeatLedger) EnsureSlots(ctx context.Context, scheduleID uint64) (*model.Schedule, error) {
	s, err := l.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	tx, err := l.schedules.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := l.EnsureSlotsTx(ctx, tx, s); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return s, nil
}

// SeatMap returns the full seat map of a schedule ordered by
// compartment number then seat number, materializing missing slot rows
// first so every seat of the layout appears exactly once.
func (l *SeatLedger) SeatMap(ctx context.Context, scheduleID uint64) ([]model.SeatMapEntry, error) {
	if _, err := l.EnsureSlots(ctx, scheduleID); err != nil {
		return nil, err
	}
	return l.slots.SeatMap(ctx, scheduleID)
}
