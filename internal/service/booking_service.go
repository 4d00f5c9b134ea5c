package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/railway-reservation/internal/fare"
	"github.com/iliyamo/railway-reservation/internal/model"
	"github.com/iliyamo/railway-reservation/internal/queue"
	"github.com/iliyamo/railway-reservation/internal/repository"
)

// Validation sentinels returned by BookingService.  Handlers map them
// to 400 responses; repository sentinels keep their own mapping.
var (
	ErrScheduleInactive = errors.New("schedule is not open for booking")
	ErrSeatOutOfRange   = errors.New("seat number outside compartment range")
	ErrBadPassenger     = errors.New("invalid passenger details")
	ErrForbidden        = errors.New("forbidden")
)

// CreateBookingInput carries everything needed to book one seat for
// one passenger.
type CreateBookingInput struct {
	UserID          uint64
	ScheduleID      uint64
	CompartmentID   uint64
	SeatNumber      uint32
	PassengerName   string
	PassengerAge    uint32
	PassengerGender string
}

// FareQuote is the priced breakdown returned by the quote endpoint.
type FareQuote struct {
	ScheduleID      uint64  `json:"schedule_id"`
	CompartmentID   uint64  `json:"compartment_id"`
	ClassName       string  `json:"class_name"`
	DistanceKm      uint32  `json:"distance_km"`
	FarePerKm       float64 `json:"fare_per_km"`
	ClassMultiplier float64 `json:"class_multiplier"`
	Amount          int64   `json:"amount"`
}

// BookingService owns the booking lifecycle: creation with an atomic
// seat claim, passenger cancellation and administrative status
// overrides.  Every write runs in a single transaction; the seat slot
// and the booking row change together or not at all.  Events are
// published after commit, best effort.
type BookingService struct {
	schedules    *repository.ScheduleRepo
	compartments *repository.CompartmentRepo
	classes      *repository.ClassRepo
	slots        *repository.SeatSlotRepo
	bookings     *repository.BookingRepo
	ledger       *SeatLedger
	log          *zap.Logger

	// Overridable for tests; nil disables publishing.
	publishConfirmed func(context.Context, queue.BookingConfirmedEvent) error
	publishCancelled func(context.Context, queue.BookingCancelledEvent) error
}

// NewBookingService constructs a BookingService wired to the real
// queue publisher.
func NewBookingService(schedules *repository.ScheduleRepo, compartments *repository.CompartmentRepo, classes *repository.ClassRepo, slots *repository.SeatSlotRepo, bookings *repository.BookingRepo, ledger *SeatLedger, log *zap.Logger) *BookingService {
	if schedules == nil || compartments == nil || classes == nil || slots == nil || bookings == nil || ledger == nil {
		panic("nil dependency passed to NewBookingService")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingService{
		schedules:        schedules,
		compartments:     compartments,
		classes:          classes,
		slots:            slots,
		bookings:         bookings,
		ledger:           ledger,
		log:              log,
		publishConfirmed: queue.PublishBookingConfirmed,
		publishCancelled: queue.PublishBookingCancelled,
	}
}

func validatePassenger(in CreateBookingInput) error {
	name := strings.TrimSpace(in.PassengerName)
	if name == "" || len(name) > 100 {
		return ErrBadPassenger
	}
	if in.PassengerAge == 0 || in.PassengerAge > 120 {
		return ErrBadPassenger
	}
	switch in.PassengerGender {
	case "male", "female", "other":
	default:
		return ErrBadPassenger
	}
	return nil
}

// CreateBooking books one seat.  It validates the catalog references
// and passenger details, prices the seat, then claims the slot and
// inserts a CONFIRMED booking in one transaction.  When two requests
// race for the same seat exactly one receives the booking; the other
// gets repository.ErrSeatConflict.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	if err := validatePassenger(in); err != nil {
		return nil, err
	}

	detail, err := s.schedules.GetDetail(ctx, in.ScheduleID)
	if err != nil {
		return nil, err
	}
	if !detail.IsActive {
		return nil, ErrScheduleInactive
	}

	comp, err := s.compartments.GetForSchedule(ctx, in.CompartmentID, in.ScheduleID)
	if err != nil {
		return nil, err
	}
	if in.SeatNumber == 0 || in.SeatNumber > comp.TotalSeats {
		return nil, ErrSeatOutOfRange
	}

	class, err := s.classes.GetByID(ctx, comp.ClassID)
	if err != nil {
		return nil, err
	}
	amount, err := fare.Calculate(detail.DistanceKm, detail.FarePerKm, class.FareMultiplier)
	if err != nil {
		return nil, err
	}

	tx, err := s.schedules.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := s.ledger.EnsureSlotsTx(ctx, tx, &detail.Schedule); err != nil {
		return nil, err
	}
	// The conditional flip is the conflict arbiter: the losing request
	// of a race sees zero affected rows here.
	if err := s.slots.MarkBookedTx(ctx, tx, in.ScheduleID, in.CompartmentID, in.SeatNumber); err != nil {
		return nil, err
	}
	// Re-check the booking table under the row lock so a slot row that
	// drifted from the bookings table cannot double-sell the seat.
	taken, err := s.bookings.ExistsActiveTx(ctx, tx, in.ScheduleID, in.CompartmentID, in.SeatNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, repository.ErrSeatConflict
	}

	b := &model.Booking{
		Ref:             uuid.NewString(),
		UserID:          in.UserID,
		ScheduleID:      in.ScheduleID,
		CompartmentID:   in.CompartmentID,
		SeatNumber:      in.SeatNumber,
		PassengerName:   strings.TrimSpace(in.PassengerName),
		PassengerAge:    in.PassengerAge,
		PassengerGender: in.PassengerGender,
		FareAmount:      amount,
		Status:          model.BookingConfirmed,
	}
	if err := s.bookings.CreateTx(ctx, tx, b); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	s.emitConfirmed(b, detail)
	return b, nil
}

// CancelBooking cancels a passenger's own booking, releasing the seat
// in the same transaction.  ownerID guards ownership; pass 0 to skip
// the check.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, ownerID uint64) (*model.Booking, error) {
	tx, err := s.schedules.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := s.bookings.GetByIDTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if ownerID != 0 && b.UserID != ownerID {
		return nil, ErrForbidden
	}
	if b.Status == model.BookingCancelled {
		return nil, repository.ErrAlreadyCancelled
	}
	if !model.CanTransition(b.Status, model.BookingCancelled) {
		return nil, repository.ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatusTx(ctx, tx, b.ID, model.BookingCancelled); err != nil {
		return nil, err
	}
	if err := s.slots.MarkAvailableTx(ctx, tx, b.ScheduleID, b.CompartmentID, b.SeatNumber); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	b.Status = model.BookingCancelled
	s.emitCancelled(b)
	return b, nil
}

// UpdateStatus applies an administrative status override.  Transitions
// outside the allowed set are rejected; an override to CANCELLED
// releases the seat slot in the same transaction so the seat becomes
// sellable again.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID uint64, target string) (*model.Booking, error) {
	if !model.ValidTargetStatus(target) {
		return nil, repository.ErrInvalidTransition
	}

	tx, err := s.schedules.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := s.bookings.GetByIDTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if target == model.BookingCancelled && b.Status == model.BookingCancelled {
		return nil, repository.ErrAlreadyCancelled
	}
	if !model.CanTransition(b.Status, target) {
		return nil, repository.ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatusTx(ctx, tx, b.ID, target); err != nil {
		return nil, err
	}
	if target == model.BookingCancelled {
		if err := s.slots.MarkAvailableTx(ctx, tx, b.ScheduleID, b.CompartmentID, b.SeatNumber); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	b.Status = target
	if target == model.BookingCancelled {
		s.emitCancelled(b)
	}
	return b, nil
}

// Fare prices one compartment of a schedule without creating anything.
func (s *BookingService) Fare(ctx context.Context, scheduleID, compartmentID uint64) (*FareQuote, error) {
	detail, err := s.schedules.GetDetail(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	comp, err := s.compartments.GetForSchedule(ctx, compartmentID, scheduleID)
	if err != nil {
		return nil, err
	}
	class, err := s.classes.GetByID(ctx, comp.ClassID)
	if err != nil {
		return nil, err
	}
	amount, err := fare.Calculate(detail.DistanceKm, detail.FarePerKm, class.FareMultiplier)
	if err != nil {
		return nil, err
	}
	return &FareQuote{
		ScheduleID:      scheduleID,
		CompartmentID:   compartmentID,
		ClassName:       class.Name,
		DistanceKm:      detail.DistanceKm,
		FarePerKm:       detail.FarePerKm,
		ClassMultiplier: class.FareMultiplier,
		Amount:          amount,
	}, nil
}

func (s *BookingService) emitConfirmed(b *model.Booking, detail *model.ScheduleDetail) {
	if s.publishConfirmed == nil {
		return
	}
	ev := queue.BookingConfirmedEvent{
		BookingID:     b.ID,
		BookingRef:    b.Ref,
		UserID:        b.UserID,
		ScheduleID:    b.ScheduleID,
		TrainName:     detail.TrainName,
		FromStation:   detail.FromStationName,
		ToStation:     detail.ToStationName,
		CompartmentID: b.CompartmentID,
		SeatNumber:    b.SeatNumber,
		PassengerName: b.PassengerName,
		FareAmount:    b.FareAmount,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publishConfirmed(ctx, ev); err != nil {
			s.log.Warn("publish booking.confirmed failed", zap.Uint64("booking_id", ev.BookingID), zap.Error(err))
		}
	}()
}

func (s *BookingService) emitCancelled(b *model.Booking) {
	if s.publishCancelled == nil {
		return
	}
	ev := queue.BookingCancelledEvent{
		BookingID:     b.ID,
		BookingRef:    b.Ref,
		UserID:        b.UserID,
		ScheduleID:    b.ScheduleID,
		CompartmentID: b.CompartmentID,
		SeatNumber:    b.SeatNumber,
		CancelledAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publishCancelled(ctx, ev); err != nil {
			s.log.Warn("publish booking.cancelled failed", zap.Uint64("booking_id", ev.BookingID), zap.Error(err))
		}
	}()
}
