// Package repository defines error types that are reused across
// multiple repositories.  These sentinel values let higher layers such
// as the booking service and handlers distinguish between failure
// scenarios: ErrSeatConflict maps to HTTP 409, the *NotFound values to
// 404, ErrAlreadyCancelled and ErrInvalidTransition to 400, and
// ErrNoCompartments to a 422 data-integrity response.
package repository

import "errors"

// ErrSeatConflict is returned when a seat slot already carries an
// active (pending or confirmed) booking.  Exactly one of two
// concurrent booking attempts for the same slot receives it.
var ErrSeatConflict = errors.New("seat already booked")

// ErrAlreadyCancelled is returned when cancelling a booking that is
// already in the CANCELLED status.  The no-op transition is forbidden
// and must be reported rather than swallowed.
var ErrAlreadyCancelled = errors.New("booking already cancelled")

// ErrInvalidTransition is returned for administrative status changes
// that are not in the allowed transition set.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrNoCompartments indicates a train with no compartment layout: seat
// slots cannot be materialized for its schedules.  This is upstream
// catalog misconfiguration, not a booking error.
var ErrNoCompartments = errors.New("train has no compartments")

// Not-found sentinels, one per catalog entity plus bookings.
var (
    ErrStationNotFound     = errors.New("station not found")
    ErrClassNotFound       = errors.New("class not found")
    ErrTrainNotFound       = errors.New("train not found")
    ErrCompartmentNotFound = errors.New("compartment not found")
    ErrScheduleNotFound    = errors.New("schedule not found")
    ErrBookingNotFound     = errors.New("booking not found")
)
