package model

import "time"

// Booking statuses.  PENDING and CONFIRMED are "active" and occupy a
// seat slot; CANCELLED and COMPLETED are terminal.  There is no
// transition out of CANCELLED.
const (
    BookingPending   = "PENDING"
    BookingConfirmed = "CONFIRMED"
    BookingCancelled = "CANCELLED"
    BookingCompleted = "COMPLETED"
)

// Booking records one passenger on one seat slot.  The fare amount is
// snapshotted at creation time and never recomputed.  At most one
// booking in an active status may reference a given seat slot.
//
// Fields:
//  ID             – primary key identifier.
//  Ref            – external booking reference (PNR), a UUID.
//  UserID         – account that created the booking (0 for legacy rows).
//  ScheduleID     – scheduled run being travelled.
//  CompartmentID  – compartment of the booked seat.
//  SeatNumber     – 1-based seat number within the compartment.
//  PassengerName  – traveller name as printed on the ticket.
//  PassengerAge   – traveller age in years.
//  PassengerGender – "male", "female" or "other".
//  FareAmount     – fare in whole currency units, snapshotted at creation.
//  Status         – one of the Booking* constants above.
//  BookingDate    – calendar date the booking was made.
//  CreatedAt      – row creation timestamp.
//  UpdatedAt      – last modification timestamp.
type Booking struct {
    ID              uint64    // bookings.booking_id
    Ref             string    // bookings.booking_ref
    UserID          uint64    // bookings.user_id
    ScheduleID      uint64    // bookings.schedule_id
    CompartmentID   uint64    // bookings.compartment_id
    SeatNumber      uint32    // bookings.seat_number
    PassengerName   string    // bookings.passenger_name
    PassengerAge    uint32    // bookings.passenger_age
    PassengerGender string    // bookings.passenger_gender
    FareAmount      int64     // bookings.fare_amount
    Status          string    // bookings.status
    BookingDate     time.Time // bookings.booking_date
    CreatedAt       time.Time // bookings.created_at
    UpdatedAt       time.Time // bookings.updated_at
}

// IsActive reports whether the status occupies a seat slot.
func IsActive(status string) bool {
    return status == BookingPending || status == BookingConfirmed
}

// CanTransition reports whether an administrative status change from
// `from` to `to` is allowed.  Cancelled and completed are terminal;
// a no-op transition is not allowed and must be reported to the caller.
func CanTransition(from, to string) bool {
    switch from {
    case BookingPending:
        return to == BookingConfirmed || to == BookingCancelled
    case BookingConfirmed:
        return to == BookingCancelled || to == BookingCompleted
    }
    return false
}

// ValidTargetStatus reports whether `to` is a status an administrator
// may set at all, independent of the current status.
func ValidTargetStatus(to string) bool {
    return to == BookingConfirmed || to == BookingCancelled || to == BookingCompleted
}
