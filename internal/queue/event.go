// Package queue defines message payloads exchanged over the message
// broker, the publisher that emits them and the background consumer
// that audits them.
package queue

// Queue names.  Both are durable; the routing key equals the queue
// name on the default exchange.
const (
	ConfirmedQueue = "booking.confirmed"
	CancelledQueue = "booking.cancelled"
)

// BookingConfirmedEvent is published after a booking transaction
// commits.  It carries enough denormalized detail for downstream
// consumers to log or notify without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID     uint64 `json:"booking_id"`
	BookingRef    string `json:"booking_ref"`
	UserID        uint64 `json:"user_id"`
	ScheduleID    uint64 `json:"schedule_id"`
	TrainName     string `json:"train_name"`
	FromStation   string `json:"from_station"`
	ToStation     string `json:"to_station"`
	CompartmentID uint64 `json:"compartment_id"`
	SeatNumber    uint32 `json:"seat_number"`
	PassengerName string `json:"passenger_name"`
	FareAmount    int64  `json:"fare_amount"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// BookingCancelledEvent is published after a cancellation commits,
// whether initiated by the passenger or by an admin status override.
type BookingCancelledEvent struct {
	BookingID     uint64 `json:"booking_id"`
	BookingRef    string `json:"booking_ref"`
	UserID        uint64 `json:"user_id"`
	ScheduleID    uint64 `json:"schedule_id"`
	CompartmentID uint64 `json:"compartment_id"`
	SeatNumber    uint32 `json:"seat_number"`
	CancelledAt   string `json:"cancelled_at"`
}
