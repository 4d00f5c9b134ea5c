package model

// Seat slot statuses.  A slot is the cached projection of "does an
// active booking exist for this seat on this schedule" and must always
// agree with the bookings table.
const (
    SeatAvailable = "AVAILABLE" // no active booking references the slot
    SeatBooked    = "BOOKED"    // a pending or confirmed booking holds the slot
)

// SeatSlot is the addressable inventory unit: one seat on one specific
// scheduled run.  Slots are materialized lazily from the train's
// compartment layout the first time a schedule's seats are queried or
// booked; a missing row behaves as available.  (schedule_id,
// compartment_id, seat_number) is unique.
//
// Fields:
//  ID            – primary key identifier.
//  ScheduleID    – scheduled run the seat belongs to.
//  CompartmentID – compartment of the schedule's train.
//  SeatNumber    – 1-based seat number within the compartment.
//  Status        – SeatAvailable or SeatBooked.
type SeatSlot struct {
    ID            uint64 // seat_slots.slot_id
    ScheduleID    uint64 // seat_slots.schedule_id
    CompartmentID uint64 // seat_slots.compartment_id
    SeatNumber    uint32 // seat_slots.seat_number
    Status        string // seat_slots.status
}

// SeatMapEntry is one row of the seat map returned for a schedule:
// the slot joined with its compartment and class so clients can render
// the layout grouped by compartment.  Entries are ordered by
// compartment number, then seat number.
type SeatMapEntry struct {
    CompartmentID     uint64 `json:"compartment_id"`
    CompartmentNumber uint32 `json:"compartment_number"`
    ClassID           uint64 `json:"class_id"`
    ClassName         string `json:"class_name"`
    SeatNumber        uint32 `json:"seat_number"`
    IsBooked          bool   `json:"is_booked"`
}
