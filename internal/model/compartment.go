package model

// Compartment is a physical subdivision of a train with its own class
// and a fixed seat count.  Seat numbers inside a compartment are
// contiguous 1..TotalSeats; the pair (train, compartment_number) is
// unique.  The seat ledger derives every schedule's SeatSlot set from
// the compartments of the schedule's train.
//
// Fields:
//  ID                – primary key identifier.
//  TrainID           – train this compartment belongs to.
//  ClassID           – travel class of every seat in the compartment.
//  CompartmentNumber – position of the compartment within the train.
//  TotalSeats        – number of seats, numbered 1..TotalSeats.
type Compartment struct {
    ID                uint64 // train_compartments.compartment_id
    TrainID           uint64 // train_compartments.train_id
    ClassID           uint64 // train_compartments.class_id
    CompartmentNumber uint32 // train_compartments.compartment_number
    TotalSeats        uint32 // train_compartments.total_seats
}
