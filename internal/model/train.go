package model

// Train represents a physical train whose compartments define the seat
// inventory for every schedule it runs.  FarePerKm is the base rate fed
// into fare computation together with the route distance and the class
// multiplier of the compartment being booked.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – train name (e.g. "Rajdhani Express").
//  FarePerKm – base fare per kilometre travelled.
//  IsActive  – whether the train can be scheduled; trains with sold
//              seats are deactivated rather than deleted.
type Train struct {
    ID        uint64  // trains.train_id
    Name      string  // trains.train_name
    FarePerKm float64 // trains.fare_per_km
    IsActive  bool    // trains.is_active
}

// TrainClass describes a travel class (First, Sleeper, ...) with its
// fare multiplier.  Compartments reference exactly one class.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – class name, unique.
//  FareMultiplier – factor applied on top of distance × fare-per-km.
type TrainClass struct {
    ID             uint64  // train_classes.class_id
    Name           string  // train_classes.class_name
    FareMultiplier float64 // train_classes.fare_multiplier
}
