package model

// Schedule is a timetabled run of a train between two stations.  Once
// seats have been sold against a schedule it is deactivated rather than
// deleted so that existing bookings keep a valid reference.
//
// Fields:
//  ID              – primary key identifier.
//  TrainID         – train operating the run.
//  FromStationID   – departure station.
//  ToStationID     – arrival station.
//  DepartureTime   – departure time of day, "HH:MM:SS".
//  ArrivalTime     – arrival time of day, "HH:MM:SS".
//  DistanceKm      – route distance in kilometres, feeds fare computation.
//  DaysOfOperation – comma-separated weekday list, e.g. "Mon,Wed,Fri";
//                    "Daily" when the train runs every day.
//  IsActive        – whether the schedule is open for booking.
type Schedule struct {
    ID              uint64 // schedules.schedule_id
    TrainID         uint64 // schedules.train_id
    FromStationID   uint64 // schedules.from_station
    ToStationID     uint64 // schedules.to_station
    DepartureTime   string // schedules.departure_time
    ArrivalTime     string // schedules.arrival_time
    DistanceKm      uint32 // schedules.distance_km
    DaysOfOperation string // schedules.days_of_operation
    IsActive        bool   // schedules.is_active
}

// ScheduleDetail joins a schedule with the display and pricing data the
// booking flow needs: the train name and fare rate plus both station
// names.  It is what list/detail endpoints return and what the booking
// service reads to price a seat.
type ScheduleDetail struct {
    Schedule
    TrainName       string  `json:"train_name"`
    FarePerKm       float64 `json:"fare_per_km"`
    FromStationName string  `json:"from_station_name"`
    ToStationName   string  `json:"to_station_name"`
}
