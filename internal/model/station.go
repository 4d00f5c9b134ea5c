package model

// Station represents a railway station that schedules depart from or
// arrive at.  Stations are pure reference data; the booking core only
// ever reads them.  This struct corresponds to a row in the `stations`
// table.
//
// Fields:
//  ID   – primary key identifier.
//  Name – station name (e.g. "Mumbai Central").
//  City – city the station is located in.
//  State – state or region of the station.
type Station struct {
    ID    uint64 // stations.station_id
    Name  string // stations.station_name
    City  string // stations.city
    State string // stations.state
}
