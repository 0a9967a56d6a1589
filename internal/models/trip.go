package models

import "time"

// Trip is one materialised leg of a schedule on one date. Trips are the unit
// that may be ticketed and reserved, and each one has a TRIP edge counterpart
// in the graph store keyed by its ID.
type Trip struct {
	ID                int64     `json:"trip_id" db:"trip_id"`
	ScheduleID        int64     `json:"schedule_id" db:"schedule_id"`
	TrainID           int64     `json:"train_id" db:"train_id"`
	StartingStationID int64     `json:"starting_station_id" db:"starting_station_id"`
	EndingStationID   int64     `json:"ending_station_id" db:"ending_station_id"`
	Date              time.Time `json:"trip_date" db:"trip_date"`
	StartTime         string    `json:"start_time" db:"start_time"`
	EndTime           string    `json:"end_time" db:"end_time"`
}

// TripDetail is a trip hydrated with train and station names for results.
type TripDetail struct {
	ID              int64     `json:"trip_id" db:"trip_id"`
	TrainName       string    `json:"train_name" db:"train_name"`
	StartingStation string    `json:"starting_station" db:"starting_station"`
	EndingStation   string    `json:"ending_station" db:"ending_station"`
	Date            time.Time `json:"trip_date" db:"trip_date"`
	StartTime       string    `json:"start_time" db:"start_time"`
	EndTime         string    `json:"end_time" db:"end_time"`
}

// TripEdge carries the graph-store properties of one trip leg. Rows of the
// graph outbox deserialise into this shape.
type TripEdge struct {
	TripID      int64     `db:"trip_id"`
	FromStation string    `db:"from_station"`
	ToStation   string    `db:"to_station"`
	TrainName   string    `db:"train_name"`
	Departure   time.Time `db:"departure"`
	Arrival     time.Time `db:"arrival"`
	TravelTime  int       `db:"travel_time"`
}
