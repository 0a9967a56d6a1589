package models

import (
	"errors"
	"time"
)

// Stop is one entry of a schedule template: a station and the minutes the
// train dwells there before departing. The waiting time at the first stop is
// ignored; the waiting time at the last stop is the terminus dwell and must
// be at least MinTerminusDwell.
type Stop struct {
	Station     Key
	WaitingTime int
}

// MinTerminusDwell is the waiting-time floor at a schedule's last stop.
const MinTerminusDwell = 10

// MinScheduleGapMinutes is the required gap between the end of a train's last
// schedule on one day and the start of its first schedule on the next.
const MinScheduleGapMinutes = 6 * 60

// Schedule is the stored recurring template for a train's daily run.
// Schedules are immutable once added.
type Schedule struct {
	ID                int64     `json:"schedule_id" db:"schedule_id"`
	TrainID           int64     `json:"train_id" db:"train_id"`
	StartingStationID int64     `json:"starting_station_id" db:"starting_station_id"`
	EndingStationID   int64     `json:"ending_station_id" db:"ending_station_id"`
	StartTime         string    `json:"start_time" db:"start_time"`
	EndTime           string    `json:"end_time" db:"end_time"`
	ValidFrom         time.Time `json:"valid_from" db:"valid_from"`
	ValidUntil        time.Time `json:"valid_until" db:"valid_until"`
}

// AddScheduleRequest is the payload for creating a schedule.
type AddScheduleRequest struct {
	TrainName       string        `json:"train_name" binding:"required"`
	StartingHours   int           `json:"starting_hours_24_h"`
	StartingMinutes int           `json:"starting_minutes"`
	Stops           []StopRequest `json:"stops" binding:"required"`
	ValidFrom       string        `json:"valid_from" binding:"required"`
	ValidUntil      string        `json:"valid_until" binding:"required"`
}

// StopRequest is one stop entry of an AddScheduleRequest.
type StopRequest struct {
	Station     string `json:"station" binding:"required"`
	WaitingTime int    `json:"waiting_time"`
}

// Window parses the validity window of the request.
func (r *AddScheduleRequest) Window() (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", r.ValidFrom)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("valid_from must be in YYYY-MM-DD format")
	}
	until, err := time.Parse("2006-01-02", r.ValidUntil)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("valid_until must be in YYYY-MM-DD format")
	}
	if until.Before(from) {
		return time.Time{}, time.Time{}, errors.New("valid_until must not precede valid_from")
	}
	return from, until, nil
}

// StopList converts the request stops into domain stops.
func (r *AddScheduleRequest) StopList() []Stop {
	stops := make([]Stop, 0, len(r.Stops))
	for _, s := range r.Stops {
		stops = append(stops, Stop{Station: NewKey(s.Station), WaitingTime: s.WaitingTime})
	}
	return stops
}
