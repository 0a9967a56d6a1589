package models

import (
	"errors"
	"time"
)

// SortingCriteria selects the metric a connection search is ranked by.
type SortingCriteria string

const (
	SortByOverallTravelTime SortingCriteria = "OVERALL_TRAVEL_TIME"
	SortByTrainChanges      SortingCriteria = "NUMBER_OF_TRAIN_CHANGES"
	SortByWaitingTime       SortingCriteria = "OVERALL_WAITING_TIME"
	SortByEstimatedPrice    SortingCriteria = "ESTIMATED_PRICE"
)

// Valid reports whether the criteria is one of the known values.
func (c SortingCriteria) Valid() bool {
	switch c {
	case SortByOverallTravelTime, SortByTrainChanges, SortByWaitingTime, SortByEstimatedPrice:
		return true
	}
	return false
}

// DefaultSearchLimit is how many connections a search returns unless asked
// otherwise.
const DefaultSearchLimit = 5

// SearchRequest describes a connection search between two stations.
type SearchRequest struct {
	StartingStation string          `json:"starting_station" binding:"required"`
	EndingStation   string          `json:"ending_station" binding:"required"`
	TravelDay       int             `json:"travel_day,omitempty"`
	TravelMonth     int             `json:"travel_month,omitempty"`
	TravelYear      int             `json:"travel_year,omitempty"`
	IsDepartureTime *bool           `json:"is_departure_time,omitempty"`
	SortBy          SortingCriteria `json:"sort_by,omitempty"`
	IsAscending     *bool           `json:"is_ascending,omitempty"`
	Limit           int             `json:"limit,omitempty"`
}

// Normalize fills the request defaults and validates the knobs. The anchor
// time is the requested date at midnight, or now when no date is given.
func (r *SearchRequest) Normalize(now time.Time) (anchor time.Time, departureMode bool, ascending bool, err error) {
	if r.SortBy == "" {
		r.SortBy = SortByOverallTravelTime
	}
	if !r.SortBy.Valid() {
		return time.Time{}, false, false, errors.New("unknown sorting criteria")
	}
	if r.Limit <= 0 {
		r.Limit = DefaultSearchLimit
	}
	departureMode = r.IsDepartureTime == nil || *r.IsDepartureTime
	ascending = r.IsAscending == nil || *r.IsAscending

	if r.TravelYear != 0 || r.TravelMonth != 0 || r.TravelDay != 0 {
		anchor = time.Date(r.TravelYear, time.Month(r.TravelMonth), r.TravelDay, 0, 0, 0, 0, time.UTC)
		if anchor.Year() != r.TravelYear || int(anchor.Month()) != r.TravelMonth || anchor.Day() != r.TravelDay {
			return time.Time{}, false, false, errors.New("travel date is not a valid calendar date")
		}
	} else {
		anchor = now
	}
	return anchor, departureMode, ascending, nil
}

// ConnectionMetrics are the ranking metrics computed for one candidate path.
type ConnectionMetrics struct {
	OverallTravelTime  int `json:"overall_travel_time"`
	NumberOfTrains     int `json:"number_of_trains"`
	InitialWaitingTime int `json:"initial_waiting_time"`
	TotalWaitingTime   int `json:"total_waiting_time"`
	EstimatedPrice     int `json:"estimated_price"`
}

// Connection is one search result: an ordered sequence of trip legs from the
// starting station to the ending station on a single calendar date.
type Connection struct {
	Legs    []TripDetail      `json:"legs"`
	Metrics ConnectionMetrics `json:"metrics"`
}
