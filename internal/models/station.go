package models

// Station represents a named location in the network. Every station has a
// graph-store node counterpart keyed by the same name.
type Station struct {
	ID      int64  `json:"station_id" db:"station_id"`
	Name    string `json:"name" db:"name"`
	Details string `json:"details,omitempty" db:"details"`
}

// Segment is one directed adjacency between two stations. Undirected segments
// are stored as two directed rows sharing the same travel time.
type Segment struct {
	ID                int64 `json:"connection_id" db:"connection_id"`
	StartingStationID int64 `json:"starting_station_id" db:"starting_station_id"`
	EndingStationID   int64 `json:"ending_station_id" db:"ending_station_id"`
	TravelTime        int   `json:"travel_time" db:"travel_time"`
}

const (
	// MinSegmentMinutes is the shortest allowed travel time for a segment.
	MinSegmentMinutes = 1
	// MaxSegmentMinutes is the longest allowed travel time for a segment.
	MaxSegmentMinutes = 60
)

// AddStationRequest is the payload for creating a station.
type AddStationRequest struct {
	Name    string `json:"name" binding:"required"`
	Details string `json:"details,omitempty"`
}

// ConnectStationsRequest is the payload for connecting two stations.
type ConnectStationsRequest struct {
	StartingStation string `json:"starting_station" binding:"required"`
	EndingStation   string `json:"ending_station" binding:"required"`
	TravelTime      int    `json:"travel_time_in_minutes" binding:"required"`
}
