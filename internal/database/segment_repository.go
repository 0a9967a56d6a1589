package database

import (
	"fmt"
)

// SegmentRepository handles database operations for the connections table.
// An undirected segment between two stations is stored as two directed rows
// sharing the same travel time.
type SegmentRepository struct {
	db DB
}

// NewSegmentRepository creates a new SegmentRepository
func NewSegmentRepository(db DB) *SegmentRepository {
	return &SegmentRepository{db: db}
}

// CreatePair inserts both directed rows for a segment in one transaction.
func (r *SegmentRepository) CreatePair(stationA, stationB int64, travelTime int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO connections (starting_station_id, ending_station_id, travel_time)
		VALUES ($1, $2, $3)
	`

	if _, err := tx.Exec(query, stationA, stationB, travelTime); err != nil {
		return fmt.Errorf("failed to connect stations: %w", err)
	}
	if _, err := tx.Exec(query, stationB, stationA, travelTime); err != nil {
		return fmt.Errorf("failed to connect stations: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit segment: %w", err)
	}
	return nil
}

// TravelTime looks up the travel time of the directed segment from one
// station to another. Returns sql.ErrNoRows when the stations are not
// adjacent.
func (r *SegmentRepository) TravelTime(fromStationID, toStationID int64) (int, error) {
	query := `
		SELECT travel_time
		FROM connections
		WHERE starting_station_id = $1 AND ending_station_id = $2
	`

	var minutes int
	if err := r.db.Get(&minutes, query, fromStationID, toStationID); err != nil {
		return 0, err
	}
	return minutes, nil
}

// Exists reports whether the directed segment is present.
func (r *SegmentRepository) Exists(fromStationID, toStationID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM connections
			WHERE starting_station_id = $1 AND ending_station_id = $2
		)
	`

	var exists bool
	if err := r.db.Get(&exists, query, fromStationID, toStationID); err != nil {
		return false, fmt.Errorf("failed to check segment: %w", err)
	}
	return exists, nil
}
