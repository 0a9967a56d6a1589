package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/railtraits/traits-backend/internal/models"
)

// TripRepository handles database operations for the trips table
type TripRepository struct {
	db DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(db DB) *TripRepository {
	return &TripRepository{db: db}
}

// InsertTx inserts a trip leg inside the caller's transaction and fills in
// its ID.
func (r *TripRepository) InsertTx(tx *sqlx.Tx, trip *models.Trip) error {
	query := `
		INSERT INTO trips (
			schedule_id, train_id, starting_station_id, ending_station_id,
			trip_date, start_time, end_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING trip_id
	`

	err := tx.QueryRow(
		query,
		trip.ScheduleID, trip.TrainID, trip.StartingStationID, trip.EndingStationID,
		trip.Date, trip.StartTime, trip.EndTime,
	).Scan(&trip.ID)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}
	return nil
}

// DetailsByIDs hydrates trips with train and station names, preserving the
// order of the given IDs. IDs that have no trip row are reported as an error,
// since every graph edge must correspond to exactly one trip.
func (r *TripRepository) DetailsByIDs(ids []int64) ([]models.TripDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT t.trip_id,
			   tr.train_name,
			   s1.name AS starting_station,
			   s2.name AS ending_station,
			   t.trip_date,
			   t.start_time::text AS start_time,
			   t.end_time::text AS end_time
		FROM trips t
		JOIN trains tr ON tr.train_id = t.train_id
		JOIN stations s1 ON s1.station_id = t.starting_station_id
		JOIN stations s2 ON s2.station_id = t.ending_station_id
		WHERE t.trip_id = ANY($1)
	`

	var rows []models.TripDetail
	if err := r.db.Select(&rows, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to hydrate trips: %w", err)
	}

	byID := make(map[int64]models.TripDetail, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	ordered := make([]models.TripDetail, 0, len(ids))
	for _, id := range ids {
		detail, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("trip %d exists in the graph but not in the relational store", id)
		}
		ordered = append(ordered, detail)
	}
	return ordered, nil
}
