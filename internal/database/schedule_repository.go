package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/railtraits/traits-backend/internal/models"
)

// ScheduleRepository handles database operations for the schedules table
type ScheduleRepository struct {
	db DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// InsertTx inserts a schedule row inside the caller's transaction and fills
// in its ID.
func (r *ScheduleRepository) InsertTx(tx *sqlx.Tx, schedule *models.Schedule) error {
	query := `
		INSERT INTO schedules (
			train_id, starting_station_id, ending_station_id,
			start_time, end_time, valid_from, valid_until
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING schedule_id
	`

	err := tx.QueryRow(
		query,
		schedule.TrainID, schedule.StartingStationID, schedule.EndingStationID,
		schedule.StartTime, schedule.EndTime, schedule.ValidFrom, schedule.ValidUntil,
	).Scan(&schedule.ID)
	if err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}
	return nil
}

// ListByTrainIntersecting returns every schedule of a train whose validity
// window intersects [from, until].
func (r *ScheduleRepository) ListByTrainIntersecting(trainID int64, from, until time.Time) ([]models.Schedule, error) {
	query := `
		SELECT schedule_id, train_id, starting_station_id, ending_station_id,
			   start_time::text AS start_time, end_time::text AS end_time,
			   valid_from, valid_until
		FROM schedules
		WHERE train_id = $1
		  AND valid_from <= $3
		  AND valid_until >= $2
		ORDER BY valid_from, start_time
	`

	var schedules []models.Schedule
	if err := r.db.Select(&schedules, query, trainID, from, until); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// List returns all schedules ordered by train and validity.
func (r *ScheduleRepository) List() ([]models.Schedule, error) {
	query := `
		SELECT schedule_id, train_id, starting_station_id, ending_station_id,
			   start_time::text AS start_time, end_time::text AS end_time,
			   valid_from, valid_until
		FROM schedules
		ORDER BY train_id, valid_from, start_time
	`

	var schedules []models.Schedule
	if err := r.db.Select(&schedules, query); err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}
