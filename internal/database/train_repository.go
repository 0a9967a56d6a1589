package database

import (
	"fmt"

	"github.com/railtraits/traits-backend/internal/models"
)

// TrainRepository handles database operations for the trains table
type TrainRepository struct {
	db DB
}

// NewTrainRepository creates a new TrainRepository
func NewTrainRepository(db DB) *TrainRepository {
	return &TrainRepository{db: db}
}

// Create inserts a train row and returns it.
func (r *TrainRepository) Create(name string, capacity int, status models.TrainStatus) (*models.Train, error) {
	query := `
		INSERT INTO trains (train_name, capacity, status)
		VALUES ($1, $2, $3)
		RETURNING train_id
	`

	train := &models.Train{Name: name, Capacity: capacity, Status: status}
	if err := r.db.QueryRow(query, name, capacity, status).Scan(&train.ID); err != nil {
		return nil, fmt.Errorf("failed to create train: %w", err)
	}
	return train, nil
}

// GetByName retrieves a train by its unique name. Returns sql.ErrNoRows when
// the train does not exist.
func (r *TrainRepository) GetByName(name string) (*models.Train, error) {
	query := `
		SELECT train_id, train_name, capacity, status
		FROM trains
		WHERE train_name = $1
	`

	var train models.Train
	if err := r.db.Get(&train, query, name); err != nil {
		return nil, err
	}
	return &train, nil
}

// Update overwrites capacity and status where provided; nil fields keep their
// current value. Returns the number of rows updated.
func (r *TrainRepository) Update(name string, capacity *int, status *models.TrainStatus) (int64, error) {
	query := `
		UPDATE trains
		SET capacity = COALESCE($2, capacity),
			status = COALESCE($3, status)
		WHERE train_name = $1
	`

	res, err := r.db.Exec(query, name, capacity, status)
	if err != nil {
		return 0, fmt.Errorf("failed to update train: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes a train. Schedules, trips, tickets and reservations cascade
// in the store. Returns the number of rows deleted.
func (r *TrainRepository) Delete(name string) (int64, error) {
	query := `DELETE FROM trains WHERE train_name = $1`

	res, err := r.db.Exec(query, name)
	if err != nil {
		return 0, fmt.Errorf("failed to delete train: %w", err)
	}
	return res.RowsAffected()
}
