package database

import (
	"fmt"

	"github.com/railtraits/traits-backend/internal/models"
)

// StationRepository handles database operations for the stations table
type StationRepository struct {
	db DB
}

// NewStationRepository creates a new StationRepository
func NewStationRepository(db DB) *StationRepository {
	return &StationRepository{db: db}
}

// Create inserts a station row and returns it.
func (r *StationRepository) Create(name, details string) (*models.Station, error) {
	query := `
		INSERT INTO stations (name, details)
		VALUES ($1, $2)
		RETURNING station_id
	`

	station := &models.Station{Name: name, Details: details}
	if err := r.db.QueryRow(query, name, details).Scan(&station.ID); err != nil {
		return nil, fmt.Errorf("failed to create station: %w", err)
	}
	return station, nil
}

// GetByName retrieves a station by its unique name. Returns sql.ErrNoRows
// when the station does not exist.
func (r *StationRepository) GetByName(name string) (*models.Station, error) {
	query := `
		SELECT station_id, name, details
		FROM stations
		WHERE name = $1
	`

	var station models.Station
	if err := r.db.Get(&station, query, name); err != nil {
		return nil, err
	}
	return &station, nil
}

// List returns all stations ordered by name.
func (r *StationRepository) List() ([]models.Station, error) {
	query := `
		SELECT station_id, name, details
		FROM stations
		ORDER BY name
	`

	var stations []models.Station
	if err := r.db.Select(&stations, query); err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	return stations, nil
}
