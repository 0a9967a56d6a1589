package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/railtraits/traits-backend/internal/models"
)

// OutboxRepository handles the graph_outbox table. Trip edges destined for
// the graph store are committed here in the same transaction as their trip
// rows, then flushed idempotently by the outbox worker.
type OutboxRepository struct {
	db DB
}

// NewOutboxRepository creates a new OutboxRepository
func NewOutboxRepository(db DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// InsertTx records a pending graph edge inside the caller's transaction.
func (r *OutboxRepository) InsertTx(tx *sqlx.Tx, edge models.TripEdge) error {
	query := `
		INSERT INTO graph_outbox (
			trip_id, from_station, to_station, train_name,
			departure, arrival, travel_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tx.Exec(
		query,
		edge.TripID, edge.FromStation, edge.ToStation, edge.TrainName,
		edge.Departure, edge.Arrival, edge.TravelTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert outbox edge: %w", err)
	}
	return nil
}

// ListPending returns unflushed edges, oldest trips first.
func (r *OutboxRepository) ListPending(limit int) ([]models.TripEdge, error) {
	query := `
		SELECT trip_id, from_station, to_station, train_name,
			   departure, arrival, travel_time
		FROM graph_outbox
		WHERE NOT flushed
		ORDER BY trip_id
		LIMIT $1
	`

	var edges []models.TripEdge
	if err := r.db.Select(&edges, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list pending edges: %w", err)
	}
	return edges, nil
}

// MarkFlushed records that the given trips' edges reached the graph store.
func (r *OutboxRepository) MarkFlushed(tripIDs []int64) error {
	if len(tripIDs) == 0 {
		return nil
	}

	query := `UPDATE graph_outbox SET flushed = TRUE WHERE trip_id = ANY($1)`

	if _, err := r.db.Exec(query, pq.Array(tripIDs)); err != nil {
		return fmt.Errorf("failed to mark edges flushed: %w", err)
	}
	return nil
}
