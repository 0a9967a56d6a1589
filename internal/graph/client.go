// Package graph is the adapter for the graph store: one Station node per
// station and one directed TRIP edge per materialised trip leg. The graph is
// the index that connection search walks; the relational store stays the
// source of truth and hydration verifies every trip_id against it.
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"github.com/sirupsen/logrus"

	"github.com/railtraits/traits-backend/internal/models"
)

// Client wraps a Neo4j driver with the operations the services need.
type Client struct {
	driver neo4j.DriverWithContext
	logger *logrus.Logger
}

// New connects to the graph store and verifies connectivity.
func New(ctx context.Context, uri, username, password string, logger *logrus.Logger) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create graph driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to reach graph store: %w", err)
	}
	return &Client{driver: driver, logger: logger}, nil
}

// Close releases the underlying driver.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// EnsureStation upserts the Station node for the given name.
func (c *Client) EnsureStation(ctx context.Context, name, details string) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, `
			MERGE (s:Station {name: $name})
			SET s.details = $details
		`, map[string]any{"name": name, "details": details})
	})
	if err != nil {
		return fmt.Errorf("failed to upsert station node: %w", err)
	}
	return nil
}

// UpsertTripEdges writes TRIP edges for the given legs in one transaction.
// Edges are keyed by trip_id, so replaying an already-flushed leg is a no-op
// update rather than a duplicate.
func (c *Client) UpsertTripEdges(ctx context.Context, edges []models.TripEdge) error {
	if len(edges) == 0 {
		return nil
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, edge := range edges {
			_, err := tx.Run(ctx, `
				MATCH (a:Station {name: $from}), (b:Station {name: $to})
				MERGE (a)-[r:TRIP {trip_id: $trip_id}]->(b)
				SET r.train_name = $train_name,
					r.departure_time = $departure,
					r.arrival_time = $arrival,
					r.travel_time = $travel_time
			`, map[string]any{
				"from":        edge.FromStation,
				"to":          edge.ToStation,
				"trip_id":     edge.TripID,
				"train_name":  edge.TrainName,
				"departure":   dbtype.LocalDateTime(edge.Departure),
				"arrival":     dbtype.LocalDateTime(edge.Arrival),
				"travel_time": edge.TravelTime,
			})
			if err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert trip edges: %w", err)
	}
	return nil
}

// DeleteTrainEdges removes every TRIP edge of the given train. Called when a
// train is dropped so the graph keeps matching the cascaded relational rows.
func (c *Client) DeleteTrainEdges(ctx context.Context, trainName string) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, `
			MATCH ()-[r:TRIP {train_name: $train_name}]->()
			DELETE r
		`, map[string]any{"train_name": trainName})
	})
	if err != nil {
		return fmt.Errorf("failed to delete trip edges: %w", err)
	}
	return nil
}
