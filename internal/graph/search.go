package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Leg is one TRIP edge on a candidate path, as read back from the graph.
type Leg struct {
	TripID     int64
	TrainName  string
	From       string
	To         string
	Departure  time.Time
	Arrival    time.Time
	TravelTime int
}

// Path is an ordered sequence of legs from the start station to the end
// station.
type Path []Leg

// FindPaths enumerates simple directed paths between two stations, bounded at
// maxLegs edges. In departure mode every edge departs at or after the anchor;
// in arrival mode every edge arrives at or before it. All edges of a path
// share the calendar date of its first departure, so there are no overnight
// connections.
func (c *Client) FindPaths(ctx context.Context, start, end string, anchor time.Time, departureMode bool, maxLegs int) ([]Path, error) {
	timeFilter := `r.departure_time >= $anchor`
	if !departureMode {
		timeFilter = `r.arrival_time <= $anchor`
	}

	query := fmt.Sprintf(`
		MATCH path = (a:Station {name: $start})-[:TRIP*1..%d]->(b:Station {name: $end})
		WHERE ALL(r IN relationships(path) WHERE %s)
		  AND ALL(r IN relationships(path)
				WHERE date(r.departure_time) = date(head(relationships(path)).departure_time))
		  AND ALL(n IN nodes(path) WHERE single(m IN nodes(path) WHERE m = n))
		RETURN [r IN relationships(path) | {
			trip_id: r.trip_id,
			train_name: r.train_name,
			from: startNode(r).name,
			to: endNode(r).name,
			departure: r.departure_time,
			arrival: r.arrival_time,
			travel_time: r.travel_time
		}] AS legs
		ORDER BY length(path)
	`, maxLegs, timeFilter)

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		cursor, err := tx.Run(ctx, query, map[string]any{
			"start":  start,
			"end":    end,
			"anchor": dbtype.LocalDateTime(anchor),
		})
		if err != nil {
			return nil, err
		}

		var paths []Path
		for cursor.Next(ctx) {
			raw, ok := cursor.Record().Get("legs")
			if !ok {
				continue
			}
			path, err := decodePath(raw)
			if err != nil {
				return nil, err
			}
			paths = append(paths, path)
		}
		return paths, cursor.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search connections: %w", err)
	}

	paths, _ := result.([]Path)
	return paths, nil
}

func decodePath(raw any) (Path, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected path shape %T from graph store", raw)
	}

	path := make(Path, 0, len(items))
	for _, item := range items {
		props, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected leg shape %T from graph store", item)
		}
		leg, err := decodeLeg(props)
		if err != nil {
			return nil, err
		}
		path = append(path, leg)
	}
	return path, nil
}

func decodeLeg(props map[string]any) (Leg, error) {
	var leg Leg
	var ok bool

	if leg.TripID, ok = props["trip_id"].(int64); !ok {
		return Leg{}, fmt.Errorf("trip edge is missing trip_id")
	}
	leg.TrainName, _ = props["train_name"].(string)
	leg.From, _ = props["from"].(string)
	leg.To, _ = props["to"].(string)

	departure, ok := props["departure"].(dbtype.LocalDateTime)
	if !ok {
		return Leg{}, fmt.Errorf("trip edge %d is missing departure_time", leg.TripID)
	}
	arrival, ok := props["arrival"].(dbtype.LocalDateTime)
	if !ok {
		return Leg{}, fmt.Errorf("trip edge %d is missing arrival_time", leg.TripID)
	}
	leg.Departure = departure.Time()
	leg.Arrival = arrival.Time()

	travel, ok := props["travel_time"].(int64)
	if !ok {
		return Leg{}, fmt.Errorf("trip edge %d is missing travel_time", leg.TripID)
	}
	leg.TravelTime = int(travel)

	return leg, nil
}
