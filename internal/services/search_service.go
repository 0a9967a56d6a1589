package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/railtraits/traits-backend/internal/database"
	"github.com/railtraits/traits-backend/internal/graph"
	"github.com/railtraits/traits-backend/internal/models"
)

// DefaultMaxLegs bounds the variable-length path search in the graph store.
const DefaultMaxLegs = 4

// SearchService finds multi-leg connections between two stations. Candidate
// paths come from one graph snapshot; the surviving paths are hydrated from
// the relational store, which verifies every trip_id.
type SearchService struct {
	stations *database.StationRepository
	trips    *database.TripRepository
	graph    *graph.Client
	maxLegs  int
	logger   *logrus.Logger
	now      func() time.Time
}

// NewSearchService creates a new SearchService
func NewSearchService(
	stations *database.StationRepository,
	trips *database.TripRepository,
	graphClient *graph.Client,
	maxLegs int,
	logger *logrus.Logger,
) *SearchService {
	if maxLegs <= 0 {
		maxLegs = DefaultMaxLegs
	}
	return &SearchService{
		stations: stations,
		trips:    trips,
		graph:    graphClient,
		maxLegs:  maxLegs,
		logger:   logger,
		now:      time.Now,
	}
}

// SearchConnections returns connections from the starting to the ending
// station, ranked by the requested criteria. No matching connection is an
// empty result, not an error.
func (s *SearchService) SearchConnections(ctx context.Context, req *models.SearchRequest) ([]models.Connection, error) {
	if req.StartingStation == req.EndingStation {
		return nil, invalidArgf("starting and ending stations must differ")
	}

	anchor, departureMode, ascending, err := req.Normalize(s.now())
	if err != nil {
		return nil, invalidArgf("%v", err)
	}

	for _, name := range []string{req.StartingStation, req.EndingStation} {
		if _, err := s.stations.GetByName(name); err != nil {
			if database.IsNoRows(err) {
				return nil, invalidArgf("station %s does not exist", name)
			}
			return nil, err
		}
	}

	paths, err := s.graph.FindPaths(ctx, req.StartingStation, req.EndingStation, anchor, departureMode, s.maxLegs)
	if err != nil {
		return nil, err
	}

	scored := make([]scoredPath, 0, len(paths))
	for _, path := range paths {
		if !pathFeasible(path) {
			continue
		}
		scored = append(scored, scoredPath{path: path, metrics: scorePath(anchor, path)})
	}

	sortScored(scored, req.SortBy, ascending)
	if len(scored) > req.Limit {
		scored = scored[:req.Limit]
	}

	connections := make([]models.Connection, 0, len(scored))
	for _, candidate := range scored {
		ids := make([]int64, len(candidate.path))
		for i, leg := range candidate.path {
			ids[i] = leg.TripID
		}
		legs, err := s.trips.DetailsByIDs(ids)
		if err != nil {
			return nil, err
		}
		connections = append(connections, models.Connection{Legs: legs, Metrics: candidate.metrics})
	}

	s.logger.WithFields(logrus.Fields{
		"from":    req.StartingStation,
		"to":      req.EndingStation,
		"results": len(connections),
	}).Info("Connection search completed")
	return connections, nil
}
