package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/railtraits/traits-backend/internal/database"
	"github.com/railtraits/traits-backend/internal/graph"
	"github.com/railtraits/traits-backend/internal/models"
)

// NetworkService maintains the station network: stations and the segments
// connecting them. All its mutations are operator operations and run through
// the admin handle.
type NetworkService struct {
	stations *database.StationRepository
	segments *database.SegmentRepository
	graph    *graph.Client
	logger   *logrus.Logger
}

// NewNetworkService creates a new NetworkService
func NewNetworkService(
	stations *database.StationRepository,
	segments *database.SegmentRepository,
	graphClient *graph.Client,
	logger *logrus.Logger,
) *NetworkService {
	return &NetworkService{
		stations: stations,
		segments: segments,
		graph:    graphClient,
		logger:   logger,
	}
}

// AddStation creates a station and its graph node counterpart.
func (s *NetworkService) AddStation(ctx context.Context, key models.Key, details string) (*models.Station, error) {
	if key.IsEmpty() {
		return nil, invalidArgf("station name must not be empty")
	}

	station, err := s.stations.Create(key.String(), details)
	if err != nil {
		return nil, classifyStoreError(err, "station "+key.String()+" already exists")
	}

	// The node write is decoupled from the relational transaction; on failure
	// the inconsistency is logged and the node is healed on the next segment
	// or schedule touching this station.
	if err := s.graph.EnsureStation(ctx, station.Name, station.Details); err != nil {
		s.logger.WithError(err).WithField("station", station.Name).
			Error("station row committed but graph node write failed")
	}

	return station, nil
}

// ConnectStations records an undirected segment between two existing
// stations, stored as two directed rows with the same travel time.
func (s *NetworkService) ConnectStations(ctx context.Context, start, end models.Key, travelTime int) error {
	if start == end {
		return invalidArgf("starting and ending stations must differ")
	}
	if travelTime < models.MinSegmentMinutes || travelTime > models.MaxSegmentMinutes {
		return invalidArgf("travel time must be between %d and %d minutes",
			models.MinSegmentMinutes, models.MaxSegmentMinutes)
	}

	from, err := s.stations.GetByName(start.String())
	if err != nil {
		if database.IsNoRows(err) {
			return invalidArgf("station %s does not exist", start)
		}
		return err
	}
	to, err := s.stations.GetByName(end.String())
	if err != nil {
		if database.IsNoRows(err) {
			return invalidArgf("station %s does not exist", end)
		}
		return err
	}

	if err := s.segments.CreatePair(from.ID, to.ID, travelTime); err != nil {
		return classifyStoreError(err, "stations are already connected")
	}

	s.logger.WithFields(logrus.Fields{
		"from":        start.String(),
		"to":          end.String(),
		"travel_time": travelTime,
	}).Info("Stations connected")
	return nil
}
