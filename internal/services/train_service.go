package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/railtraits/traits-backend/internal/database"
	"github.com/railtraits/traits-backend/internal/graph"
	"github.com/railtraits/traits-backend/internal/models"
)

// TrainService maintains the train fleet. Mutations run through the admin
// handle; status lookups are open to any caller.
type TrainService struct {
	trains *database.TrainRepository
	graph  *graph.Client
	logger *logrus.Logger
}

// NewTrainService creates a new TrainService
func NewTrainService(trains *database.TrainRepository, graphClient *graph.Client, logger *logrus.Logger) *TrainService {
	return &TrainService{trains: trains, graph: graphClient, logger: logger}
}

// AddTrain registers a train with the given capacity and status.
func (s *TrainService) AddTrain(ctx context.Context, key models.Key, capacity int, status models.TrainStatus) (*models.Train, error) {
	if key.IsEmpty() {
		return nil, invalidArgf("train name must not be empty")
	}
	if capacity <= 0 {
		return nil, invalidArgf("capacity must be a positive integer")
	}
	if !status.Valid() {
		return nil, invalidArgf("unknown train status %s", status)
	}

	train, err := s.trains.Create(key.String(), capacity, status)
	if err != nil {
		return nil, classifyStoreError(err, "train "+key.String()+" already exists")
	}
	return train, nil
}

// UpdateTrainDetails overwrites the capacity and status fields that are
// provided; nil fields are left unchanged. Status transitions are
// unrestricted.
func (s *TrainService) UpdateTrainDetails(ctx context.Context, key models.Key, capacity *int, status *models.TrainStatus) error {
	if capacity == nil && status == nil {
		return nil
	}
	if capacity != nil && *capacity <= 0 {
		return invalidArgf("capacity must be a positive integer")
	}
	if status != nil && !status.Valid() {
		return invalidArgf("unknown train status %s", *status)
	}

	rows, err := s.trains.Update(key.String(), capacity, status)
	if err != nil {
		return classifyStoreError(err, "train already exists")
	}
	if rows == 0 {
		return invalidArgf("train %s does not exist", key)
	}
	return nil
}

// DeleteTrain drops the train. Schedules, trips, tickets and reservations
// cascade in the relational store; the train's TRIP edges are removed from
// the graph afterwards. Deleting an unknown train is a no-op.
func (s *TrainService) DeleteTrain(ctx context.Context, key models.Key) error {
	rows, err := s.trains.Delete(key.String())
	if err != nil {
		return classifyStoreError(err, "")
	}
	if rows == 0 {
		return nil
	}

	if err := s.graph.DeleteTrainEdges(ctx, key.String()); err != nil {
		s.logger.WithError(err).WithField("train", key.String()).
			Error("train rows deleted but graph edge cleanup failed")
	}

	s.logger.WithField("train", key.String()).Info("Train deleted")
	return nil
}

// GetTrainCurrentStatus returns the train's status, or nil when the train
// does not exist.
func (s *TrainService) GetTrainCurrentStatus(ctx context.Context, key models.Key) (*models.TrainStatus, error) {
	train, err := s.trains.GetByName(key.String())
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &train.Status, nil
}
