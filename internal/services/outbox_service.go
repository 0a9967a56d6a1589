package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/railtraits/traits-backend/internal/database"
	"github.com/railtraits/traits-backend/internal/graph"
)

// outboxBatchSize caps how many pending edges one flush pass picks up.
const outboxBatchSize = 500

// OutboxService replays trip edges that did not reach the graph store when
// their schedule was admitted. Edges are keyed by trip_id in the graph, so a
// replay of an already-written edge is harmless.
type OutboxService struct {
	outbox   *database.OutboxRepository
	graph    *graph.Client
	interval time.Duration
	logger   *logrus.Logger
	stop     chan struct{}
	done     chan struct{}
}

// NewOutboxService creates a new OutboxService
func NewOutboxService(outbox *database.OutboxRepository, graphClient *graph.Client, interval time.Duration, logger *logrus.Logger) *OutboxService {
	return &OutboxService{
		outbox:   outbox,
		graph:    graphClient,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background flush loop.
func (s *OutboxService) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := s.FlushOnce(context.Background()); err != nil {
					s.logger.WithError(err).Warn("outbox flush failed; will retry")
				} else if n > 0 {
					s.logger.WithField("edges", n).Info("Flushed pending graph edges")
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the flush loop and waits for it to exit.
func (s *OutboxService) Stop() {
	close(s.stop)
	<-s.done
}

// FlushOnce pushes one batch of pending edges to the graph store and marks
// them flushed. Returns how many edges were written.
func (s *OutboxService) FlushOnce(ctx context.Context) (int, error) {
	edges, err := s.outbox.ListPending(outboxBatchSize)
	if err != nil {
		return 0, err
	}
	if len(edges) == 0 {
		return 0, nil
	}

	if err := s.graph.UpsertTripEdges(ctx, edges); err != nil {
		return 0, err
	}

	tripIDs := make([]int64, len(edges))
	for i, edge := range edges {
		tripIDs[i] = edge.TripID
	}
	if err := s.outbox.MarkFlushed(tripIDs); err != nil {
		return 0, err
	}
	return len(edges), nil
}
