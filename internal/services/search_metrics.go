package services

import (
	"sort"
	"time"

	"github.com/railtraits/traits-backend/internal/graph"
	"github.com/railtraits/traits-backend/internal/models"
	"github.com/railtraits/traits-backend/pkg/timeutil"
)

// scoredPath pairs a candidate path with its ranking metrics.
type scoredPath struct {
	path    graph.Path
	metrics models.ConnectionMetrics
}

// pathFeasible reports whether each leg departs at or after the previous
// leg's arrival. The graph query constrains every leg against the anchor, not
// against its predecessor, so this filter runs before scoring.
func pathFeasible(path graph.Path) bool {
	for i := 1; i < len(path); i++ {
		if path[i].Departure.Before(path[i-1].Arrival) {
			return false
		}
	}
	return true
}

// scorePath computes the four ranking metrics for one candidate path.
func scorePath(anchor time.Time, path graph.Path) models.ConnectionMetrics {
	var travel, interWait int
	for i, leg := range path {
		travel += leg.TravelTime
		if i > 0 {
			interWait += timeutil.MinutesBetween(path[i-1].Arrival, leg.Departure)
		}
	}
	initialWait := timeutil.MinutesBetween(anchor, path[0].Departure)

	return models.ConnectionMetrics{
		OverallTravelTime:  travel,
		NumberOfTrains:     len(path),
		InitialWaitingTime: initialWait,
		TotalWaitingTime:   initialWait + interWait,
		EstimatedPrice:     floorDiv(travel-interWait, 2) + 2*len(path),
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// metricValue picks the sorting key out of the metrics.
func metricValue(m models.ConnectionMetrics, criteria models.SortingCriteria) int {
	switch criteria {
	case models.SortByTrainChanges:
		return m.NumberOfTrains
	case models.SortByWaitingTime:
		return m.TotalWaitingTime
	case models.SortByEstimatedPrice:
		return m.EstimatedPrice
	default:
		return m.OverallTravelTime
	}
}

// sortScored orders candidates by the selected metric. The sort is stable, so
// ties keep the graph store's path order.
func sortScored(scored []scoredPath, criteria models.SortingCriteria, ascending bool) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := metricValue(scored[i].metrics, criteria), metricValue(scored[j].metrics, criteria)
		if ascending {
			return a < b
		}
		return a > b
	})
}
