package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/railtraits/traits-backend/internal/graph"
	"github.com/railtraits/traits-backend/internal/models"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 9, 1, hour, minute, 0, 0, time.UTC)
}

func TestPathFeasible(t *testing.T) {
	t.Run("Monotone Path Is Feasible", func(t *testing.T) {
		path := graph.Path{
			{Departure: at(8, 0), Arrival: at(8, 40)},
			{Departure: at(8, 48), Arrival: at(9, 48)},
		}
		assert.True(t, pathFeasible(path))
	})

	t.Run("Zero Transfer Time Is Feasible", func(t *testing.T) {
		path := graph.Path{
			{Departure: at(8, 0), Arrival: at(8, 40)},
			{Departure: at(8, 40), Arrival: at(9, 0)},
		}
		assert.True(t, pathFeasible(path))
	})

	t.Run("Leg Departing Before Arrival Is Not", func(t *testing.T) {
		path := graph.Path{
			{Departure: at(8, 0), Arrival: at(8, 40)},
			{Departure: at(8, 30), Arrival: at(9, 0)},
		}
		assert.False(t, pathFeasible(path))
	})
}

func TestScorePath(t *testing.T) {
	t.Run("Single Leg", func(t *testing.T) {
		path := graph.Path{
			{Departure: at(8, 0), Arrival: at(8, 40), TravelTime: 40},
		}

		m := scorePath(at(7, 30), path)

		assert.Equal(t, 40, m.OverallTravelTime)
		assert.Equal(t, 1, m.NumberOfTrains)
		assert.Equal(t, 30, m.InitialWaitingTime)
		assert.Equal(t, 30, m.TotalWaitingTime)
		assert.Equal(t, 40/2+2, m.EstimatedPrice)
	})

	t.Run("Two Legs With Transfer", func(t *testing.T) {
		path := graph.Path{
			{Departure: at(8, 0), Arrival: at(8, 40), TravelTime: 40},
			{Departure: at(8, 48), Arrival: at(9, 48), TravelTime: 60},
		}

		m := scorePath(at(8, 0), path)

		assert.Equal(t, 100, m.OverallTravelTime)
		assert.Equal(t, 2, m.NumberOfTrains)
		assert.Equal(t, 0, m.InitialWaitingTime)
		assert.Equal(t, 8, m.TotalWaitingTime)
		assert.Equal(t, (100-8)/2+2*2, m.EstimatedPrice)
	})
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 3, floorDiv(7, 2))
	assert.Equal(t, -4, floorDiv(-7, 2))
	assert.Equal(t, 2, floorDiv(4, 2))
	assert.Equal(t, 0, floorDiv(0, 2))
}

func TestSortScored(t *testing.T) {
	build := func() []scoredPath {
		return []scoredPath{
			{metrics: models.ConnectionMetrics{OverallTravelTime: 100, NumberOfTrains: 2, TotalWaitingTime: 8, EstimatedPrice: 50}},
			{metrics: models.ConnectionMetrics{OverallTravelTime: 90, NumberOfTrains: 3, TotalWaitingTime: 20, EstimatedPrice: 51}},
			{metrics: models.ConnectionMetrics{OverallTravelTime: 120, NumberOfTrains: 1, TotalWaitingTime: 0, EstimatedPrice: 62}},
		}
	}

	t.Run("Ascending Travel Time", func(t *testing.T) {
		scored := build()
		sortScored(scored, models.SortByOverallTravelTime, true)

		assert.Equal(t, 90, scored[0].metrics.OverallTravelTime)
		assert.Equal(t, 120, scored[2].metrics.OverallTravelTime)
	})

	t.Run("Descending Price", func(t *testing.T) {
		scored := build()
		sortScored(scored, models.SortByEstimatedPrice, false)

		assert.Equal(t, 62, scored[0].metrics.EstimatedPrice)
		assert.Equal(t, 50, scored[2].metrics.EstimatedPrice)
	})

	t.Run("Ascending Train Changes", func(t *testing.T) {
		scored := build()
		sortScored(scored, models.SortByTrainChanges, true)

		assert.Equal(t, 1, scored[0].metrics.NumberOfTrains)
		assert.Equal(t, 3, scored[2].metrics.NumberOfTrains)
	})

	t.Run("Ties Keep Input Order", func(t *testing.T) {
		scored := []scoredPath{
			{metrics: models.ConnectionMetrics{OverallTravelTime: 90, EstimatedPrice: 1}},
			{metrics: models.ConnectionMetrics{OverallTravelTime: 90, EstimatedPrice: 2}},
		}
		sortScored(scored, models.SortByOverallTravelTime, true)

		assert.Equal(t, 1, scored[0].metrics.EstimatedPrice)
		assert.Equal(t, 2, scored[1].metrics.EstimatedPrice)
	})
}
