package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railtraits/traits-backend/pkg/timeutil"
)

func TestPlanLegs(t *testing.T) {
	t.Run("First Leg Departs At Schedule Start", func(t *testing.T) {
		// Three stops: waits 5/8/10, segment travel 40 and 60 minutes.
		// The first stop's wait never delays the first departure.
		legs, end := planLegs(timeutil.ClockOf(8, 0), []int{5, 8, 10}, []int{40, 60})

		require.Len(t, legs, 2)
		assert.Equal(t, timeutil.ClockOf(8, 0), legs[0].Start)
		assert.Equal(t, timeutil.ClockOf(8, 40), legs[0].End)
		assert.Equal(t, timeutil.ClockOf(8, 48), legs[1].Start)
		assert.Equal(t, timeutil.ClockOf(9, 48), legs[1].End)
		assert.Equal(t, timeutil.ClockOf(9, 58), end)
	})

	t.Run("Two Stops", func(t *testing.T) {
		legs, end := planLegs(timeutil.ClockOf(6, 30), []int{15, 10}, []int{25})

		require.Len(t, legs, 1)
		assert.Equal(t, timeutil.ClockOf(6, 30), legs[0].Start)
		assert.Equal(t, timeutil.ClockOf(6, 55), legs[0].End)
		assert.Equal(t, timeutil.ClockOf(7, 5), end)
	})

	t.Run("End Time Sums Travel And Dwell", func(t *testing.T) {
		start := timeutil.ClockOf(10, 0)
		waits := []int{5, 12, 7, 10}
		travels := []int{30, 45, 20}

		legs, end := planLegs(start, waits, travels)

		total := 0
		for _, travel := range travels {
			total += travel
		}
		for _, wait := range waits[1:] {
			total += wait
		}
		assert.Equal(t, start.Add(total), end)
		assert.Equal(t, start, legs[0].Start)
	})

	t.Run("Crossing Midnight Is Detectable", func(t *testing.T) {
		_, end := planLegs(timeutil.ClockOf(23, 0), []int{0, 10}, []int{55})

		assert.True(t, end.CrossesMidnight())
	})
}

func TestIntervalsOverlap(t *testing.T) {
	a, b := timeutil.ClockOf(8, 0), timeutil.ClockOf(10, 0)

	t.Run("Touching Endpoints Overlap", func(t *testing.T) {
		assert.True(t, intervalsOverlap(a, b, b, timeutil.ClockOf(12, 0)))
	})

	t.Run("Contained Interval Overlaps", func(t *testing.T) {
		assert.True(t, intervalsOverlap(a, b, timeutil.ClockOf(8, 30), timeutil.ClockOf(9, 30)))
	})

	t.Run("Disjoint Intervals Do Not Overlap", func(t *testing.T) {
		assert.False(t, intervalsOverlap(a, b, timeutil.ClockOf(10, 1), timeutil.ClockOf(11, 0)))
	})
}

func TestWindowsIntersect(t *testing.T) {
	from := timeutil.Date(2026, 9, 1)
	until := timeutil.Date(2026, 9, 10)

	t.Run("Shared Day", func(t *testing.T) {
		assert.True(t, windowsIntersect(from, until, timeutil.Date(2026, 9, 10), timeutil.Date(2026, 9, 20)))
	})

	t.Run("Disjoint Windows", func(t *testing.T) {
		assert.False(t, windowsIntersect(from, until, timeutil.Date(2026, 9, 11), timeutil.Date(2026, 9, 20)))
	})
}
