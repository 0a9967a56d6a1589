package services

import (
	"time"

	"github.com/railtraits/traits-backend/pkg/timeutil"
)

// plannedLeg is the computed timing of one consecutive stop pair before
// materialisation.
type plannedLeg struct {
	Start      timeutil.Clock
	End        timeutil.Clock
	TravelTime int
}

// planLegs computes the departure and arrival clocks for each consecutive
// stop pair of a schedule, and the schedule's end-of-day time.
//
// waits[i] is the dwell at stop i, travels[i] the minutes from stop i to stop
// i+1. The first leg departs exactly at the schedule start (the first stop's
// wait is not applied); each later leg departs after dwelling at its starting
// stop; the terminus dwell counts into the end-of-day time.
func planLegs(start timeutil.Clock, waits, travels []int) ([]plannedLeg, timeutil.Clock) {
	legs := make([]plannedLeg, 0, len(travels))
	cursor := start
	for i, travel := range travels {
		if i > 0 {
			cursor = cursor.Add(waits[i])
		}
		leg := plannedLeg{Start: cursor, TravelTime: travel}
		cursor = cursor.Add(travel)
		leg.End = cursor
		legs = append(legs, leg)
	}
	end := cursor.Add(waits[len(waits)-1])
	return legs, end
}

// intervalsOverlap reports whether two same-day [start, end] intervals share
// any minute. Touching endpoints count as overlap.
func intervalsOverlap(aStart, aEnd, bStart, bEnd timeutil.Clock) bool {
	return aStart <= bEnd && bStart <= aEnd
}

// windowsIntersect reports whether two inclusive date windows share a day.
func windowsIntersect(aFrom, aUntil, bFrom, bUntil time.Time) bool {
	return !aFrom.After(bUntil) && !bFrom.After(aUntil)
}
