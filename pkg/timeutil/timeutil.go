// Package timeutil provides wall-clock arithmetic for schedules and trips.
// All times are local wall-clock; there is no timezone handling.
package timeutil

import (
	"fmt"
	"time"
)

// MinutesPerDay is the number of minutes in a calendar day.
const MinutesPerDay = 24 * 60

// Clock is a time of day expressed as minutes since midnight. Values at or
// beyond MinutesPerDay represent a time that has crossed into the next day,
// which callers must detect with CrossesMidnight before persisting.
type Clock int

// ClockOf builds a Clock from an hour and minute.
func ClockOf(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses "HH:MM" or "HH:MM:SS" as stored in the TIME columns.
func ParseClock(s string) (Clock, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, fmt.Errorf("invalid clock time %q", s)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return ClockOf(h, m), nil
}

// Add advances the clock by the given number of minutes.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// Sub returns the number of minutes from o to c.
func (c Clock) Sub(o Clock) int {
	return int(c - o)
}

// CrossesMidnight reports whether the clock has run past the end of its day.
func (c Clock) CrossesMidnight() bool {
	return c >= MinutesPerDay
}

// Hour returns the hour component.
func (c Clock) Hour() int {
	return int(c) / 60
}

// Minute returns the minute component.
func (c Clock) Minute() int {
	return int(c) % 60
}

// String formats the clock as HH:MM:SS for the relational store.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:00", c.Hour(), c.Minute())
}

// At anchors the clock on a calendar date.
func (c Clock) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, date.Location())
}

// GapAcrossMidnight returns the minutes between an end-of-day clock on day D
// and a start-of-day clock on day D+1.
func GapAcrossMidnight(end, start Clock) int {
	return (MinutesPerDay - int(end)) + int(start)
}

// MinutesBetween returns the whole minutes from a to b. Negative when b is
// before a.
func MinutesBetween(a, b time.Time) int {
	return int(b.Sub(a) / time.Minute)
}

// Date builds a midnight timestamp for the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the time-of-day component.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateRange enumerates every calendar day from from to until inclusive.
// Returns nil when until precedes from.
func DateRange(from, until time.Time) []time.Time {
	from, until = Truncate(from), Truncate(until)
	if until.Before(from) {
		return nil
	}
	var days []time.Time
	for d := from; !d.After(until); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
