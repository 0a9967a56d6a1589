package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockArithmetic(t *testing.T) {
	t.Run("Add And Components", func(t *testing.T) {
		c := ClockOf(8, 0).Add(40).Add(8)
		assert.Equal(t, 8, c.Hour())
		assert.Equal(t, 48, c.Minute())
		assert.Equal(t, "08:48:00", c.String())
		assert.False(t, c.CrossesMidnight())
	})

	t.Run("Crosses Midnight", func(t *testing.T) {
		c := ClockOf(23, 30).Add(31)
		assert.True(t, c.CrossesMidnight())
	})

	t.Run("Sub", func(t *testing.T) {
		assert.Equal(t, 68, ClockOf(9, 48).Sub(ClockOf(8, 40)))
	})

	t.Run("Gap Across Midnight", func(t *testing.T) {
		// 23:00 -> 03:00 next day is four hours.
		assert.Equal(t, 240, GapAcrossMidnight(ClockOf(23, 0), ClockOf(3, 0)))
		// 18:00 -> 00:00 next day is exactly six hours.
		assert.Equal(t, 360, GapAcrossMidnight(ClockOf(18, 0), ClockOf(0, 0)))
	})
}

func TestParseClock(t *testing.T) {
	t.Run("With Seconds", func(t *testing.T) {
		c, err := ParseClock("08:48:00")
		require.NoError(t, err)
		assert.Equal(t, ClockOf(8, 48), c)
	})

	t.Run("Without Seconds", func(t *testing.T) {
		c, err := ParseClock("23:05")
		require.NoError(t, err)
		assert.Equal(t, ClockOf(23, 5), c)
	})

	t.Run("Out Of Range", func(t *testing.T) {
		_, err := ParseClock("24:00")
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseClock("soon")
		assert.Error(t, err)
	})
}

func TestClockAt(t *testing.T) {
	d := Date(2024, time.January, 2)
	at := ClockOf(8, 40).At(d)
	assert.Equal(t, time.Date(2024, time.January, 2, 8, 40, 0, 0, time.UTC), at)
}

func TestMinutesBetween(t *testing.T) {
	a := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.January, 1, 9, 48, 0, 0, time.UTC)
	assert.Equal(t, 108, MinutesBetween(a, b))
	assert.Equal(t, -108, MinutesBetween(b, a))
}

func TestDateRange(t *testing.T) {
	t.Run("Inclusive", func(t *testing.T) {
		days := DateRange(Date(2024, time.January, 1), Date(2024, time.January, 3))
		require.Len(t, days, 3)
		assert.Equal(t, Date(2024, time.January, 1), days[0])
		assert.Equal(t, Date(2024, time.January, 3), days[2])
	})

	t.Run("Single Day", func(t *testing.T) {
		days := DateRange(Date(2024, time.June, 6), Date(2024, time.June, 6))
		assert.Len(t, days, 1)
	})

	t.Run("Inverted Window", func(t *testing.T) {
		assert.Nil(t, DateRange(Date(2024, time.June, 7), Date(2024, time.June, 6)))
	})

	t.Run("Month Boundary", func(t *testing.T) {
		days := DateRange(Date(2024, time.January, 31), Date(2024, time.February, 2))
		require.Len(t, days, 3)
		assert.Equal(t, Date(2024, time.February, 1), days[1])
	})
}
