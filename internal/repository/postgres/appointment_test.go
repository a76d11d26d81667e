package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	at := time.Date(2025, 6, 15, 14, 30, 45, 123, loc)

	start, end := dayBounds(at)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 6, 15, 23, 59, 59, 999999999, loc), end)

	// Midnight and the last nanosecond both fall inside their own day.
	midnight := time.Date(2025, 6, 15, 0, 0, 0, 0, loc)
	s, e := dayBounds(midnight)
	assert.False(t, midnight.Before(s))
	assert.False(t, midnight.After(e))

	last := time.Date(2025, 6, 15, 23, 59, 59, 999999999, loc)
	s, e = dayBounds(last)
	assert.False(t, last.Before(s))
	assert.False(t, last.After(e))

	// The next midnight belongs to the next day.
	next := start.Add(24 * time.Hour)
	assert.True(t, next.After(end))
}
