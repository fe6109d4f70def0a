package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	in := time.Date(2024, 1, 15, 18, 30, 45, 123, time.FixedZone("X", 5*3600))
	got := Normalize(in)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestAddDays(t *testing.T) {
	start := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), AddDays(start, 1))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 2, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 40, DaysBetween(a, b))
	assert.Equal(t, -40, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestParse(t *testing.T) {
	got, ok := Parse("2024-03-05")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)

	got, ok = Parse("2024-03-05T12:00:00Z")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)

	_, ok = Parse("not-a-date")
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2024-03-05", Format(time.Date(2024, 3, 5, 17, 4, 0, 0, time.UTC)))
}
