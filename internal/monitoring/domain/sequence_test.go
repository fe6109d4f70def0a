package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextRequiredDateEmptyHistory(t *testing.T) {
	start := day(2024, 1, 1)
	assert.Equal(t, start, NextRequiredDate(start, nil))
}

func TestNextRequiredDateContiguous(t *testing.T) {
	start := day(2024, 1, 1)
	dates := []time.Time{day(2024, 1, 1), day(2024, 1, 2), day(2024, 1, 3)}
	assert.Equal(t, day(2024, 1, 4), NextRequiredDate(start, dates))
}

func TestNextRequiredDateGapStopsAdvancement(t *testing.T) {
	start := day(2024, 1, 1)
	dates := []time.Time{day(2024, 1, 1), day(2024, 1, 3)}
	assert.Equal(t, day(2024, 1, 2), NextRequiredDate(start, dates))
}

func TestNextRequiredDateOutOfOrderStorage(t *testing.T) {
	start := day(2024, 1, 1)
	dates := []time.Time{day(2024, 1, 3), day(2024, 1, 1), day(2024, 1, 2)}
	assert.Equal(t, day(2024, 1, 4), NextRequiredDate(start, dates))
}

func TestNextRequiredDateSkipsPreStartDates(t *testing.T) {
	start := day(2024, 1, 5)
	dates := []time.Time{day(2024, 1, 1), day(2024, 1, 5)}
	assert.Equal(t, day(2024, 1, 6), NextRequiredDate(start, dates))
}

func TestNextRequiredDateNormalizesTimeOfDay(t *testing.T) {
	start := day(2024, 1, 1)
	dates := []time.Time{time.Date(2024, 1, 1, 17, 30, 0, 0, time.UTC)}
	assert.Equal(t, day(2024, 1, 2), NextRequiredDate(start, dates))
}
