package domain

import (
	"sort"
	"time"

	"github.com/poultrylabs/brooder/internal/dateutil"
)

// NextRequiredDate derives the only date the recorder will accept next, as a
// pure function of the stored history. Replaying in date order: a record on
// the expected date advances the cursor one day, a record before the cursor
// is already satisfied and is skipped, and the first record past the cursor
// marks a gap, which stops advancement. Tolerant of out-of-order storage.
func NextRequiredDate(startDate time.Time, recordDates []time.Time) time.Time {
	sorted := make([]time.Time, 0, len(recordDates))
	for _, d := range recordDates {
		sorted = append(sorted, dateutil.Normalize(d))
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	expected := dateutil.Normalize(startDate)
	for _, d := range sorted {
		if d.Before(expected) {
			continue
		}
		if d.Equal(expected) {
			expected = dateutil.AddDays(expected, 1)
			continue
		}
		break
	}
	return expected
}
