// Package dateutil normalizes calendar-day values. The domain has no
// time-of-day semantics: every stored date is midnight UTC.
package dateutil

import "time"

const dayLayout = "2006-01-02"

// Normalize strips the time-of-day component and forces UTC.
func Normalize(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the normalized date n days after t.
func AddDays(t time.Time, n int) time.Time {
	return Normalize(t).AddDate(0, 0, n)
}

// DaysBetween returns the whole number of calendar days from 'from' to 'to'.
// Negative when 'to' precedes 'from'.
func DaysBetween(from, to time.Time) int {
	f := Normalize(from)
	t := Normalize(to)
	return int(t.Sub(f).Hours() / 24)
}

// Parse accepts a YYYY-MM-DD string (longer strings are truncated to the
// leading date portion) and returns the normalized day.
func Parse(value string) (time.Time, bool) {
	if len(value) > len(dayLayout) {
		value = value[:len(dayLayout)]
	}
	t, err := time.Parse(dayLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Format renders the normalized day as YYYY-MM-DD.
func Format(t time.Time) string {
	return Normalize(t).Format(dayLayout)
}
