// Package timeutil provides the UTC week-boundary arithmetic used by the
// trim planner and the date rendering used for operator-facing reports.
package timeutil

import (
	"math"
	"time"
)

const (
	// SecondsPerDay is the number of seconds in one day.
	SecondsPerDay = 24 * 60 * 60

	// SecondsPerWeek is the number of seconds in one calendar week.
	SecondsPerWeek = 7 * SecondsPerDay
)

// NextWeek returns the Unix timestamp of the next Monday 00:00:00 UTC
// strictly after the UTC calendar day containing ts. An input that is
// itself a Monday midnight advances a full seven days, so the result is
// always a future week boundary and never the input's own boundary.
func NextWeek(ts int64) int64 {
	t := time.Unix(ts, 0).UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(t.Weekday()) + 6) % 7
	monday := midnight.AddDate(0, 0, -offset)

	return monday.AddDate(0, 0, 7).Unix()
}

// FormatDate renders a Unix timestamp as a UTC date in YYYY-MM-DD form.
// It accepts fractional seconds because planner output may be non-integer.
// The result is for display only and must not be used for comparisons.
func FormatDate(ts float64) string {
	sec := int64(math.Floor(ts))
	return time.Unix(sec, 0).UTC().Format("2006-01-02")
}
