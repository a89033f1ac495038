package trim

import (
	"time"

	"mirrorwatch/countme/pkg/timeutil"
)

const (
	// DefaultKeepWeeks is the number of most-recent weeks of raw data
	// preserved when no explicit keep count is given.
	DefaultKeepWeeks = 4

	// WarnSeconds is the length of the warning countdown before a
	// read-write run performs its deletion.
	WarnSeconds = 5

	// CountmeStartTime is the earliest valid raw-event timestamp
	// (Monday 2019-06-17 00:00:00 UTC). It is a sane floor for generating
	// and validating inputs, not a limit enforced at runtime.
	CountmeStartTime = 1560729600
)

// Policy is the retention policy for a single run. It is constructed once
// per invocation and immutable thereafter.
type Policy struct {
	// KeepWeeks is the number of most-recent weeks of data to preserve.
	// Must be at least 1.
	KeepWeeks int

	// OldestWeekOnly trims only the single oldest week of data, ignoring
	// KeepWeeks. Used for controlled incremental cleanup.
	OldestWeekOnly bool

	// ExtraSafetyWeek widens the preserved range by one additional week
	// beyond KeepWeeks.
	ExtraSafetyWeek bool

	// WarnDelay overrides the warning countdown before a read-write
	// deletion. Zero means the default of WarnSeconds seconds.
	WarnDelay time.Duration
}

// DefaultPolicy returns the retention policy used when nothing is
// configured.
func DefaultPolicy() Policy {
	return Policy{KeepWeeks: DefaultKeepWeeks}
}

// Window is the half-open timestamp range [Begin, End) of rows eligible
// for deletion in one run. End is a float because the non-oldest-week path
// derives it by plain subtraction and passes the value through to the
// query layer unchanged, fractional or not.
type Window struct {
	Begin int64
	End   float64
}

// Plan computes the trim window from the table's observed minimum and
// maximum timestamps and the retention policy.
//
// Begin is always the earliest recorded timestamp. When OldestWeekOnly is
// set, End is the week boundary following Begin, so exactly the oldest
// week is trimmed. Otherwise End is maxTime minus the kept weeks, with no
// week alignment. An End at or before Begin is returned as-is; the caller
// issues the queries anyway and they affect zero rows.
func Plan(minTime, maxTime int64, p Policy) Window {
	if p.OldestWeekOnly {
		return Window{
			Begin: minTime,
			End:   float64(timeutil.NextWeek(minTime)),
		}
	}

	weeks := p.KeepWeeks
	if p.ExtraSafetyWeek {
		weeks++
	}

	return Window{
		Begin: minTime,
		End:   float64(maxTime) - float64(weeks)*timeutil.SecondsPerWeek,
	}
}
