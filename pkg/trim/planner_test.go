package trim

import (
	"testing"

	"mirrorwatch/countme/pkg/timeutil"
)

func TestPlan_KeepWeeks(t *testing.T) {
	// Four weeks of data starting at a Monday boundary, keep one week.
	minTime := int64(CountmeStartTime)
	maxTime := minTime + 4*timeutil.SecondsPerWeek

	w := Plan(minTime, maxTime, Policy{KeepWeeks: 1})

	if w.Begin != minTime {
		t.Errorf("Begin = %d, want %d", w.Begin, minTime)
	}
	want := float64(maxTime) - 1*timeutil.SecondsPerWeek
	if w.End != want {
		t.Errorf("End = %v, want %v", w.End, want)
	}
}

func TestPlan_KeepWeeksIsExactSubtraction(t *testing.T) {
	// The non-oldest-week path is pure subtraction with no week
	// alignment, even when max is not on a boundary.
	minTime := int64(CountmeStartTime) + 12345
	maxTime := minTime + 4*timeutil.SecondsPerWeek + 678

	for keep := 1; keep <= 6; keep++ {
		w := Plan(minTime, maxTime, Policy{KeepWeeks: keep})
		want := float64(maxTime) - float64(keep)*timeutil.SecondsPerWeek
		if w.End != want {
			t.Errorf("keep=%d: End = %v, want %v", keep, w.End, want)
		}
	}
}

func TestPlan_OldestWeekOnly(t *testing.T) {
	minTime := int64(CountmeStartTime) // Monday midnight
	maxTime := minTime + 4*timeutil.SecondsPerWeek

	// KeepWeeks must be ignored entirely in oldest-week mode.
	for _, keep := range []int{1, 4, 52} {
		w := Plan(minTime, maxTime, Policy{KeepWeeks: keep, OldestWeekOnly: true})
		if w.Begin != minTime {
			t.Errorf("keep=%d: Begin = %d, want %d", keep, w.Begin, minTime)
		}
		want := float64(minTime + timeutil.SecondsPerWeek)
		if w.End != want {
			t.Errorf("keep=%d: End = %v, want %v", keep, w.End, want)
		}
	}
}

func TestPlan_OldestWeekOnlyMidWeekStart(t *testing.T) {
	// A mid-week minimum trims up to the next calendar week boundary,
	// never into a partially elapsed week.
	minTime := int64(CountmeStartTime) + 3*timeutil.SecondsPerDay // Thursday
	maxTime := minTime + 10*timeutil.SecondsPerWeek

	w := Plan(minTime, maxTime, Policy{KeepWeeks: 4, OldestWeekOnly: true})

	want := float64(CountmeStartTime + timeutil.SecondsPerWeek)
	if w.End != want {
		t.Errorf("End = %v, want next week boundary %v", w.End, want)
	}
}

func TestPlan_ExtraSafetyWeek(t *testing.T) {
	minTime := int64(CountmeStartTime)
	maxTime := minTime + 4*timeutil.SecondsPerWeek

	w := Plan(minTime, maxTime, Policy{KeepWeeks: 1, ExtraSafetyWeek: true})

	want := float64(maxTime) - 2*timeutil.SecondsPerWeek
	if w.End != want {
		t.Errorf("End = %v, want %v (keep + one safety week)", w.End, want)
	}
}

func TestPlan_EndBeforeBeginNotSpecialCased(t *testing.T) {
	// Less data than the retention horizon: End lands before Begin and is
	// returned as-is. The caller issues the queries anyway and they
	// affect zero rows.
	minTime := int64(CountmeStartTime)
	maxTime := minTime + timeutil.SecondsPerWeek

	w := Plan(minTime, maxTime, Policy{KeepWeeks: 4})

	want := float64(maxTime) - 4*timeutil.SecondsPerWeek
	if w.End != want {
		t.Errorf("End = %v, want %v", w.End, want)
	}
	if w.End >= float64(w.Begin) {
		t.Fatalf("test expects End (%v) before Begin (%d)", w.End, w.Begin)
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.KeepWeeks != DefaultKeepWeeks {
		t.Errorf("KeepWeeks = %d, want %d", p.KeepWeeks, DefaultKeepWeeks)
	}
	if p.OldestWeekOnly || p.ExtraSafetyWeek {
		t.Errorf("default policy enables optional modes: %+v", p)
	}
}
