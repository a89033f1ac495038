package trim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"mirrorwatch/countme/pkg/timeutil"
)

// RangeStore is the minimal storage surface the executor needs: counting
// and deleting rows within a half-open timestamp range.
type RangeStore interface {
	// CountRange returns the number of rows with begin <= timestamp < end.
	CountRange(ctx context.Context, begin int64, end float64) (int64, error)

	// DeleteRange deletes rows with begin <= timestamp < end in a single
	// transaction and returns the number of rows removed.
	DeleteRange(ctx context.Context, begin int64, end float64) (int64, error)
}

// Trimmer reports a planned deletion and, in read-write mode, performs it
// after an interruptible warning countdown. The countdown is the only
// suspension point: cancellation during it propagates to the caller
// unchanged and guarantees the delete was never issued.
type Trimmer struct {
	store     RangeStore
	out       io.Writer
	logger    *slog.Logger
	warnDelay time.Duration

	// sleep is the blocking interruptible wait. Tests replace it to avoid
	// real wall-clock delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewTrimmer creates a Trimmer writing its operator report to out.
func NewTrimmer(store RangeStore, out io.Writer) *Trimmer {
	return &Trimmer{
		store:     store,
		out:       out,
		logger:    slog.Default().With("component", "trim.executor"),
		warnDelay: WarnSeconds * time.Second,
		sleep:     sleepContext,
	}
}

// Execute reports the blast radius of the window and, when readWrite is
// set, deletes it after the warning countdown. It returns the number of
// rows deleted; read-only runs always return zero.
//
// Cancellation during the countdown is returned as the context's error,
// never wrapped into a generic failure, so the caller can map it to a
// distinguished exit status.
func (t *Trimmer) Execute(ctx context.Context, w Window, readWrite bool) (int64, error) {
	affected, err := t.store.CountRange(ctx, w.Begin, w.End)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows in trim window: %w", err)
	}

	beginDate := timeutil.FormatDate(float64(w.Begin))
	endDate := timeutil.FormatDate(w.End)

	t.logger.Debug("trim window computed",
		"trim_begin", w.Begin,
		"trim_end", w.End,
		"affected", affected,
		"read_write", readWrite,
	)

	if !readWrite {
		fmt.Fprintf(t.out, "Not deleting data from %s to %s.\n", beginDate, endDate)
		fmt.Fprintf(t.out, "This would affect %d entries.\n", affected)
		return 0, nil
	}

	fmt.Fprintf(t.out, "About to DELETE data from %s to %s.\n", beginDate, endDate)
	fmt.Fprintf(t.out, "This will affect %d entries.\n", affected)
	fmt.Fprintf(t.out, "Interrupt within %d seconds to prevent that.\n", int(t.warnDelay/time.Second))

	// The wait strictly precedes the delete. An interrupt here must reach
	// the caller unswallowed with no deletion issued.
	if err := t.sleep(ctx, t.warnDelay); err != nil {
		t.logger.Info("trim interrupted during warning countdown")
		return 0, err
	}

	fmt.Fprintln(t.out, "DELETING data...")
	deleted, err := t.store.DeleteRange(ctx, w.Begin, w.End)
	if err != nil {
		return 0, fmt.Errorf("failed to delete rows in trim window: %w", err)
	}
	fmt.Fprintln(t.out, "Done.")

	t.logger.Info("trim completed",
		"trim_begin", w.Begin,
		"trim_end", w.End,
		"rows_deleted", deleted,
	)

	return deleted, nil
}

// sleepContext blocks for d or until ctx is cancelled, returning ctx.Err()
// in the latter case.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
