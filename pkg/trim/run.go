package trim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Store is the full storage surface the orchestrator needs: the executor's
// range operations plus the min/max probes and the audit log.
type Store interface {
	RangeStore

	// MinTime returns the smallest timestamp in the table. The bool is
	// false when the table is empty.
	MinTime(ctx context.Context) (int64, bool, error)

	// MaxTime returns the largest timestamp in the table. The bool is
	// false when the table is empty.
	MaxTime(ctx context.Context) (int64, bool, error)

	// RecordRun appends a completed read-write run to the audit log.
	RecordRun(ctx context.Context, run RunRecord) error
}

// RunRecord describes one completed read-write trim run.
type RunRecord struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	TrimBegin   int64
	TrimEnd     float64
	RowsDeleted int64
	Mode        string
}

// Result summarizes a single trim run.
type Result struct {
	// Window is the computed trim window. Zero when Skipped.
	Window Window

	// RowsDeleted is the number of rows removed. Always zero for
	// read-only runs.
	RowsDeleted int64

	// Skipped is true when the table was empty and no window was planned.
	Skipped bool
}

// Run wires the range queries, the planner and the executor together for
// one invocation. An empty table is a zero-row no-op: nothing is planned
// and nothing is deleted.
//
// Completed read-write runs are appended to the store's audit log with a
// fresh run ID. Read-only runs are not recorded.
func Run(ctx context.Context, store Store, policy Policy, readWrite bool, out io.Writer) (*Result, error) {
	return run(ctx, store, policy, readWrite, out, NewTrimmer(store, out))
}

// run is Run with the trimmer injected so tests can substitute a faked
// warning wait.
func run(ctx context.Context, store Store, policy Policy, readWrite bool, out io.Writer, trimmer *Trimmer) (*Result, error) {
	logger := slog.Default().With("component", "trim")

	minTime, ok, err := store.MinTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read minimum timestamp: %w", err)
	}
	if !ok {
		logger.Info("table is empty, nothing to trim")
		fmt.Fprintln(out, "No data to trim.")
		return &Result{Skipped: true}, nil
	}

	maxTime, ok, err := store.MaxTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read maximum timestamp: %w", err)
	}
	if !ok {
		logger.Info("table is empty, nothing to trim")
		fmt.Fprintln(out, "No data to trim.")
		return &Result{Skipped: true}, nil
	}

	window := Plan(minTime, maxTime, policy)

	if policy.WarnDelay > 0 {
		trimmer.warnDelay = policy.WarnDelay
	}

	startedAt := time.Now().UTC()
	deleted, err := trimmer.Execute(ctx, window, readWrite)
	if err != nil {
		return nil, err
	}

	if readWrite {
		record := RunRecord{
			ID:          uuid.NewString(),
			StartedAt:   startedAt,
			FinishedAt:  time.Now().UTC(),
			TrimBegin:   window.Begin,
			TrimEnd:     window.End,
			RowsDeleted: deleted,
			Mode:        "read-write",
		}
		if err := store.RecordRun(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to record trim run: %w", err)
		}
		logger.Info("trim run recorded",
			"run_id", record.ID,
			"rows_deleted", deleted,
		)
	}

	return &Result{Window: window, RowsDeleted: deleted}, nil
}
