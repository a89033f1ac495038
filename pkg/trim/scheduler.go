package trim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler executes recurring read-write trim runs on a cron schedule.
// Scheduled runs go through the same warning countdown as interactive
// ones; cancelling the surrounding context aborts an in-flight countdown
// and stops the scheduler.
type Scheduler struct {
	store    Store
	policy   Policy
	schedule string
	out      io.Writer
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler that runs trims against store with the
// given policy whenever schedule fires.
//
// Common cron expressions:
//   - "0 3 * * 1"  - Mondays at 3 AM
//   - "0 3 * * *"  - daily at 3 AM
func NewScheduler(store Store, policy Policy, schedule string, out io.Writer) *Scheduler {
	return &Scheduler{
		store:    store,
		policy:   policy,
		schedule: schedule,
		out:      out,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "trim.scheduler"),
	}
}

// SetPolicy replaces the retention policy applied to future scheduled
// runs. Used by config hot-reload; a run already in flight keeps the
// policy it started with.
func (s *Scheduler) SetPolicy(policy Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = policy
	s.logger.Info("retention policy updated",
		"keep_weeks", policy.KeepWeeks,
		"oldest_week_only", policy.OldestWeekOnly,
	)
}

// Start begins scheduled trimming. An empty schedule is a no-op. Start
// returns immediately; the cron runs in the background until ctx is
// cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("trim schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runTrim(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule trim: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("trim scheduler started",
		"schedule", s.schedule,
		"keep_weeks", s.policy.KeepWeeks,
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runTrim executes one scheduled trim cycle.
func (s *Scheduler) runTrim(ctx context.Context) {
	s.mu.Lock()
	policy := s.policy
	s.mu.Unlock()

	s.logger.Info("starting scheduled trim")

	result, err := Run(ctx, s.store, policy, true, s.out)
	if err != nil {
		s.logger.Error("scheduled trim failed", "error", err)
		return
	}

	if result.Skipped {
		s.logger.Debug("scheduled trim skipped, table empty")
		return
	}

	s.logger.Info("scheduled trim completed",
		"rows_deleted", result.RowsDeleted,
	)
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("trim scheduler stopped")
	}
}

// IsRunning returns true while the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the time of the next scheduled trim, or nil when nothing
// is scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
