package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mirrorwatch/countme/pkg/cli"
	"mirrorwatch/countme/pkg/config"
	"mirrorwatch/countme/pkg/rawstore"
	"mirrorwatch/countme/pkg/trim"
)

var scheduleFlags struct {
	cronExpr   string
	oldestWeek bool
	keep       int
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule SQLITE_PATH",
	Short: "Run recurring trims on a cron schedule",
	Long: `Run read-write trims against the database on a cron schedule.

Each scheduled run goes through the same warning countdown as an
interactive trim. Stopping the process (Ctrl+C or SIGTERM) aborts any
in-flight countdown before deletion and shuts the scheduler down.

When config watching is enabled, retention settings are reloaded from the
config file as it changes, without restarting the scheduler.

Examples:
  # Trim every Monday at 3 AM
  countme-trim schedule raw.db --cron "0 3 * * 1"

  # Trim the oldest week nightly
  countme-trim schedule raw.db --cron "0 3 * * *" --oldest-week`,
	Args: cobra.ExactArgs(1),
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&scheduleFlags.cronExpr, "cron", "", "cron expression for recurring trims")
	scheduleCmd.Flags().BoolVar(&scheduleFlags.oldestWeek, "oldest-week", false, "trim only the single oldest week each run")
	scheduleCmd.Flags().IntVar(&scheduleFlags.keep, "keep", trim.DefaultKeepWeeks, "number of most-recent weeks of data to keep")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if scheduleFlags.cronExpr != "" {
		cfg.Schedule.Cron = scheduleFlags.cronExpr
	}
	if cmd.Flags().Changed("keep") {
		cfg.Retention.KeepWeeks = scheduleFlags.keep
	}

	if cfg.Schedule.Cron == "" {
		return cli.NewArgumentError("--cron", "a cron expression is required in schedule mode")
	}
	if cfg.Retention.KeepWeeks < 1 {
		return cli.NewArgumentError("--keep", "must be a positive integer")
	}

	setupLogging(cfg)

	policy := trim.Policy{
		KeepWeeks:       cfg.Retention.KeepWeeks,
		OldestWeekOnly:  scheduleFlags.oldestWeek,
		ExtraSafetyWeek: cfg.Retention.ExtraSafetyWeek,
		WarnDelay:       time.Duration(cfg.Retention.WarnSeconds) * time.Second,
	}

	ctx := cli.SetupSignalHandler()

	store, err := rawstore.Open(&rawstore.Config{
		Path:        args[0],
		Driver:      cfg.Database.Driver,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return cli.NewCommandError("schedule", err)
	}
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		return cli.NewCommandError("schedule", err)
	}

	scheduler := trim.NewScheduler(store, policy, cfg.Schedule.Cron, os.Stdout)
	if err := scheduler.Start(ctx); err != nil {
		return cli.NewCommandError("schedule", err)
	}
	defer scheduler.Stop()

	if cfg.Schedule.WatchConfig {
		watcher := config.NewWatcher(cfgFile)
		go func() {
			_ = watcher.Watch(ctx, func(next *config.Config) {
				scheduler.SetPolicy(trim.Policy{
					KeepWeeks:       next.Retention.KeepWeeks,
					OldestWeekOnly:  scheduleFlags.oldestWeek,
					ExtraSafetyWeek: next.Retention.ExtraSafetyWeek,
					WarnDelay:       time.Duration(next.Retention.WarnSeconds) * time.Second,
				})
			})
		}()
	}

	// Block until the signal handler cancels the context. A shutdown
	// requested mid-countdown is a normal stop, not an interrupted run.
	<-ctx.Done()
	if err := ctx.Err(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
