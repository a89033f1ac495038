package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mirrorwatch/countme/pkg/cli"
	"mirrorwatch/countme/pkg/rawstore"
	"mirrorwatch/countme/pkg/telemetry/metrics"
	"mirrorwatch/countme/pkg/trim"
)

var trimFlags struct {
	readWrite   bool
	oldestWeek  bool
	keep        int
	safetyWeek  bool
	metricsFile string
}

var trimCmd = &cobra.Command{
	Use:   "trim SQLITE_PATH",
	Short: "Trim old rows from the raw-event table",
	Long: `Trim rows older than the retention horizon from countme_raw.

Without --read-write this only reports the rows that would be affected.
With --read-write the deletion runs after a warning countdown; interrupting
the countdown (Ctrl+C) aborts the run before anything is deleted and the
process exits with code 3.

Examples:
  # Dry run against a database
  countme-trim trim raw.db

  # Keep the most recent 6 weeks, delete the rest
  countme-trim trim raw.db --read-write --keep 6

  # Delete only the single oldest week
  countme-trim trim raw.db --read-write --oldest-week`,
	Args: cobra.ExactArgs(1),
	RunE: runTrim,
}

func init() {
	rootCmd.AddCommand(trimCmd)

	trimCmd.Flags().BoolVar(&trimFlags.readWrite, "read-write", false, "actually delete rows after the warning countdown")
	trimCmd.Flags().BoolVar(&trimFlags.oldestWeek, "oldest-week", false, "trim only the single oldest week of data")
	trimCmd.Flags().IntVar(&trimFlags.keep, "keep", trim.DefaultKeepWeeks, "number of most-recent weeks of data to keep")
	trimCmd.Flags().BoolVar(&trimFlags.safetyWeek, "safety-week", false, "keep one additional week beyond --keep")
	trimCmd.Flags().StringVar(&trimFlags.metricsFile, "metrics-file", "", "write run metrics to this Prometheus textfile")
}

func runTrim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Flag overrides
	if cmd.Flags().Changed("keep") {
		cfg.Retention.KeepWeeks = trimFlags.keep
	}
	if cmd.Flags().Changed("safety-week") {
		cfg.Retention.ExtraSafetyWeek = trimFlags.safetyWeek
	}
	if trimFlags.metricsFile != "" {
		cfg.Metrics.TextfilePath = trimFlags.metricsFile
	}

	if cfg.Retention.KeepWeeks < 1 {
		return cli.NewArgumentError("--keep", "must be a positive integer")
	}

	setupLogging(cfg)

	policy := trim.Policy{
		KeepWeeks:       cfg.Retention.KeepWeeks,
		OldestWeekOnly:  trimFlags.oldestWeek,
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
		return cli.NewCommandError("trim", err)
	}
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		return cli.NewCommandError("trim", err)
	}

	started := time.Now()
	result, err := trim.Run(ctx, store, policy, trimFlags.readWrite, os.Stdout)
	if err != nil {
		// Cancellation must reach Execute unwrapped so it maps to the
		// interrupted exit code.
		return err
	}

	if cfg.Metrics.TextfilePath != "" && !result.Skipped {
		collector := metrics.NewCollector(cfg.Metrics.Namespace, nil)
		collector.RecordRun(result.RowsDeleted, time.Since(started), time.Now())
		if err := collector.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			return cli.NewCommandError("trim", fmt.Errorf("failed to write metrics textfile: %w", err))
		}
	}

	return nil
}
