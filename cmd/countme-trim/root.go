package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"mirrorwatch/countme/pkg/cli"
	"mirrorwatch/countme/pkg/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "countme-trim",
	Short: "Retention trimmer for the countme raw-event table",
	Long: `countme-trim removes raw countme events older than the configured
retention horizon.

The trim window starts at the earliest recorded timestamp and ends at the
most recent timestamp minus the number of weeks to keep; with --oldest-week
it covers exactly the single oldest week of data instead. Deletion only
happens with --read-write, and only after an interruptible warning
countdown. The default mode reports what would be deleted and changes
nothing.`,
	Version: Version,
}

// Execute runs the root command and maps the resulting error to the
// process exit code. An interrupted run exits with a distinguished code
// so callers can tell an aborted countdown from an ordinary failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "countme-trim.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration file (optional unless the operator
// pointed --config somewhere explicit) with environment overrides applied.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	optional := !rootCmd.PersistentFlags().Changed("config")
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile, optional)
	if err != nil {
		return nil, cli.NewCommandError(cmd.Name(), err)
	}
	return cfg, nil
}

// setupLogging installs the process-wide structured logger from the
// logging config, honoring --verbose.
func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
