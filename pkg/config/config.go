// Package config defines the trimmer's configuration, loaded from an
// optional YAML file with defaults, environment variable overrides and
// validation.
package config

import "time"

// Config is the root configuration for the trimmer.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Retention RetentionConfig `yaml:"retention"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatabaseConfig configures the SQLite raw-event store.
type DatabaseConfig struct {
	// Driver selects the sql driver: "sqlite3" (cgo) or "sqlite" (pure Go).
	Driver string `yaml:"driver"`

	// BusyTimeout is how long to wait for database locks.
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig configures the trim window computation and the warning
// countdown.
type RetentionConfig struct {
	// KeepWeeks is the number of most-recent weeks of data to preserve.
	KeepWeeks int `yaml:"keep_weeks"`

	// ExtraSafetyWeek widens the preserved range by one extra week.
	ExtraSafetyWeek bool `yaml:"extra_safety_week"`

	// WarnSeconds is the interruptible countdown before a read-write run
	// deletes anything.
	WarnSeconds int `yaml:"warn_seconds"`
}

// ScheduleConfig configures recurring trims in schedule mode.
type ScheduleConfig struct {
	// Cron is a standard cron expression, e.g. "0 3 * * 1". Empty
	// disables scheduling.
	Cron string `yaml:"cron"`

	// WatchConfig reloads the retention policy when the config file
	// changes while the scheduler is running.
	WatchConfig bool `yaml:"watch_config"`
}

// MetricsConfig configures the Prometheus textfile output.
type MetricsConfig struct {
	// TextfilePath, when set, is where run metrics are written for the
	// node-exporter textfile collector.
	TextfilePath string `yaml:"textfile_path"`

	// Namespace is the metric namespace. Default: "countme".
	Namespace string `yaml:"namespace"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json" or "text").
	Format string `yaml:"format"`
}
