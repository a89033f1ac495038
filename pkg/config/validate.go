package config

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"mirrorwatch/countme/pkg/rawstore"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	switch cfg.Database.Driver {
	case rawstore.DriverCGo, rawstore.DriverPureGo:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q",
			rawstore.DriverCGo, rawstore.DriverPureGo, cfg.Database.Driver)
	}

	if cfg.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout cannot be negative")
	}

	if cfg.Retention.KeepWeeks < 1 {
		return fmt.Errorf("retention.keep_weeks must be a positive integer, got %d",
			cfg.Retention.KeepWeeks)
	}
	if cfg.Retention.WarnSeconds < 0 {
		return fmt.Errorf("retention.warn_seconds cannot be negative")
	}

	if cfg.Schedule.Cron != "" {
		if _, err := cron.ParseStandard(cfg.Schedule.Cron); err != nil {
			return fmt.Errorf("schedule.cron is not a valid cron expression: %w", err)
		}
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q",
			cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", cfg.Logging.Format)
	}

	return nil
}
