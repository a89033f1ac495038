package config

import (
	"time"

	"mirrorwatch/countme/pkg/rawstore"
	"mirrorwatch/countme/pkg/trim"
)

// ApplyDefaults fills in zero-valued fields with their defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = rawstore.DriverCGo
	}
	if cfg.Database.BusyTimeout == 0 {
		cfg.Database.BusyTimeout = 5 * time.Second
	}

	if cfg.Retention.KeepWeeks == 0 {
		cfg.Retention.KeepWeeks = trim.DefaultKeepWeeks
	}
	if cfg.Retention.WarnSeconds == 0 {
		cfg.Retention.WarnSeconds = trim.WarnSeconds
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "countme"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
