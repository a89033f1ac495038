package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults and
// validates the result. A missing file is not an error when optional is
// true; defaults are used instead.
func LoadConfig(path string, optional bool) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	case os.IsNotExist(err) && optional:
		// Fall through to defaults.
	default:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and then
// applies environment variable overrides. Variables follow the convention
// COUNTME_SECTION_FIELD (e.g. COUNTME_RETENTION_KEEP_WEEKS) and always
// take precedence over file values.
func LoadConfigWithEnvOverrides(path string, optional bool) (*Config, error) {
	cfg, err := LoadConfig(path, optional)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies COUNTME_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("COUNTME_DATABASE_DRIVER"); val != "" {
		cfg.Database.Driver = val
	}
	if val := os.Getenv("COUNTME_DATABASE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Database.BusyTimeout = d
		}
	}

	if val := os.Getenv("COUNTME_RETENTION_KEEP_WEEKS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retention.KeepWeeks = i
		}
	}
	if val := os.Getenv("COUNTME_RETENTION_EXTRA_SAFETY_WEEK"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Retention.ExtraSafetyWeek = b
		}
	}
	if val := os.Getenv("COUNTME_RETENTION_WARN_SECONDS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retention.WarnSeconds = i
		}
	}

	if val := os.Getenv("COUNTME_SCHEDULE_CRON"); val != "" {
		cfg.Schedule.Cron = val
	}
	if val := os.Getenv("COUNTME_SCHEDULE_WATCH_CONFIG"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Schedule.WatchConfig = b
		}
	}

	if val := os.Getenv("COUNTME_METRICS_TEXTFILE_PATH"); val != "" {
		cfg.Metrics.TextfilePath = val
	}
	if val := os.Getenv("COUNTME_METRICS_NAMESPACE"); val != "" {
		cfg.Metrics.Namespace = val
	}

	if val := os.Getenv("COUNTME_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("COUNTME_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}
