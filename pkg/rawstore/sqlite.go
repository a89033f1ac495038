package rawstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"mirrorwatch/countme/pkg/trim"
)

// Driver names accepted by Config.Driver.
const (
	// DriverCGo is the mattn/go-sqlite3 driver.
	DriverCGo = "sqlite3"
	// DriverPureGo is the modernc.org/sqlite driver.
	DriverPureGo = "sqlite"
)

// Config contains configuration for the raw-event store.
type Config struct {
	// Path is the SQLite database file path.
	Path string

	// Driver selects the database/sql driver: "sqlite3" (cgo) or
	// "sqlite" (pure Go). Default: "sqlite3".
	Driver string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// DefaultConfig returns the default store configuration for the given
// database path.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:        path,
		Driver:      DriverCGo,
		BusyTimeout: 5 * time.Second,
	}
}

// Store is a SQLite-backed raw-event store. It implements trim.Store.
type Store struct {
	db     *sql.DB
	config *Config
	logger *slog.Logger
}

// Open opens the database in rwc mode: the file is created if absent and
// the connection permits writes regardless of the trim execution mode,
// which gates deletion rather than connection mode.
func Open(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("store config cannot be nil")
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverCGo
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn, err := dataSourceName(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{
		db:     db,
		config: cfg,
		logger: slog.Default().With("component", "rawstore"),
	}

	s.logger.Debug("raw-event store opened",
		"path", cfg.Path,
		"driver", cfg.Driver,
	)

	return s, nil
}

// dataSourceName builds the driver-specific file URI. Both drivers take
// mode=rwc; the busy-timeout knob is spelled differently per driver.
func dataSourceName(cfg *Config) (string, error) {
	ms := cfg.BusyTimeout.Milliseconds()

	switch cfg.Driver {
	case DriverCGo:
		return fmt.Sprintf("file:%s?mode=rwc&_busy_timeout=%d", cfg.Path, ms), nil
	case DriverPureGo:
		return fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(%d)", cfg.Path, ms), nil
	default:
		return "", fmt.Errorf("unsupported sqlite driver %q", cfg.Driver)
	}
}

// Init creates the countme_raw and trim_log tables if they do not exist.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// MinTime returns the smallest timestamp in countme_raw. The bool is
// false when the table is empty.
func (s *Store) MinTime(ctx context.Context) (int64, bool, error) {
	return s.boundaryTime(ctx, selectMinTime)
}

// MaxTime returns the largest timestamp in countme_raw. The bool is
// false when the table is empty.
func (s *Store) MaxTime(ctx context.Context) (int64, bool, error) {
	return s.boundaryTime(ctx, selectMaxTime)
}

func (s *Store) boundaryTime(ctx context.Context, query string) (int64, bool, error) {
	var ts sql.NullInt64
	if err := s.db.QueryRowContext(ctx, query).Scan(&ts); err != nil {
		return 0, false, fmt.Errorf("failed to query timestamp boundary: %w", err)
	}
	if !ts.Valid {
		return 0, false, nil
	}
	return ts.Int64, true, nil
}

// CountRange counts rows with begin <= timestamp < end. Read-only; used
// for reporting the blast radius, never to decide whether to delete.
func (s *Store) CountRange(ctx context.Context, begin int64, end float64) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, countInRange, begin, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return count, nil
}

// DeleteRange deletes rows with begin <= timestamp < end in a single
// transaction and returns the number of rows removed. The delete and
// commit are one atomic unit; no partial-row recovery is attempted.
func (s *Store) DeleteRange(ctx context.Context, begin int64, end float64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin delete transaction: %w", err)
	}

	result, err := tx.ExecContext(ctx, deleteInRange, begin, end)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to delete rows: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", err)
	}

	return deleted, nil
}

// RecordRun appends a completed read-write trim run to trim_log.
func (s *Store) RecordRun(ctx context.Context, run trim.RunRecord) error {
	_, err := s.db.ExecContext(ctx, insertTrimRun,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.TrimBegin,
		run.TrimEnd,
		run.RowsDeleted,
		run.Mode,
	)
	if err != nil {
		return fmt.Errorf("failed to record trim run: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
