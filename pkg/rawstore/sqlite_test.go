package rawstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mirrorwatch/countme/pkg/trim"
)

// openTestStore opens a fresh store in a temp directory using the pure-Go
// driver so the tests run without cgo.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	cfg := DefaultConfig(filepath.Join(t.TempDir(), "raw.db"))
	cfg.Driver = DriverPureGo

	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	return store
}

func insertRows(t *testing.T, store *Store, timestamps ...int64) {
	t.Helper()
	for _, ts := range timestamps {
		_, err := store.db.Exec(
			`INSERT INTO countme_raw (timestamp, os_name) VALUES (?, ?)`, ts, "fedora")
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
}

func TestStore_EmptyTableBoundaries(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.MinTime(ctx); err != nil || ok {
		t.Errorf("MinTime() = ok=%v err=%v, want empty table", ok, err)
	}
	if _, ok, err := store.MaxTime(ctx); err != nil || ok {
		t.Errorf("MaxTime() = ok=%v err=%v, want empty table", ok, err)
	}
}

func TestStore_MinMaxTime(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	insertRows(t, store, 300, 100, 200)

	minTime, ok, err := store.MinTime(ctx)
	if err != nil || !ok {
		t.Fatalf("MinTime() = ok=%v err=%v", ok, err)
	}
	if minTime != 100 {
		t.Errorf("MinTime() = %d, want 100", minTime)
	}

	maxTime, ok, err := store.MaxTime(ctx)
	if err != nil || !ok {
		t.Fatalf("MaxTime() = ok=%v err=%v", ok, err)
	}
	if maxTime != 300 {
		t.Errorf("MaxTime() = %d, want 300", maxTime)
	}
}

func TestStore_CountRangeHalfOpen(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	insertRows(t, store, 100, 200, 300)

	tests := []struct {
		name  string
		begin int64
		end   float64
		want  int64
	}{
		{"all rows", 100, 301, 3},
		{"end excluded", 100, 300, 2},
		{"begin included", 100, 101, 1},
		{"empty interval", 100, 100, 0},
		{"inverted interval", 300, 100, 0},
		{"fractional end includes boundary", 100, 300.5, 3},
		{"fractional end excludes above", 100, 299.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.CountRange(ctx, tt.begin, tt.end)
			if err != nil {
				t.Fatalf("CountRange() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("CountRange(%d, %v) = %d, want %d", tt.begin, tt.end, got, tt.want)
			}
		})
	}
}

func TestStore_CountRangeMonotonic(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	insertRows(t, store, 100, 150, 200, 250, 300)

	// Extending the end never decreases the count.
	prev := int64(-1)
	for end := float64(100); end <= 350; end += 50 {
		got, err := store.CountRange(ctx, 100, end)
		if err != nil {
			t.Fatalf("CountRange() failed: %v", err)
		}
		if got < prev {
			t.Errorf("count decreased from %d to %d when end extended to %v", prev, got, end)
		}
		prev = got
	}
}

func TestStore_DeleteRange(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	insertRows(t, store, 100, 200, 300)

	deleted, err := store.DeleteRange(ctx, 100, 300)
	if err != nil {
		t.Fatalf("DeleteRange() failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2 (half-open range)", deleted)
	}

	remaining, err := store.CountRange(ctx, 0, 1e12)
	if err != nil {
		t.Fatalf("CountRange() failed: %v", err)
	}
	if remaining != 1 {
		t.Errorf("remaining rows = %d, want 1", remaining)
	}

	minTime, ok, err := store.MinTime(ctx)
	if err != nil || !ok {
		t.Fatalf("MinTime() = ok=%v err=%v", ok, err)
	}
	if minTime != 300 {
		t.Errorf("MinTime() after delete = %d, want 300", minTime)
	}
}

func TestStore_RecordRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	run := trim.RunRecord{
		ID:          "run-1",
		StartedAt:   now.Add(-time.Second),
		FinishedAt:  now,
		TrimBegin:   100,
		TrimEnd:     300.5,
		RowsDeleted: 2,
		Mode:        "read-write",
	}

	if err := store.RecordRun(ctx, run); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	var (
		count int
		end   float64
	)
	err := store.db.QueryRow(
		`SELECT COUNT(*), MAX(trim_end) FROM trim_log WHERE run_id = ?`, run.ID).
		Scan(&count, &end)
	if err != nil {
		t.Fatalf("query trim_log failed: %v", err)
	}
	if count != 1 {
		t.Errorf("trim_log entries = %d, want 1", count)
	}
	if end != 300.5 {
		t.Errorf("trim_end stored as %v, want 300.5 (fractional preserved)", end)
	}
}

func TestStore_OpenCreatesFile(t *testing.T) {
	// mode=rwc: the database file is created when absent.
	path := filepath.Join(t.TempDir(), "sub.db")
	cfg := DefaultConfig(path)
	cfg.Driver = DriverPureGo

	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Error("Open(nil) succeeded, want error")
	}
	if _, err := Open(&Config{}); err == nil {
		t.Error("Open with empty path succeeded, want error")
	}
	if _, err := Open(&Config{Path: "x.db", Driver: "postgres"}); err == nil {
		t.Error("Open with unsupported driver succeeded, want error")
	}
}

func TestDataSourceName(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{DriverCGo, "file:raw.db?mode=rwc&_busy_timeout=5000"},
		{DriverPureGo, "file:raw.db?mode=rwc&_pragma=busy_timeout(5000)"},
	}

	for _, tt := range tests {
		cfg := &Config{Path: "raw.db", Driver: tt.driver, BusyTimeout: 5 * time.Second}
		got, err := dataSourceName(cfg)
		if err != nil {
			t.Fatalf("dataSourceName(%s) failed: %v", tt.driver, err)
		}
		if got != tt.want {
			t.Errorf("dataSourceName(%s) = %q, want %q", tt.driver, got, tt.want)
		}
	}
}
