package rawstore

// Schema contains the SQL statements to create the raw-event tables.
// countme_raw is append-only; only its timestamp column matters to the
// trimmer, the payload columns ride along untouched.
const Schema = `
CREATE TABLE IF NOT EXISTS countme_raw (
    timestamp INTEGER NOT NULL,
    host TEXT,
    os_name TEXT,
    os_version TEXT,
    os_variant TEXT,
    os_arch TEXT,
    repo_tag TEXT,
    repo_arch TEXT
);

CREATE INDEX IF NOT EXISTS idx_countme_raw_timestamp ON countme_raw(timestamp);

-- Audit log of completed read-write trim runs
CREATE TABLE IF NOT EXISTS trim_log (
    run_id TEXT PRIMARY KEY,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP NOT NULL,
    trim_begin INTEGER NOT NULL,
    trim_end REAL NOT NULL,
    rows_deleted INTEGER NOT NULL,
    mode TEXT NOT NULL
);
`

// Exact parameterized statements used against countme_raw. The range
// predicates are half-open: timestamp >= begin AND timestamp < end.
const (
	selectMinTime = `SELECT MIN(timestamp) FROM countme_raw`
	selectMaxTime = `SELECT MAX(timestamp) FROM countme_raw`
	countInRange  = `SELECT COUNT(*) FROM countme_raw WHERE timestamp >= ? AND timestamp < ?`
	deleteInRange = `DELETE FROM countme_raw WHERE timestamp >= ? AND timestamp < ?`

	insertTrimRun = `
INSERT INTO trim_log (run_id, started_at, finished_at, trim_begin, trim_end, rows_deleted, mode)
VALUES (?, ?, ?, ?, ?, ?, ?)
`
)
