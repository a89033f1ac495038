// Package rawstore provides SQLite-backed access to the countme_raw
// event table: the read-only range probes the planner feeds on, the
// transactional range delete the executor issues, and the trim_log audit
// table.
//
// Two database/sql drivers are supported: mattn/go-sqlite3 (cgo, the
// default) and modernc.org/sqlite (pure Go, for cgo-free builds).
package rawstore
