// Package trim implements the retention-trimming core: computing the
// half-open timestamp window eligible for deletion, and executing the
// deletion behind an interruptible warning countdown.
//
// The package is written against small storage interfaces (RangeStore,
// Store) so tests can substitute fakes without touching real SQLite
// files or real wall-clock time.
package trim
