// countme-trim deletes raw countme events older than a configurable
// retention horizon, aligned to weekly boundaries, with an interruptible
// warning countdown before any destructive action.
//
// Usage:
//
//	# Report what would be deleted (safe default, nothing is removed)
//	countme-trim trim /var/lib/countme/raw.db
//
//	# Actually delete, keeping the most recent 4 weeks
//	countme-trim trim /var/lib/countme/raw.db --read-write
//
//	# Trim only the single oldest week of data
//	countme-trim trim /var/lib/countme/raw.db --read-write --oldest-week
//
//	# Run the trim every Monday at 3 AM
//	countme-trim schedule /var/lib/countme/raw.db --cron "0 3 * * 1"
//
//	# Show version information
//	countme-trim version
//
// Exit codes: 0 on success (including report-only runs), 1 on argument or
// store errors, 3 when a run is interrupted during its warning countdown.
package main

func main() {
	Execute()
}
