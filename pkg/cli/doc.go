// Package cli provides shared command-line plumbing: signal-driven
// cancellation, typed command errors and the process exit-code contract.
package cli
