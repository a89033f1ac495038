package cli

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes. Interrupted runs carry a distinguished code so an
// aborted countdown is never conflated with an ordinary failure.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 3
)

// ArgumentError represents invalid command-line input. No database is
// touched before argument validation passes.
type ArgumentError struct {
	Flag    string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Flag, e.Message)
}

// NewArgumentError creates a new ArgumentError.
func NewArgumentError(flag, message string) *ArgumentError {
	return &ArgumentError{Flag: flag, Message: message}
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}

// ExitCode maps an error to the process exit code. Cancellation
// (propagated unchanged from the warning countdown) maps to
// ExitInterrupted; everything else non-nil is a generic failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitInterrupted
	default:
		return ExitFailure
	}
}
