package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logextract/pkg/export"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1 // store, query, write or any other runtime failure
	ExitUsage   = 2 // bad arguments or configuration
)

// UsageError marks an error caused by the command line or configuration
// rather than by the run itself.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &UsageError{Err: err}
}

// usageArgs tags positional argument errors from fn as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(fn(cmd, args))
	}
}

// UsageFlagError is the cobra flag error func; it tags flag parse errors as
// usage errors.
func UsageFlagError(_ *cobra.Command, err error) error {
	return usageError(err)
}

// ExitCodeFor maps a command error to a process exit code. Errors not marked
// as usage errors are runtime failures.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) || errors.Is(err, export.ErrInvalidUserID) {
		return ExitUsage
	}
	return ExitFailure
}
