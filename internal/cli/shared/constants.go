// Package shared provides constants and types used across the CLI.
package shared

import (
	"errors"
	"fmt"

	clierrors "github.com/heavens-above/ghscripts/internal/errors"
)

// Command group IDs for help output.
const (
	GroupScripts = "scripts"
	GroupConfig  = "config"
	GroupInfo    = "info"
)

// Exit codes for the ghscripts CLI.
// Workflows can branch on these to tell a failed check from a broken run.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitStepFailed marks the workflow step failed (e.g. a maintenance task failed)
	ExitStepFailed = 1

	// ExitProviderFailure indicates a GitHub API or repository call failed
	ExitProviderFailure = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfigError indicates missing or invalid configuration
	ExitConfigError = 4
)

// ExitError carries a process exit code through cobra's error return.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps err to a process exit code. CLIErrors map by category;
// any other error is a failed step.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return CategoryExitCode(cliErr.Category)
	}
	return ExitStepFailed
}

// CategoryExitCode returns the exit code for an error category.
func CategoryExitCode(c clierrors.ErrorCategory) int {
	switch c {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Configuration:
		return ExitConfigError
	case clierrors.Provider:
		return ExitProviderFailure
	default:
		return ExitStepFailed
	}
}
