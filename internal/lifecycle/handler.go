// Package lifecycle wraps command execution with timing and completion
// reporting.
package lifecycle

import "time"

// CompletionHandler receives the outcome of a finished command.
type CompletionHandler interface {
	// OnCommandComplete is called once per command with its name, whether it
	// returned without error and how long it ran.
	OnCommandComplete(name string, success bool, duration time.Duration)
}
