package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/heavens-above/ghscripts/internal/lifecycle"
)

// durationLogger reports command completion at debug level.
type durationLogger struct {
	logger *log.Logger
}

func newDurationLogger(w io.Writer, debug bool) *durationLogger {
	return &durationLogger{logger: newLogger(w, debug)}
}

func (d *durationLogger) OnCommandComplete(name string, success bool, duration time.Duration) {
	d.logger.Debug("Command finished", "command", name, "success", success, "duration", duration.Round(time.Millisecond))
}

// withTiming wraps the RunE of every command below root in
// lifecycle.RunWithContext.
func withTiming(root *cobra.Command, opts *globalOptions) {
	for _, sub := range root.Commands() {
		withTiming(sub, opts)

		runE := sub.RunE
		if runE == nil {
			continue
		}
		sub.RunE = func(cmd *cobra.Command, args []string) error {
			handler := newDurationLogger(cmd.ErrOrStderr(), opts.debug)
			return lifecycle.RunWithContext(cmd.Context(), handler, cmd.CommandPath(), func(context.Context) error {
				return runE(cmd, args)
			})
		}
	}
}
