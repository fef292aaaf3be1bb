package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Display reports the progress of named steps on w.
type Display struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
}

// NewDisplay creates a Display for the given terminal.
func NewDisplay(out io.Writer, caps TerminalCapabilities) *Display {
	return &Display{out: out, caps: caps, symbols: SelectSymbols(caps)}
}

// Track runs fn while showing message, then prints a success or failure line.
// The spinner only runs on a TTY. fn's error is returned unchanged.
func (d *Display) Track(message string, fn func() error) error {
	var s *spinner.Spinner
	if d.caps.IsTTY {
		s = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], spinnerInterval, spinner.WithWriter(d.out))
		s.Suffix = " " + message
		s.Start()
	}

	err := fn()

	if s != nil {
		s.Stop()
	}
	if err != nil {
		fmt.Fprintf(d.out, "%s %s\n", d.symbols.Failure, message)
		return err
	}
	fmt.Fprintf(d.out, "%s %s\n", d.symbols.Checkmark, message)
	return nil
}
