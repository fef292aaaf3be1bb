// Package progress shows a spinner around slow remote calls when ghscripts
// runs in an interactive terminal. In CI logs it prints plain status lines.
package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the output terminal supports.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// ProgressSymbols are the status markers for the detected terminal.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}

// DetectTerminalCapabilities inspects f (normally os.Stderr) and the environment.
// Checks: isatty, CI, NO_COLOR, GHSCRIPTS_ASCII, terminal width.
func DetectTerminalCapabilities(f *os.File) TerminalCapabilities {
	return detect(term.IsTerminal(int(f.Fd())), int(f.Fd()), os.Getenv)
}

func detect(isTTY bool, fd int, getenv func(string) string) TerminalCapabilities {
	// Runner logs are not terminals even when a pseudo-TTY is attached.
	if getenv("CI") != "" || getenv("GITHUB_ACTIONS") == "true" {
		isTTY = false
	}

	noColor := getenv("NO_COLOR") != ""
	forceASCII := getenv("GHSCRIPTS_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities.
// Unicode: ✓/✗ with braille spinner (set 14). ASCII: [OK]/[FAIL] with |/-\ spinner (set 9).
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14, // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9, // | / - \
	}
}
