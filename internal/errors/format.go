package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// style renders the parts of an error report. The plain style leaves text
// untouched.
type style struct {
	label    func(a ...any) string
	message  func(a ...any) string
	category func(a ...any) string
	heading  func(a ...any) string
	usage    func(a ...any) string
	bullet   func(a ...any) string
}

var (
	colorStyle = style{
		label:    color.New(color.FgRed, color.Bold).SprintFunc(),
		message:  color.New(color.FgRed).SprintFunc(),
		category: color.New(color.FgYellow).SprintFunc(),
		heading:  color.New(color.FgGreen, color.Bold).SprintFunc(),
		usage:    color.New(color.FgCyan).SprintFunc(),
		bullet:   color.New(color.FgGreen).SprintFunc(),
	}
	plainStyle = style{
		label:    fmt.Sprint,
		message:  fmt.Sprint,
		category: fmt.Sprint,
		heading:  fmt.Sprint,
		usage:    fmt.Sprint,
		bullet:   fmt.Sprint,
	}
)

// FormatError formats a CLIError for the terminal. Colors follow fatih/color's
// detection and are dropped when NO_COLOR is set or stderr is not a TTY.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return render(err, colorStyle)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return render(err, plainStyle)
}

func render(err *CLIError, s style) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s [%s]: %s\n", s.label("Error"), s.category(err.Category.String()), s.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", s.heading("Usage:"), s.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", s.heading("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", s.bullet("•"), step)
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to w.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// Annotation renders err as a single line for a workflow error annotation.
// The first remediation step is appended as a hint.
func Annotation(err error) string {
	if err == nil {
		return ""
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		return err.Error()
	}
	line := cliErr.Category.String() + ": " + cliErr.Message
	if len(cliErr.Remediation) > 0 {
		line += " (" + cliErr.Remediation[0] + ")"
	}
	return line
}
