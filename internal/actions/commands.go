package actions

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Commands writes workflow commands for the runner.
type Commands struct {
	out    io.Writer
	getenv func(string) string
}

// NewCommands creates a Commands writing annotations to out (the runner reads stdout).
func NewCommands(out io.Writer, getenv func(string) string) *Commands {
	return &Commands{out: out, getenv: getenv}
}

// SetFailed emits an error annotation. The caller still has to exit non-zero
// for the step to fail.
func (c *Commands) SetFailed(message string) {
	fmt.Fprintf(c.out, "::error::%s\n", escapeData(message))
}

// Warning emits a warning annotation.
func (c *Commands) Warning(message string) {
	fmt.Fprintf(c.out, "::warning::%s\n", escapeData(message))
}

// SetOutput records a step output in $GITHUB_OUTPUT. Multiline values use the
// heredoc form. It reports false when no output file is configured.
func (c *Commands) SetOutput(name, value string) (bool, error) {
	path := c.getenv("GITHUB_OUTPUT")
	if path == "" {
		return false, nil
	}

	delimiter := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return false, fmt.Errorf("output %s contains the delimiter", name)
	}
	entry := fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	if err := appendFile(path, entry); err != nil {
		return false, fmt.Errorf("writing output %s: %w", name, err)
	}
	return true, nil
}

// AppendSummary appends Markdown to the job summary ($GITHUB_STEP_SUMMARY).
// It reports false when no summary file is configured.
func (c *Commands) AppendSummary(markdown string) (bool, error) {
	path := c.getenv("GITHUB_STEP_SUMMARY")
	if path == "" {
		return false, nil
	}
	if !strings.HasSuffix(markdown, "\n") {
		markdown += "\n"
	}
	if err := appendFile(path, markdown); err != nil {
		return false, fmt.Errorf("writing job summary: %w", err)
	}
	return true, nil
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// escapeData escapes a command message the way the runner expects.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}
