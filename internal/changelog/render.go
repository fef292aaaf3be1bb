package changelog

import (
	"fmt"
	"io"
	"strings"
)

// Generate renders the changelog for tagLabel from the ordered commit subjects.
// baseRevision is the previous release ("" when there is none); it scopes the
// commits but is not part of the document.
func Generate(tagLabel, baseRevision string, commits []string) string {
	var b strings.Builder
	// strings.Builder never fails
	_ = RenderMarkdown(&b, tagLabel, Group(commits))
	return b.String()
}

// RenderMarkdown writes the title and every non-empty category section to w.
// Sections are separated by one blank line; empty categories emit nothing.
func RenderMarkdown(w io.Writer, tagLabel string, groups Groups) error {
	if _, err := fmt.Fprintf(w, "# Changelog for %s\n", tagLabel); err != nil {
		return fmt.Errorf("rendering title: %w", err)
	}

	for _, c := range Categories() {
		msgs := groups[c]
		if len(msgs) == 0 {
			continue
		}
		if err := renderSection(w, c, msgs); err != nil {
			return fmt.Errorf("rendering %s: %w", c, err)
		}
	}

	return nil
}

// renderSection writes a blank separator line, the heading and one bullet per message.
func renderSection(w io.Writer, c Category, msgs []string) error {
	if _, err := io.WriteString(w, "\n"+c.Heading()+"\n\n"); err != nil {
		return err
	}
	for _, msg := range msgs {
		if _, err := io.WriteString(w, "- "+DisplayText(c, msg)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
