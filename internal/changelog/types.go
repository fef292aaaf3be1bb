package changelog

import "strings"

// Category is the changelog section a commit lands in.
type Category string

const (
	Features Category = "features"
	Fixes    Category = "fixes"
	Docs     Category = "docs"
	Other    Category = "other"
)

// Categories returns all categories in rendering order.
func Categories() []Category {
	return []Category{Features, Fixes, Docs, Other}
}

// Heading returns the Markdown section heading for the category.
func (c Category) Heading() string {
	switch c {
	case Features:
		return "## 🚀 New Features"
	case Fixes:
		return "## 🐛 Bug Fixes"
	case Docs:
		return "## 📚 Documentation"
	default:
		return "## 🔄 Other Changes"
	}
}

// prefix returns the conventional commit prefix for the category.
// Other has no prefix.
func (c Category) prefix() string {
	switch c {
	case Features:
		return "feat:"
	case Fixes:
		return "fix:"
	case Docs:
		return "docs:"
	default:
		return ""
	}
}

// CommitRecord is a single commit as seen by the changelog: its subject line.
type CommitRecord struct {
	SHA     string
	Message string
}

// Release is a previously published release, most recent first when listed.
type Release struct {
	TagName string
	Name    string
}

// Groups maps each category to its messages in original commit order.
type Groups map[Category][]string

// Count returns the total number of messages across all categories.
func (g Groups) Count() int {
	n := 0
	for _, msgs := range g {
		n += len(msgs)
	}
	return n
}

// IsEmpty returns true if no category holds a message.
func (g Groups) IsEmpty() bool {
	return g.Count() == 0
}

// FirstLine returns the subject line of a commit message.
func FirstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSuffix(line, "\r")
}

// Messages extracts the subject lines of the given commits, preserving order.
func Messages(commits []CommitRecord) []string {
	msgs := make([]string, 0, len(commits))
	for _, c := range commits {
		msgs = append(msgs, FirstLine(c.Message))
	}
	return msgs
}
