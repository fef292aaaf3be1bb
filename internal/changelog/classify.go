package changelog

import "strings"

// Classify returns the category for a commit subject.
// The first matching prefix wins; matching is case-sensitive and anchored at the start.
func Classify(message string) Category {
	for _, c := range []Category{Features, Fixes, Docs} {
		if strings.HasPrefix(message, c.prefix()) {
			return c
		}
	}
	return Other
}

// Group classifies every message. Each message lands in exactly one category
// and keeps its relative order.
func Group(messages []string) Groups {
	groups := make(Groups, len(Categories()))
	for _, msg := range messages {
		c := Classify(msg)
		groups[c] = append(groups[c], msg)
	}
	return groups
}

// DisplayText returns the bullet text for a message in the given category.
// The category prefix is removed only together with one following space
// ("feat: add X" -> "add X"); "feat:add X" and Other messages are verbatim.
func DisplayText(c Category, message string) string {
	p := c.prefix()
	if p == "" {
		return message
	}
	if rest, ok := strings.CutPrefix(message, p+" "); ok {
		return rest
	}
	return message
}
