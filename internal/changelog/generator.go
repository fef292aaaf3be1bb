package changelog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// RevisionHistory resolves releases and commit ranges.
// Implementations exist for the GitHub REST API and for a local repository.
type RevisionHistory interface {
	// ListReleases returns releases most recent first.
	ListReleases(ctx context.Context) ([]Release, error)
	// CompareCommits returns the commits in base..head, oldest first.
	// An empty base selects the whole history of head.
	CompareCommits(ctx context.Context, base, head string) ([]CommitRecord, error)
}

// Result is the outcome of a changelog run.
type Result struct {
	Tag      string
	Base     string
	Groups   Groups
	Markdown string
}

// Generator produces the changelog for a release from a RevisionHistory.
type Generator struct {
	history RevisionHistory
	logger  *log.Logger
}

// NewGenerator creates a Generator. A nil logger discards log output.
func NewGenerator(history RevisionHistory, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{history: history, logger: logger}
}

// Run resolves the previous release, fetches the commits since then and renders them.
func (g *Generator) Run(ctx context.Context, tag string) (*Result, error) {
	tag = TagFromRef(tag)
	if tag == "" {
		return nil, fmt.Errorf("release tag is empty")
	}

	releases, err := g.history.ListReleases(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing releases: %w", err)
	}
	base := PreviousRelease(releases, tag)
	g.logger.Debug("Resolved previous release", "tag", tag, "base", base, "releases", len(releases))

	commits, err := g.history.CompareCommits(ctx, base, tag)
	if err != nil {
		return nil, fmt.Errorf("comparing %s...%s: %w", base, tag, err)
	}
	g.logger.Info("Collected commits", "tag", tag, "base", base, "count", len(commits))

	messages := Messages(commits)
	return &Result{
		Tag:      tag,
		Base:     base,
		Groups:   Group(messages),
		Markdown: Generate(tag, base, messages),
	}, nil
}

// PreviousRelease returns the tag of the most recent release other than tag,
// or "" when there is none.
func PreviousRelease(releases []Release, tag string) string {
	for _, r := range releases {
		if r.TagName != "" && r.TagName != tag {
			return r.TagName
		}
	}
	return ""
}

// TagFromRef strips the refs/tags/ prefix from a git ref.
func TagFromRef(ref string) string {
	return strings.TrimPrefix(ref, "refs/tags/")
}
