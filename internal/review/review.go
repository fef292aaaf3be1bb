// Package review posts the automated code review summary on a pull request
// and labels it with the review outcome.
package review

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/heavens-above/ghscripts/internal/github"
)

// Outcome labels.
const (
	LabelReviewed     = "reviewed"
	LabelNeedsWork    = "needs-work"
	LabelReadyToMerge = "ready-to-merge"
)

// ErrNoPullRequest is returned when no pull request number is known.
var ErrNoPullRequest = errors.New("no pull request number to review")

// Findings holds the tool outputs gathered by earlier workflow steps.
// Empty fields are left out of the comment.
type Findings struct {
	Lint     string
	Coverage string
	Security string
	Sonar    string
	// HasIssues is the raw flag; only "true" marks the pull request as needing work.
	HasIssues string
}

type section struct {
	heading string
	content string
}

func (f Findings) sections() []section {
	all := []section{
		{"### Linting Results", f.Lint},
		{"### Test Coverage", f.Coverage},
		{"### Security Scan", f.Security},
		{"### Code Quality (SonarCloud)", f.Sonar},
	}
	return lo.Filter(all, func(s section, _ int) bool { return s.content != "" })
}

// Body renders the review comment.
func Body(f Findings) string {
	var b strings.Builder
	b.WriteString("## Automated Code Review\n\n")
	for _, s := range f.sections() {
		b.WriteString(s.heading + "\n\n" + s.content + "\n\n")
	}
	return b.String()
}

// Labels returns the labels for the review outcome.
func Labels(f Findings) []string {
	return []string{LabelReviewed, lo.Ternary(f.HasIssues == "true", LabelNeedsWork, LabelReadyToMerge)}
}

// PullRequests comments on and labels pull requests.
type PullRequests interface {
	CreateComment(ctx context.Context, number int, body string) (*github.Comment, error)
	AddLabels(ctx context.Context, number int, labels []string) error
}

// Reviewer posts review summaries.
type Reviewer struct {
	prs    PullRequests
	logger *log.Logger
}

// NewReviewer creates a Reviewer. A nil logger discards output.
func NewReviewer(prs PullRequests, logger *log.Logger) *Reviewer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reviewer{prs: prs, logger: logger}
}

// Run comments on pull request number, then labels it. It returns the applied labels.
func (r *Reviewer) Run(ctx context.Context, number int, f Findings) ([]string, error) {
	if number <= 0 {
		return nil, ErrNoPullRequest
	}

	if _, err := r.prs.CreateComment(ctx, number, Body(f)); err != nil {
		return nil, err
	}

	labels := Labels(f)
	if err := r.prs.AddLabels(ctx, number, labels); err != nil {
		return nil, err
	}
	r.logger.Info("Reviewed pull request", "number", number, "labels", strings.Join(labels, ","))

	return labels, nil
}
