// Package report opens the maintenance report issue for a scheduled
// maintenance workflow.
package report

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/heavens-above/ghscripts/internal/github"
)

const dateFormat = "2006-01-02"

// FailureMessage is the step error annotation for failed maintenance tasks.
const FailureMessage = "One or more maintenance tasks failed"

// ErrTasksFailed is returned after the report is filed when the backup or the
// cache update did not succeed.
var ErrTasksFailed = errors.New("one or more maintenance tasks failed")

var labels = []string{"maintenance", "automated-report"}

// Outcome holds the results of the maintenance tasks. A task succeeded only
// when its flag is exactly "true".
type Outcome struct {
	BackupSuccess      string
	CacheUpdateSuccess string
	CleanupResults     string
}

func (o Outcome) backupOK() bool { return o.BackupSuccess == "true" }
func (o Outcome) cacheOK() bool  { return o.CacheUpdateSuccess == "true" }

// Failed reports whether any task failed.
func (o Outcome) Failed() bool {
	return !o.backupOK() || !o.cacheOK()
}

// Title returns the issue title for a report filed on date.
func Title(date time.Time) string {
	return "Maintenance Report - " + date.UTC().Format(dateFormat)
}

// Body renders the report Markdown for date.
func Body(date time.Time, o Outcome) string {
	var b strings.Builder
	b.WriteString("# " + Title(date) + "\n\n")

	b.WriteString("## Backup Status\n")
	if o.backupOK() {
		b.WriteString("✅ Backup completed successfully\n\n")
	} else {
		b.WriteString("❌ Backup failed\n\n")
	}

	b.WriteString("## Cache Update Status\n")
	if o.cacheOK() {
		b.WriteString("✅ Cache updated successfully\n\n")
	} else {
		b.WriteString("❌ Cache update failed\n\n")
	}

	b.WriteString("## Cleanup Results\n")
	if o.CleanupResults != "" {
		b.WriteString(o.CleanupResults + "\n\n")
	}
	return b.String()
}

// IssueCreator files issues.
type IssueCreator interface {
	CreateIssue(ctx context.Context, title, body string, labels []string) (*github.Issue, error)
}

// Reporter files maintenance reports.
type Reporter struct {
	issues IssueCreator
	logger *log.Logger
	now    func() time.Time
}

// NewReporter creates a Reporter dated by the wall clock.
func NewReporter(issues IssueCreator, logger *log.Logger) *Reporter {
	return NewReporterWithClock(issues, logger, time.Now)
}

// NewReporterWithClock creates a Reporter with a custom clock (for testing).
func NewReporterWithClock(issues IssueCreator, logger *log.Logger, now func() time.Time) *Reporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reporter{issues: issues, logger: logger, now: now}
}

// Run files the report. The issue is created even when tasks failed; in that
// case the created issue is returned together with ErrTasksFailed.
func (r *Reporter) Run(ctx context.Context, o Outcome) (*github.Issue, error) {
	now := r.now()
	issue, err := r.issues.CreateIssue(ctx, Title(now), Body(now, o), labels)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Filed maintenance report", "issue", issue.Number)

	if o.Failed() {
		return issue, ErrTasksFailed
	}
	return issue, nil
}
