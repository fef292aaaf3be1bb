// Package cleanup deletes completed workflow runs and artifacts that are
// older than the retention period.
package cleanup

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/heavens-above/ghscripts/internal/github"
)

// DefaultRetention is how long runs and artifacts are kept.
const DefaultRetention = 30 * 24 * time.Hour

// timeFormat is how creation times appear in log lines.
const timeFormat = time.RFC3339

// Provider lists and deletes workflow runs and artifacts.
type Provider interface {
	ListCompletedRuns(ctx context.Context) ([]github.WorkflowRun, error)
	DeleteRun(ctx context.Context, id int64) error
	ListArtifacts(ctx context.Context) ([]github.Artifact, error)
	DeleteArtifact(ctx context.Context, id int64) error
}

// Options configures a Runner.
type Options struct {
	// Retention is the minimum age of a record before it is deleted.
	// Zero means DefaultRetention.
	Retention time.Duration
	// DryRun logs what would be deleted without deleting anything.
	DryRun bool
	Logger *log.Logger
}

// Result lists the deleted records. In dry-run mode it lists the records
// that would have been deleted.
type Result struct {
	Cutoff      time.Time
	RunIDs      []int64
	ArtifactIDs []int64
}

// Runner performs one cleanup pass.
type Runner struct {
	provider  Provider
	retention time.Duration
	dryRun    bool
	logger    *log.Logger
	now       func() time.Time
}

// NewRunner creates a Runner using the wall clock.
func NewRunner(provider Provider, opts Options) *Runner {
	return NewRunnerWithClock(provider, opts, time.Now)
}

// NewRunnerWithClock creates a Runner with a custom clock for testing.
func NewRunnerWithClock(provider Provider, opts Options, now func() time.Time) *Runner {
	if opts.Retention <= 0 {
		opts.Retention = DefaultRetention
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Runner{
		provider:  provider,
		retention: opts.Retention,
		dryRun:    opts.DryRun,
		logger:    opts.Logger,
		now:       now,
	}
}

// Run deletes expired runs first, then expired artifacts. The first failing
// call stops the pass; records deleted before it stay deleted.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{Cutoff: r.now().Add(-r.retention)}

	runs, err := r.provider.ListCompletedRuns(ctx)
	if err != nil {
		return result, err
	}
	for _, run := range ExpiredRuns(runs, result.Cutoff) {
		if !r.dryRun {
			if err := r.provider.DeleteRun(ctx, run.ID); err != nil {
				return result, err
			}
		}
		r.logDeleted("workflow run", run.ID, run.CreatedAt)
		result.RunIDs = append(result.RunIDs, run.ID)
	}

	artifacts, err := r.provider.ListArtifacts(ctx)
	if err != nil {
		return result, err
	}
	for _, artifact := range ExpiredArtifacts(artifacts, result.Cutoff) {
		if !r.dryRun {
			if err := r.provider.DeleteArtifact(ctx, artifact.ID); err != nil {
				return result, err
			}
		}
		r.logDeleted("artifact", artifact.ID, artifact.CreatedAt)
		result.ArtifactIDs = append(result.ArtifactIDs, artifact.ID)
	}

	return result, nil
}

func (r *Runner) logDeleted(kind string, id int64, createdAt time.Time) {
	if r.dryRun {
		r.logger.Infof("Would delete %s %d from %s", kind, id, createdAt.UTC().Format(timeFormat))
		return
	}
	r.logger.Infof("Deleted %s %d from %s", kind, id, createdAt.UTC().Format(timeFormat))
}

// ExpiredRuns returns the runs created strictly before cutoff, in input order.
func ExpiredRuns(runs []github.WorkflowRun, cutoff time.Time) []github.WorkflowRun {
	return lo.Filter(runs, func(run github.WorkflowRun, _ int) bool {
		return run.CreatedAt.Before(cutoff)
	})
}

// ExpiredArtifacts returns the artifacts created strictly before cutoff, in input order.
func ExpiredArtifacts(artifacts []github.Artifact, cutoff time.Time) []github.Artifact {
	return lo.Filter(artifacts, func(a github.Artifact, _ int) bool {
		return a.CreatedAt.Before(cutoff)
	})
}
