package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v59/github"
)

// statusCompleted filters workflow runs that have finished.
const statusCompleted = "completed"

// ListCompletedRuns returns every completed workflow run of the repository.
func (c *Client) ListCompletedRuns(ctx context.Context) ([]WorkflowRun, error) {
	c.logger.Debug("Listing completed workflow runs", logFieldOwner, c.owner, logFieldRepo, c.repo)

	var runs []WorkflowRun
	opts := &github.ListWorkflowRunsOptions{
		Status:      statusCompleted,
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	for {
		page, resp, err := c.actions.ListRepositoryWorkflowRuns(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing workflow runs (page %d): %w", opts.Page, err)
		}
		for _, r := range page.WorkflowRuns {
			runs = append(runs, WorkflowRun{
				ID:        r.GetID(),
				Name:      r.GetName(),
				Status:    r.GetStatus(),
				CreatedAt: r.GetCreatedAt().Time,
			})
		}

		if opts.Page = nextPage(resp); opts.Page == 0 {
			break
		}
	}
	return runs, nil
}

// ListArtifacts returns every stored artifact of the repository.
func (c *Client) ListArtifacts(ctx context.Context) ([]Artifact, error) {
	c.logger.Debug("Listing artifacts", logFieldOwner, c.owner, logFieldRepo, c.repo)

	var artifacts []Artifact
	opts := &github.ListOptions{PerPage: perPage}
	for {
		page, resp, err := c.actions.ListArtifacts(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing artifacts (page %d): %w", opts.Page, err)
		}
		for _, a := range page.Artifacts {
			artifacts = append(artifacts, Artifact{
				ID:          a.GetID(),
				Name:        a.GetName(),
				SizeInBytes: a.GetSizeInBytes(),
				CreatedAt:   a.GetCreatedAt().Time,
			})
		}

		if opts.Page = nextPage(resp); opts.Page == 0 {
			break
		}
	}
	return artifacts, nil
}

// DeleteRun deletes a workflow run and its logs.
func (c *Client) DeleteRun(ctx context.Context, id int64) error {
	if _, err := c.actions.DeleteWorkflowRun(ctx, c.owner, c.repo, id); err != nil {
		return fmt.Errorf("deleting workflow run %d: %w", id, err)
	}
	return nil
}

// DeleteArtifact deletes a stored artifact.
func (c *Client) DeleteArtifact(ctx context.Context, id int64) error {
	if _, err := c.actions.DeleteArtifact(ctx, c.owner, c.repo, id); err != nil {
		return fmt.Errorf("deleting artifact %d: %w", id, err)
	}
	return nil
}
