package github

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/go-github/v59/github"

	"github.com/heavens-above/ghscripts/internal/changelog"
)

// ListReleases returns the most recent releases, newest first.
func (c *Client) ListReleases(ctx context.Context) ([]changelog.Release, error) {
	c.logger.Debug("Listing releases", logFieldOwner, c.owner, logFieldRepo, c.repo, "limit", c.releaseLookback)

	releases, _, err := c.repos.ListReleases(ctx, c.owner, c.repo, &github.ListOptions{PerPage: c.releaseLookback})
	if err != nil {
		return nil, fmt.Errorf("listing releases of %s/%s: %w", c.owner, c.repo, err)
	}

	out := make([]changelog.Release, 0, len(releases))
	for _, r := range releases {
		out = append(out, changelog.Release{TagName: r.GetTagName(), Name: r.GetName()})
	}
	return out, nil
}

// CompareCommits returns the commits between base and head, oldest first.
// An empty base returns every commit reachable from head.
func (c *Client) CompareCommits(ctx context.Context, base, head string) ([]changelog.CommitRecord, error) {
	if base == "" {
		return c.listCommits(ctx, head)
	}

	c.logger.Debug("Comparing commits", logFieldOwner, c.owner, logFieldRepo, c.repo, "base", base, "head", head)

	var commits []changelog.CommitRecord
	opts := &github.ListOptions{PerPage: perPage}
	for {
		cmp, resp, err := c.repos.CompareCommits(ctx, c.owner, c.repo, base, head, opts)
		if err != nil {
			return nil, fmt.Errorf("comparing %s...%s: %w", base, head, err)
		}
		commits = append(commits, toCommitRecords(cmp.Commits)...)

		if opts.Page = nextPage(resp); opts.Page == 0 {
			break
		}
	}
	return commits, nil
}

// listCommits lists the history of head. The API returns newest first.
func (c *Client) listCommits(ctx context.Context, head string) ([]changelog.CommitRecord, error) {
	c.logger.Debug("Listing commits", logFieldOwner, c.owner, logFieldRepo, c.repo, "head", head)

	var commits []changelog.CommitRecord
	opts := &github.CommitsListOptions{SHA: head, ListOptions: github.ListOptions{PerPage: perPage}}
	for {
		page, resp, err := c.repos.ListCommits(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing commits of %s: %w", head, err)
		}
		commits = append(commits, toCommitRecords(page)...)

		if opts.Page = nextPage(resp); opts.Page == 0 {
			break
		}
	}

	slices.Reverse(commits)
	return commits, nil
}

func toCommitRecords(commits []*github.RepositoryCommit) []changelog.CommitRecord {
	out := make([]changelog.CommitRecord, 0, len(commits))
	for _, rc := range commits {
		out = append(out, changelog.CommitRecord{
			SHA:     rc.GetSHA(),
			Message: rc.GetCommit().GetMessage(),
		})
	}
	return out
}
