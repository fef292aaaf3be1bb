package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v59/github"
)

// CreateComment posts body as a comment on an issue or pull request.
func (c *Client) CreateComment(ctx context.Context, number int, body string) (*Comment, error) {
	c.logger.Debug("Creating comment", logFieldOwner, c.owner, logFieldRepo, c.repo, "number", number, "size", len(body))

	comment, _, err := c.issues.CreateComment(ctx, c.owner, c.repo, number, &github.IssueComment{Body: github.String(body)})
	if err != nil {
		return nil, fmt.Errorf("creating comment on #%d: %w", number, err)
	}
	return &Comment{ID: comment.GetID(), URL: comment.GetHTMLURL()}, nil
}

// CreateIssue opens a new issue with the given labels.
func (c *Client) CreateIssue(ctx context.Context, title, body string, labels []string) (*Issue, error) {
	c.logger.Debug("Creating issue", logFieldOwner, c.owner, logFieldRepo, c.repo, "title", title, "labels", labels)

	req := &github.IssueRequest{
		Title:  github.String(title),
		Body:   github.String(body),
		Labels: &labels,
	}
	issue, _, err := c.issues.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		return nil, fmt.Errorf("creating issue %q: %w", title, err)
	}
	return &Issue{Number: issue.GetNumber(), URL: issue.GetHTMLURL()}, nil
}

// AddLabels adds labels to an existing issue or pull request.
func (c *Client) AddLabels(ctx context.Context, number int, labels []string) error {
	c.logger.Debug("Adding labels", logFieldOwner, c.owner, logFieldRepo, c.repo, "number", number, "labels", labels)

	if _, _, err := c.issues.AddLabelsToIssue(ctx, c.owner, c.repo, number, labels); err != nil {
		return fmt.Errorf("adding labels to #%d: %w", number, err)
	}
	return nil
}
