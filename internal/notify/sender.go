package notify

import (
	"context"

	"github.com/heavens-above/ghscripts/internal/github"
)

// Sender publishes notifications to the repository.
type Sender interface {
	CreateComment(ctx context.Context, number int, body string) (*github.Comment, error)
	CreateIssue(ctx context.Context, title, body string, labels []string) (*github.Issue, error)
}
