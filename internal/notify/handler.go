package notify

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/heavens-above/ghscripts/internal/github"
)

// ErrNoTarget is returned when the deployment has no issue or pull request to comment on.
var ErrNoTarget = errors.New("no issue or pull request number to comment on")

// Result holds what a notification created.
type Result struct {
	Comment *github.Comment
	// Issue is nil when the deployment succeeded.
	Issue *github.Issue
}

// Handler posts deployment notifications.
type Handler struct {
	sender Sender
	logger *log.Logger
	now    func() time.Time
}

// NewHandler creates a handler using the wall clock for failure titles.
func NewHandler(sender Sender, logger *log.Logger) *Handler {
	return NewHandlerWithClock(sender, logger, time.Now)
}

// NewHandlerWithClock creates a handler with a custom clock (for testing).
func NewHandlerWithClock(sender Sender, logger *log.Logger, now func() time.Time) *Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{sender: sender, logger: logger, now: now}
}

// Notify comments on the deployment's issue or pull request and, unless the
// deployment succeeded, opens a failure issue with the same body.
func (h *Handler) Notify(ctx context.Context, d Deployment) (*Result, error) {
	if d.Number <= 0 {
		return nil, ErrNoTarget
	}

	body := Message(d)
	result := &Result{}

	comment, err := h.sender.CreateComment(ctx, d.Number, body)
	if err != nil {
		return result, err
	}
	result.Comment = comment
	h.logger.Info("Posted deployment status", "number", d.Number, "status", d.Status)

	if d.Succeeded() {
		return result, nil
	}

	issue, err := h.sender.CreateIssue(ctx, FailureTitle(h.now()), body, failureLabels)
	if err != nil {
		return result, err
	}
	result.Issue = issue
	h.logger.Warn("Opened deployment failure issue", "issue", issue.Number, "status", d.Status)

	return result, nil
}
