// Package actions reads the GitHub Actions runner environment and writes
// workflow commands (annotations, step outputs, job summaries).
package actions

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// defaultServerURL is used when GITHUB_SERVER_URL is unset.
const defaultServerURL = "https://github.com"

// Context is the metadata the runner exposes for the current workflow run.
type Context struct {
	Repository string
	Owner      string
	Repo       string
	Ref        string
	SHA        string
	Workflow   string
	EventName  string
	ServerURL  string
	RunID      int64
	RunNumber  int
	Event      Event
	// Hosted is true when running on a GitHub Actions runner.
	Hosted bool
}

// Event is the part of the triggering webhook payload the scripts consume.
type Event struct {
	Number      int           `json:"number"`
	Issue       *numberedItem `json:"issue,omitempty"`
	PullRequest *numberedItem `json:"pull_request,omitempty"`
}

type numberedItem struct {
	Number int `json:"number"`
}

// IssueNumber returns the issue number of the event, falling back to the
// pull request number. Zero means the event has neither.
func (e Event) IssueNumber() int {
	if e.Issue != nil && e.Issue.Number > 0 {
		return e.Issue.Number
	}
	return e.PullRequestNumber()
}

// PullRequestNumber returns the pull request number of the event, or zero.
func (e Event) PullRequestNumber() int {
	if e.PullRequest != nil && e.PullRequest.Number > 0 {
		return e.PullRequest.Number
	}
	if e.Issue == nil && e.Number > 0 {
		return e.Number
	}
	return 0
}

// RunURL returns the web URL of the workflow run.
func (c *Context) RunURL() string {
	return fmt.Sprintf("%s/%s/%s/actions/runs/%d", c.ServerURL, c.Owner, c.Repo, c.RunID)
}

// FromEnv builds a Context from runner environment variables.
// getenv is usually os.Getenv. A missing event payload is not an error.
func FromEnv(getenv func(string) string) (*Context, error) {
	ctx := &Context{
		Repository: getenv("GITHUB_REPOSITORY"),
		Ref:        getenv("GITHUB_REF"),
		SHA:        getenv("GITHUB_SHA"),
		Workflow:   getenv("GITHUB_WORKFLOW"),
		EventName:  getenv("GITHUB_EVENT_NAME"),
		ServerURL:  strings.TrimSuffix(getenv("GITHUB_SERVER_URL"), "/"),
		Hosted:     getenv("GITHUB_ACTIONS") == "true",
	}
	if ctx.ServerURL == "" {
		ctx.ServerURL = defaultServerURL
	}

	if owner, repo, ok := strings.Cut(ctx.Repository, "/"); ok {
		ctx.Owner, ctx.Repo = owner, repo
	}

	var err error
	if v := getenv("GITHUB_RUN_ID"); v != "" {
		if ctx.RunID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("parsing GITHUB_RUN_ID %q: %w", v, err)
		}
	}
	if v := getenv("GITHUB_RUN_NUMBER"); v != "" {
		if ctx.RunNumber, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("parsing GITHUB_RUN_NUMBER %q: %w", v, err)
		}
	}

	if path := getenv("GITHUB_EVENT_PATH"); path != "" {
		event, err := readEvent(path)
		if err != nil {
			return nil, err
		}
		ctx.Event = event
	}

	return ctx, nil
}

// readEvent decodes the webhook payload at path.
func readEvent(path string) (Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Event{}, nil
		}
		return Event{}, fmt.Errorf("reading event payload: %w", err)
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("parsing event payload %s: %w", path, err)
	}
	return event, nil
}
