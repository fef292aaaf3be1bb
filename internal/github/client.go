// Package github provides the GitHub REST API operations used by the CI scripts:
// release and commit lookup, issue comments and labels, and workflow run and
// artifact housekeeping. Every operation is a single sequential request chain
// with errors returned to the caller; nothing is retried.
package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v59/github"
	"golang.org/x/oauth2"
)

const (
	// perPage is the page size for paginated list calls.
	perPage = 100

	// defaultAPIURL is the public GitHub API endpoint.
	defaultAPIURL = "https://api.github.com/"

	logFieldOwner = "owner"
	logFieldRepo  = "repo"
)

// RepositoriesService is the subset of the repositories API used here.
type RepositoriesService interface {
	ListReleases(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.RepositoryRelease, *github.Response, error)
	CompareCommits(ctx context.Context, owner, repo, base, head string, opts *github.ListOptions) (*github.CommitsComparison, *github.Response, error)
	ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error)
}

// IssuesService is the subset of the issues API used here.
type IssuesService interface {
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
	AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error)
}

// ActionsService is the subset of the actions API used here.
type ActionsService interface {
	ListRepositoryWorkflowRuns(ctx context.Context, owner, repo string, opts *github.ListWorkflowRunsOptions) (*github.WorkflowRuns, *github.Response, error)
	ListArtifacts(ctx context.Context, owner, repo string, opts *github.ListOptions) (*github.ArtifactList, *github.Response, error)
	DeleteWorkflowRun(ctx context.Context, owner, repo string, runID int64) (*github.Response, error)
	DeleteArtifact(ctx context.Context, owner, repo string, artifactID int64) (*github.Response, error)
}

// Options configures a Client.
type Options struct {
	// Token authenticates every request. Empty means anonymous access.
	Token string
	// Owner and Repo identify the repository all calls operate on.
	Owner string
	Repo  string
	// APIURL overrides the API endpoint (GitHub Enterprise Server).
	APIURL string
	// ReleaseLookback bounds how many releases ListReleases fetches.
	ReleaseLookback int
	// Logger receives debug output for each call. Nil discards it.
	Logger *log.Logger
}

// Client performs API calls against a single repository.
type Client struct {
	owner           string
	repo            string
	releaseLookback int

	repos   RepositoriesService
	issues  IssuesService
	actions ActionsService
	logger  *log.Logger
}

// NewClient creates a Client backed by go-github using an oauth2 token transport.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	gh, err := newGitHubClient(ctx, opts.Token, opts.APIURL)
	if err != nil {
		return nil, err
	}
	return NewClientWithServices(opts, gh.Repositories, gh.Issues, gh.Actions), nil
}

// NewClientWithServices creates a Client from explicit services.
// Used by tests to substitute fakes for the remote API.
func NewClientWithServices(opts Options, repos RepositoriesService, issues IssuesService, actions ActionsService) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	lookback := opts.ReleaseLookback
	if lookback <= 0 {
		lookback = 10
	}
	return &Client{
		owner:           opts.Owner,
		repo:            opts.Repo,
		releaseLookback: lookback,
		repos:           repos,
		issues:          issues,
		actions:         actions,
		logger:          logger,
	}
}

// newGitHubClient builds the go-github client for the given token and endpoint.
func newGitHubClient(ctx context.Context, token, apiURL string) (*github.Client, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(httpClient)

	base, err := parseAPIURL(apiURL)
	if err != nil {
		return nil, err
	}
	client.BaseURL = base
	return client, nil
}

// parseAPIURL normalizes an API endpoint. go-github requires a trailing slash.
func parseAPIURL(raw string) (*url.URL, error) {
	if raw == "" {
		raw = defaultAPIURL
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing API URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("API URL %q must be absolute", raw)
	}
	return u, nil
}

// nextPage returns the next page number or 0 when the listing is exhausted.
func nextPage(resp *github.Response) int {
	if resp == nil {
		return 0
	}
	return resp.NextPage
}

// SplitRepository splits "owner/repo" into its parts.
func SplitRepository(full string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(full, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("repository %q is not in owner/repo form", full)
	}
	return owner, repo, nil
}
