// Package testutil provides a recording stand-in for the GitHub REST API.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// CallRecord is a single request received by the stand-in.
type CallRecord struct {
	Method    string
	Path      string
	Body      string
	Timestamp time.Time
}

// Key returns "METHOD /path".
func (r CallRecord) Key() string {
	return r.Method + " " + r.Path
}

// GitHubAPI serves canned responses and records every matched request.
type GitHubAPI struct {
	server *httptest.Server

	mu    sync.Mutex
	calls []CallRecord
}

// NewGitHubAPI starts a server answering routes. Keys are ServeMux patterns
// ("GET /repos/{owner}/{repo}/releases"); an int value is written as a bare
// status code, anything else is encoded as the JSON response body.
// Unmatched requests get 404. The server is closed when the test ends.
func NewGitHubAPI(t *testing.T, routes map[string]any) *GitHubAPI {
	t.Helper()

	api := &GitHubAPI{}
	mux := http.NewServeMux()
	for pattern, response := range routes {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			api.record(r)
			if status, ok := response.(int); ok {
				w.WriteHeader(status)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(response); err != nil {
				t.Errorf("encoding response for %s: %v", pattern, err)
			}
		})
	}

	api.server = httptest.NewServer(mux)
	t.Cleanup(api.server.Close)
	return api
}

// URL is the API base URL.
func (a *GitHubAPI) URL() string {
	return a.server.URL
}

func (a *GitHubAPI) record(r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, CallRecord{
		Method:    r.Method,
		Path:      r.URL.Path,
		Body:      string(body),
		Timestamp: time.Now(),
	})
}

// Calls returns the keys of all recorded requests in arrival order.
func (a *GitHubAPI) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	keys := make([]string, 0, len(a.calls))
	for _, c := range a.calls {
		keys = append(keys, c.Key())
	}
	return keys
}

// Body returns the request body of the last call matching key, or "".
func (a *GitHubAPI) Body(key string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := len(a.calls) - 1; i >= 0; i-- {
		if a.calls[i].Key() == key {
			return a.calls[i].Body
		}
	}
	return ""
}

// DecodeBody unmarshals the body of the last call matching key into v.
func (a *GitHubAPI) DecodeBody(t *testing.T, key string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(a.Body(key)), v); err != nil {
		t.Fatalf("decoding body of %s: %v", key, err)
	}
}
