// Package notify reports the outcome of a deployment job on the triggering
// issue or pull request and opens a tracking issue when it did not succeed.
package notify

import (
	"fmt"
	"strings"
	"time"
)

// StatusSuccess is the only job status treated as a successful deployment.
const StatusSuccess = "success"

// DefaultEnvironment is used when the deployment names no environment.
const DefaultEnvironment = "production"

// separator is the whitespace-only line between message blocks.
const separator = "  "

// failureLabels are applied to the issue opened for a failed deployment.
var failureLabels = []string{"deployment", "failed"}

// Deployment describes the finished deployment job.
type Deployment struct {
	// Status is the job status as reported by the runner (success, failure, cancelled).
	Status      string
	SHA         string
	Environment string
	Workflow    string
	RunNumber   int
	// RunURL links to the workflow run.
	RunURL string
	// Number is the issue or pull request that receives the comment.
	Number int
}

// Succeeded reports whether the job status is exactly "success".
func (d Deployment) Succeeded() bool {
	return d.Status == StatusSuccess
}

// Message renders the notification body. Blocks are separated by a line of
// two spaces.
func Message(d Deployment) string {
	env := d.Environment
	if env == "" {
		env = DefaultEnvironment
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Deployment %s for %s\n%s\n", strings.ToLower(d.Status), d.SHA, separator)
	fmt.Fprintf(&b, "Environment: %s\n", env)
	fmt.Fprintf(&b, "Workflow: %s\n", d.Workflow)
	fmt.Fprintf(&b, "Run: %d\n%s\n", d.RunNumber, separator)
	fmt.Fprintf(&b, "Details: %s", d.RunURL)
	return b.String()
}

// FailureTitle returns the title of the failure issue created at t.
func FailureTitle(t time.Time) string {
	return "Deployment Failed - " + t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
