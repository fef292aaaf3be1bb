package github

import "time"

// WorkflowRun is a completed Actions workflow run.
type WorkflowRun struct {
	ID        int64
	Name      string
	Status    string
	CreatedAt time.Time
}

// Artifact is a stored Actions artifact.
type Artifact struct {
	ID          int64
	Name        string
	SizeInBytes int64
	CreatedAt   time.Time
}

// Issue is a created issue.
type Issue struct {
	Number int
	URL    string
}

// Comment is a created issue or pull request comment.
type Comment struct {
	ID  int64
	URL string
}
