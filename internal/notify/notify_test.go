package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heavens-above/ghscripts/internal/github"
)

type issueCall struct {
	title  string
	body   string
	labels []string
}

type fakeSender struct {
	comments map[int]string
	issues   []issueCall

	commentErr error
	issueErr   error
}

func (f *fakeSender) CreateComment(_ context.Context, number int, body string) (*github.Comment, error) {
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	if f.comments == nil {
		f.comments = map[int]string{}
	}
	f.comments[number] = body
	return &github.Comment{ID: 1}, nil
}

func (f *fakeSender) CreateIssue(_ context.Context, title, body string, labels []string) (*github.Issue, error) {
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	f.issues = append(f.issues, issueCall{title: title, body: body, labels: labels})
	return &github.Issue{Number: 99}, nil
}

var clock = func() time.Time { return time.Date(2024, 3, 5, 7, 8, 9, 123_000_000, time.UTC) }

func deployment(status string) Deployment {
	return Deployment{
		Status:    status,
		SHA:       "abc123",
		Workflow:  "Deploy",
		RunNumber: 17,
		RunURL:    "https://github.com/octo/app/actions/runs/9001",
		Number:    42,
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		deployment Deployment
		want       string
	}{
		"default environment": {
			deployment: deployment("Success"),
			want: "Deployment success for abc123\n  \n" +
				"Environment: production\n" +
				"Workflow: Deploy\n" +
				"Run: 17\n  \n" +
				"Details: https://github.com/octo/app/actions/runs/9001",
		},
		"explicit environment": {
			deployment: func() Deployment {
				d := deployment("FAILURE")
				d.Environment = "staging"
				return d
			}(),
			want: "Deployment failure for abc123\n  \n" +
				"Environment: staging\n" +
				"Workflow: Deploy\n" +
				"Run: 17\n  \n" +
				"Details: https://github.com/octo/app/actions/runs/9001",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Message(tt.deployment))
		})
	}
}

func TestFailureTitle(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Deployment Failed - 2024-03-05T07:08:09.123Z", FailureTitle(clock()))
}

func TestNotify(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		status    string
		wantIssue bool
	}{
		"success comments only":    {status: "success", wantIssue: false},
		"failure opens an issue":   {status: "failure", wantIssue: true},
		"cancelled opens an issue": {status: "cancelled", wantIssue: true},
		"status match is exact":    {status: "Success", wantIssue: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sender := &fakeSender{}
			d := deployment(tt.status)
			result, err := NewHandlerWithClock(sender, nil, clock).Notify(context.Background(), d)
			require.NoError(t, err)

			assert.Equal(t, Message(d), sender.comments[42])
			require.NotNil(t, result.Comment)
			if !tt.wantIssue {
				assert.Empty(t, sender.issues)
				assert.Nil(t, result.Issue)
				return
			}
			require.Len(t, sender.issues, 1)
			assert.Equal(t, "Deployment Failed - 2024-03-05T07:08:09.123Z", sender.issues[0].title)
			assert.Equal(t, Message(d), sender.issues[0].body)
			assert.Equal(t, []string{"deployment", "failed"}, sender.issues[0].labels)
			assert.Equal(t, 99, result.Issue.Number)
		})
	}
}

func TestNotify_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	t.Run("no target", func(t *testing.T) {
		t.Parallel()
		sender := &fakeSender{}
		d := deployment("failure")
		d.Number = 0
		_, err := NewHandler(sender, nil).Notify(context.Background(), d)
		require.ErrorIs(t, err, ErrNoTarget)
		assert.Empty(t, sender.comments)
		assert.Empty(t, sender.issues)
	})

	t.Run("comment fails before issue", func(t *testing.T) {
		t.Parallel()
		sender := &fakeSender{commentErr: boom}
		_, err := NewHandler(sender, nil).Notify(context.Background(), deployment("failure"))
		require.ErrorIs(t, err, boom)
		assert.Empty(t, sender.issues)
	})

	t.Run("issue fails", func(t *testing.T) {
		t.Parallel()
		sender := &fakeSender{issueErr: boom}
		result, err := NewHandler(sender, nil).Notify(context.Background(), deployment("failure"))
		require.ErrorIs(t, err, boom)
		assert.NotNil(t, result.Comment)
	})
}
