package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heavens-above/ghscripts/internal/github"
)

type fakeIssues struct {
	title  string
	body   string
	labels []string
	err    error
}

func (f *fakeIssues) CreateIssue(_ context.Context, title, body string, labels []string) (*github.Issue, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.title, f.body, f.labels = title, body, labels
	return &github.Issue{Number: 12}, nil
}

var reportDate = time.Date(2024, 1, 9, 23, 30, 0, 0, time.UTC)

func TestBody(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		outcome Outcome
		want    string
	}{
		"all succeeded with cleanup results": {
			outcome: Outcome{BackupSuccess: "true", CacheUpdateSuccess: "true", CleanupResults: "Removed 3 runs"},
			want: "# Maintenance Report - 2024-01-09\n\n" +
				"## Backup Status\n✅ Backup completed successfully\n\n" +
				"## Cache Update Status\n✅ Cache updated successfully\n\n" +
				"## Cleanup Results\nRemoved 3 runs\n\n",
		},
		"unset flags fail": {
			outcome: Outcome{},
			want: "# Maintenance Report - 2024-01-09\n\n" +
				"## Backup Status\n❌ Backup failed\n\n" +
				"## Cache Update Status\n❌ Cache update failed\n\n" +
				"## Cleanup Results\n",
		},
		"flags are case sensitive": {
			outcome: Outcome{BackupSuccess: "TRUE", CacheUpdateSuccess: "true"},
			want: "# Maintenance Report - 2024-01-09\n\n" +
				"## Backup Status\n❌ Backup failed\n\n" +
				"## Cache Update Status\n✅ Cache updated successfully\n\n" +
				"## Cleanup Results\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Body(reportDate, tt.outcome))
		})
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		outcome Outcome
		wantErr error
	}{
		"success":       {outcome: Outcome{BackupSuccess: "true", CacheUpdateSuccess: "true"}},
		"backup failed": {outcome: Outcome{BackupSuccess: "false", CacheUpdateSuccess: "true"}, wantErr: ErrTasksFailed},
		"cache failed":  {outcome: Outcome{BackupSuccess: "true"}, wantErr: ErrTasksFailed},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			issues := &fakeIssues{}
			r := NewReporterWithClock(issues, nil, func() time.Time { return reportDate })
			issue, err := r.Run(context.Background(), tt.outcome)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NotNil(t, issue, "issue is filed regardless of outcome")
			assert.Equal(t, 12, issue.Number)
			assert.Equal(t, "Maintenance Report - 2024-01-09", issues.title)
			assert.Equal(t, Body(reportDate, tt.outcome), issues.body)
			assert.Equal(t, []string{"maintenance", "automated-report"}, issues.labels)
		})
	}
}

func TestRun_CreateFails(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := NewReporter(&fakeIssues{err: boom}, nil).Run(context.Background(), Outcome{})
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrTasksFailed)
}
