package changelog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistory struct {
	releases   []Release
	commits    []CommitRecord
	listErr    error
	compareErr error

	gotBase string
	gotHead string
}

func (f *fakeHistory) ListReleases(_ context.Context) ([]Release, error) {
	return f.releases, f.listErr
}

func (f *fakeHistory) CompareCommits(_ context.Context, base, head string) ([]CommitRecord, error) {
	f.gotBase = base
	f.gotHead = head
	return f.commits, f.compareErr
}

func TestGenerator_Run(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		tag          string
		releases     []Release
		commits      []CommitRecord
		wantBase     string
		wantHead     string
		wantMarkdown string
	}{
		"previous release is base": {
			tag:      "refs/tags/v1.1.0",
			releases: []Release{{TagName: "v1.0.0"}},
			commits: []CommitRecord{
				{SHA: "a1", Message: "feat: add login\n\nLong description"},
				{SHA: "b2", Message: "bump deps"},
			},
			wantBase: "v1.0.0",
			wantHead: "v1.1.0",
			wantMarkdown: "# Changelog for v1.1.0\n" +
				"\n## 🚀 New Features\n\n- add login\n" +
				"\n## 🔄 Other Changes\n\n- bump deps\n",
		},
		"no releases means empty base": {
			tag:          "v0.1.0",
			releases:     nil,
			commits:      []CommitRecord{{Message: "fix: first"}},
			wantBase:     "",
			wantHead:     "v0.1.0",
			wantMarkdown: "# Changelog for v0.1.0\n\n## 🐛 Bug Fixes\n\n- first\n",
		},
		"release for current tag is skipped": {
			tag:          "v2.0.0",
			releases:     []Release{{TagName: "v2.0.0"}, {TagName: "v1.9.0"}},
			commits:      nil,
			wantBase:     "v1.9.0",
			wantHead:     "v2.0.0",
			wantMarkdown: "# Changelog for v2.0.0\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			history := &fakeHistory{releases: tt.releases, commits: tt.commits}
			result, err := NewGenerator(history, nil).Run(context.Background(), tt.tag)
			require.NoError(t, err)

			assert.Equal(t, tt.wantBase, history.gotBase)
			assert.Equal(t, tt.wantHead, history.gotHead)
			assert.Equal(t, tt.wantBase, result.Base)
			assert.Equal(t, tt.wantHead, result.Tag)
			assert.Equal(t, tt.wantMarkdown, result.Markdown)
			assert.Equal(t, len(tt.commits), result.Groups.Count())
		})
	}
}

func TestGenerator_RunErrors(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	tests := map[string]struct {
		tag        string
		history    *fakeHistory
		wantErrMsg string
	}{
		"empty tag": {
			tag:        "refs/tags/",
			history:    &fakeHistory{},
			wantErrMsg: "release tag is empty",
		},
		"list releases fails": {
			tag:        "v1.0.0",
			history:    &fakeHistory{listErr: errBoom},
			wantErrMsg: "listing releases",
		},
		"compare fails": {
			tag:        "v1.0.0",
			history:    &fakeHistory{compareErr: errBoom},
			wantErrMsg: "comparing",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := NewGenerator(tt.history, nil).Run(context.Background(), tt.tag)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrMsg)
		})
	}
}

func TestPreviousRelease(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		releases []Release
		tag      string
		want     string
	}{
		"none":             {releases: nil, tag: "v1", want: ""},
		"first":            {releases: []Release{{TagName: "v0"}}, tag: "v1", want: "v0"},
		"skips self":       {releases: []Release{{TagName: "v1"}, {TagName: "v0"}}, tag: "v1", want: "v0"},
		"only self":        {releases: []Release{{TagName: "v1"}}, tag: "v1", want: ""},
		"skips empty tags": {releases: []Release{{Name: "draft"}, {TagName: "v0"}}, tag: "v1", want: "v0"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PreviousRelease(tt.releases, tt.tag))
		})
	}
}
