package changelog

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commits []string
		want    string
	}{
		"no commits renders title only": {
			commits: nil,
			want:    "# Changelog for v1.2.0\n",
		},
		"single feature": {
			commits: []string{"feat: add X"},
			want: "# Changelog for v1.2.0\n" +
				"\n## 🚀 New Features\n\n" +
				"- add X\n",
		},
		"feature without space keeps prefix": {
			commits: []string{"feat:add X"},
			want: "# Changelog for v1.2.0\n" +
				"\n## 🚀 New Features\n\n" +
				"- feat:add X\n",
		},
		"single other": {
			commits: []string{"unrelated message"},
			want: "# Changelog for v1.2.0\n" +
				"\n## 🔄 Other Changes\n\n" +
				"- unrelated message\n",
		},
		"all categories in fixed order": {
			commits: []string{"misc", "docs: guide", "fix: crash", "feat: login"},
			want: "# Changelog for v1.2.0\n" +
				"\n## 🚀 New Features\n\n" +
				"- login\n" +
				"\n## 🐛 Bug Fixes\n\n" +
				"- crash\n" +
				"\n## 📚 Documentation\n\n" +
				"- guide\n" +
				"\n## 🔄 Other Changes\n\n" +
				"- misc\n",
		},
		"empty categories leave no gap": {
			commits: []string{"feat: a", "chore: b"},
			want: "# Changelog for v1.2.0\n" +
				"\n## 🚀 New Features\n\n" +
				"- a\n" +
				"\n## 🔄 Other Changes\n\n" +
				"- chore: b\n",
		},
		"order within category preserved": {
			commits: []string{"feat: a", "fix: b", "feat: c"},
			want: "# Changelog for v1.2.0\n" +
				"\n## 🚀 New Features\n\n" +
				"- a\n" +
				"- c\n" +
				"\n## 🐛 Bug Fixes\n\n" +
				"- b\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Generate("v1.2.0", "v1.1.0", tt.commits))
		})
	}
}

func TestGenerate_BulletCountMatchesInput(t *testing.T) {
	t.Parallel()

	commits := []string{
		"feat: a", "feat: b", "fix: c", "docs: d", "e", "f", "fix: g", "chore: h",
	}

	out := Generate("v2.0.0", "", commits)

	bullets := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "- ") {
			bullets++
		}
	}
	assert.Equal(t, len(commits), bullets)
	assert.NotContains(t, out, "\n\n\n", "no double blank lines")
}

func TestGenerate_BaseRevisionNotRendered(t *testing.T) {
	t.Parallel()

	out := Generate("v1.0.0", "v0.9.0", []string{"feat: x"})
	assert.NotContains(t, out, "v0.9.0")
	assert.Equal(t, Generate("v1.0.0", "", []string{"feat: x"}), out)
}

func TestRenderMarkdown_WriteError(t *testing.T) {
	t.Parallel()

	err := RenderMarkdown(failingWriter{}, "v1.0.0", Group([]string{"feat: x"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering title")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
