package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heavens-above/ghscripts/internal/cli/shared"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	assert.Equal(t, "ghscripts", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Contains(t, cmd.Long, "GITHUB_TOKEN")
	assert.Contains(t, cmd.Example, "ghscripts changelog")
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName     string
		wantShortcut string
	}{
		"config": {flagName: "config", wantShortcut: "c"},
		"debug":  {flagName: "debug", wantShortcut: "d"},
		"repo":   {flagName: "repo", wantShortcut: "R"},
		"token":  {flagName: "token", wantShortcut: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := NewRootCmd().PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.wantShortcut, flag.Shorthand)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		group string
	}{
		"changelog": {group: shared.GroupScripts},
		"cleanup":   {group: shared.GroupScripts},
		"notify":    {group: shared.GroupScripts},
		"report":    {group: shared.GroupScripts},
		"review":    {group: shared.GroupScripts},
		"config":    {group: shared.GroupConfig},
		"version":   {group: shared.GroupInfo},
	}

	cmds := map[string]string{}
	for _, c := range NewRootCmd().Commands() {
		cmds[c.Name()] = c.GroupID
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			group, ok := cmds[name]
			require.True(t, ok, "missing command %s", name)
			assert.Equal(t, tt.group, group)
		})
	}
}

func TestSubcommandFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		command string
		flags   []string
	}{
		"changelog": {command: "changelog", flags: []string{"tag", "local", "repo-path", "output", "summary"}},
		"cleanup":   {command: "cleanup", flags: []string{"dry-run", "retention-days"}},
		"notify":    {command: "notify", flags: []string{"status", "issue"}},
		"review":    {command: "review", flags: []string{"pr"}},
		"version":   {command: "version", flags: []string{"plain"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd, _, err := NewRootCmd().Find([]string{tt.command})
			require.NoError(t, err)
			for _, f := range tt.flags {
				assert.NotNil(t, cmd.Flags().Lookup(f), "flag --%s", f)
			}
		})
	}
}

func TestRootCmd_Help(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "CI Scripts:")
	assert.Contains(t, buf.String(), "cleanup")
}

func TestVersionCmd_Plain(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"version", "--plain"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "ghscripts dev\n")
	assert.Contains(t, buf.String(), "commit: unknown\n")
}

func TestPrintPrettyVersion_MarksDevBuild(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printPrettyVersion(&buf)
	assert.Contains(t, buf.String(), "dev (development build)")
	assert.Contains(t, buf.String(), "Platform")
}

func TestTruncateCommit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0123abcd", truncateCommit("0123abcdef456"))
	assert.Equal(t, "abc", truncateCommit("abc"))
}
