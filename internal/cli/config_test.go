package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heavens-above/ghscripts/internal/cli/shared"
	"github.com/heavens-above/ghscripts/internal/config"
)

func TestConfigInitCmd(t *testing.T) {
	tests := map[string]struct {
		existing    string
		args        []string
		wantErrCode int
		wantFile    string
	}{
		"creates file": {
			args:     []string{"config", "init"},
			wantFile: config.GetDefaultConfigTemplate(),
		},
		"keeps existing file": {
			existing:    "retention_days: 7\n",
			args:        []string{"config", "init"},
			wantErrCode: shared.ExitInvalidArguments,
			wantFile:    "retention_days: 7\n",
		},
		"force overwrites": {
			existing: "retention_days: 7\n",
			args:     []string{"config", "init", "--force"},
			wantFile: config.GetDefaultConfigTemplate(),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			setupCLI(t, nil, nil)
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(config.ProjectConfigPath(), []byte(tt.existing), 0o644))
			}

			_, _, err := runCLI(t, tt.args...)
			if tt.wantErrCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantErrCode, shared.ExitCode(err))
			} else {
				require.NoError(t, err)
			}

			data, err := os.ReadFile(config.ProjectConfigPath())
			require.NoError(t, err)
			assert.Equal(t, tt.wantFile, string(data))
		})
	}
}

func TestConfigInitCmd_Stdout(t *testing.T) {
	setupCLI(t, nil, nil)

	stdout, _, err := runCLI(t, "config", "init", "--stdout")
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfigTemplate(), stdout)
	assert.NoFileExists(t, config.ProjectConfigPath())
}

func TestConfigShowCmd(t *testing.T) {
	setupCLI(t, nil, map[string]string{"ENVIRONMENT": "staging"})
	require.NoError(t, os.WriteFile(config.ProjectConfigPath(),
		[]byte("retention_days: 14\nreview:\n  has_issues: true\n"), 0o644))

	stdout, _, err := runCLI(t, "config", "show")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "t0k3n")
	assert.Contains(t, stdout, "repository: octo/app\n")
	assert.Contains(t, stdout, "retention_days: 14\n")
	assert.Contains(t, stdout, "  environment: staging\n")
	assert.Contains(t, stdout, `  has_issues: "true"`)
}

func TestConfigShowCmd_InvalidConfig(t *testing.T) {
	setupCLI(t, nil, nil)
	require.NoError(t, os.WriteFile(config.ProjectConfigPath(), []byte("retention_days: 0\n"), 0o644))

	_, _, err := runCLI(t, "config", "show")
	require.Error(t, err)
	assert.Equal(t, shared.ExitConfigError, shared.ExitCode(err))
}
