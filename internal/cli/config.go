package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/heavens-above/ghscripts/internal/cli/shared"
	"github.com/heavens-above/ghscripts/internal/config"
	clierrors "github.com/heavens-above/ghscripts/internal/errors"
	"github.com/heavens-above/ghscripts/internal/output"
)

type configInitOptions struct {
	force  bool
	stdout bool
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Create or inspect the project configuration",
		GroupID: shared.GroupConfig,
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(opts))
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	opts := &configInitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented .ghscripts.yml",
		Long: `Write a commented project configuration to .ghscripts.yml in the current
directory. An existing file is left unchanged unless --force is given.`,
		Example: `  # Create .ghscripts.yml
  ghscripts config init

  # Print the template instead of writing it
  ghscripts config init --stdout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing config file")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Print the template instead of writing it")

	return cmd
}

func runConfigInit(cmd *cobra.Command, opts *configInitOptions) error {
	template := config.GetDefaultConfigTemplate()
	if opts.stdout {
		fmt.Fprint(cmd.OutOrStdout(), template)
		return nil
	}

	path := config.ProjectConfigPath()
	if _, err := os.Stat(path); err == nil && !opts.force {
		return clierrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("%s already exists", path),
			"ghscripts config init --force",
			"Pass --force to overwrite it with the defaults",
		)
	}

	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+path)
	}
	output.PrintSuccess(cmd.ErrOrStderr(), "Created "+path)
	return nil
}

func newConfigShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the project file and the
environment. The token is redacted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return clierrors.WrapWithMessage(err, clierrors.Configuration, "loading configuration")
			}
			return printConfig(cmd.OutOrStdout(), cfg)
		},
	}
}

func printConfig(w io.Writer, cfg *config.Configuration) error {
	token := ""
	if cfg.Token != "" {
		token = "***"
	}
	view := map[string]any{
		"token":            token,
		"repository":       cfg.Repository,
		"api_url":          cfg.APIURL,
		"retention_days":   cfg.RetentionDays,
		"release_lookback": cfg.ReleaseLookback,
		"deploy": map[string]string{
			"environment": cfg.Deploy.Environment,
			"job_status":  cfg.Deploy.JobStatus,
		},
		"maintenance": map[string]string{
			"backup_success":       cfg.Maintenance.BackupSuccess,
			"cache_update_success": cfg.Maintenance.CacheUpdateSuccess,
			"cleanup_results":      cfg.Maintenance.CleanupResults,
		},
		"review": map[string]string{
			"lint_results":     cfg.Review.LintResults,
			"coverage_results": cfg.Review.CoverageResults,
			"security_results": cfg.Review.SecurityResults,
			"sonar_results":    cfg.Review.SonarResults,
			"has_issues":       cfg.Review.HasIssues,
		},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "printing configuration")
	}
	return enc.Close()
}
