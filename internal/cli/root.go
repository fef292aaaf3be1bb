// Package cli implements the ghscripts command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heavens-above/ghscripts/internal/actions"
	"github.com/heavens-above/ghscripts/internal/cli/shared"
	clierrors "github.com/heavens-above/ghscripts/internal/errors"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	debug      bool
	repo       string
	token      string
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "ghscripts",
		Short: "GitHub Actions helper scripts",
		Long: `ghscripts runs the repository's CI housekeeping from GitHub Actions:
release changelogs, workflow run and artifact cleanup, deployment
notifications, maintenance reports and automated pull request reviews.

Inside a workflow it reads GITHUB_TOKEN, GITHUB_REPOSITORY and the event
payload from the runner; locally pass --repo and --token instead.
Source: https://github.com/heavens-above/ghscripts`,
		Example: `  # Render the changelog for the pushed tag
  ghscripts changelog

  # Preview which runs and artifacts would be deleted
  ghscripts cleanup --dry-run --repo octo-org/octo-repo

  # Report a deployment outcome on pull request 42
  ghscripts notify --status failure --issue 42

  # File the maintenance report
  ghscripts report

  # Post the review summary
  ghscripts review --pr 42`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddGroup(
		&cobra.Group{ID: shared.GroupScripts, Title: "CI Scripts:"},
		&cobra.Group{ID: shared.GroupConfig, Title: "Configuration:"},
		&cobra.Group{ID: shared.GroupInfo, Title: "Information:"},
	)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default: .ghscripts.yml)")
	flags.BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")
	flags.StringVarP(&opts.repo, "repo", "R", "", "Repository as owner/name (default: GITHUB_REPOSITORY)")
	flags.StringVar(&opts.token, "token", "", "GitHub token (default: GITHUB_TOKEN)")

	cmd.AddCommand(
		newChangelogCmd(opts),
		newCleanupCmd(opts),
		newNotifyCmd(opts),
		newReportCmd(opts),
		newReviewCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	withTiming(cmd, opts)

	return cmd
}

// Execute runs the command tree and reports a failure on stderr. Inside
// GitHub Actions the failure is also raised as an error annotation.
func Execute() error {
	cmd := NewRootCmd()
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return nil
	}

	var exitErr *shared.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(cmd.ErrOrStderr(), cliErr)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		actions.NewCommands(cmd.OutOrStdout(), os.Getenv).SetFailed(clierrors.Annotation(err))
	}
	return err
}
