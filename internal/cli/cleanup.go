package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/heavens-above/ghscripts/internal/cleanup"
	"github.com/heavens-above/ghscripts/internal/cli/shared"
	clierrors "github.com/heavens-above/ghscripts/internal/errors"
	"github.com/heavens-above/ghscripts/internal/output"
)

type cleanupOptions struct {
	dryRun        bool
	retentionDays int
}

func newCleanupCmd(global *globalOptions) *cobra.Command {
	opts := &cleanupOptions{}

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete old workflow runs and artifacts",
		Long: `Delete completed workflow runs and artifacts older than the retention
period (default 30 days, retention_days in the config).

Runs are processed first, then artifacts. The first failed request stops the
cleanup; nothing is retried.`,
		Example: `  ghscripts cleanup
  ghscripts cleanup --retention-days 14 --dry-run`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupScripts,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCleanup(cmd, global, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "List what would be deleted without deleting")
	cmd.Flags().IntVar(&opts.retentionDays, "retention-days", 0, "Override the retention period in days")

	return cmd
}

func runCleanup(cmd *cobra.Command, global *globalOptions, opts *cleanupOptions) error {
	if cmd.Flags().Changed("retention-days") && opts.retentionDays < 1 {
		return clierrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("invalid retention period: %d days", opts.retentionDays),
			"ghscripts cleanup --retention-days <days>",
			"Use a retention period of at least 1 day",
		)
	}

	rt, err := loadSession(cmd, global)
	if err != nil {
		return err
	}
	client, err := rt.githubClient(cmd.Context())
	if err != nil {
		return err
	}

	days := rt.cfg.RetentionDays
	if opts.retentionDays > 0 {
		days = opts.retentionDays
	}

	runner := cleanup.NewRunner(client, cleanup.Options{
		Retention: time.Duration(days) * 24 * time.Hour,
		DryRun:    opts.dryRun,
		Logger:    rt.logger,
	})
	rt.logger.Debug("Starting cleanup", "repo", rt.repository(), "retention_days", days, "dry_run", opts.dryRun)

	result, err := runner.Run(cmd.Context())
	if err != nil {
		return providerError(err)
	}

	verb := "Deleted"
	if opts.dryRun {
		verb = "Would delete"
		output.PrintWarning(rt.stderr, "Dry run: nothing was deleted")
		if rt.gha.Hosted {
			rt.commands.Warning("cleanup ran with --dry-run; no workflow runs or artifacts were deleted")
		}
	}
	output.PrintSuccess(rt.stderr, fmt.Sprintf("%s %d workflow runs and %d artifacts older than %s",
		verb, len(result.RunIDs), len(result.ArtifactIDs), result.Cutoff.UTC().Format(time.RFC3339)))

	if _, err := rt.commands.SetOutput("deleted_runs", fmt.Sprint(len(result.RunIDs))); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	if _, err := rt.commands.SetOutput("deleted_artifacts", fmt.Sprint(len(result.ArtifactIDs))); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	return nil
}
