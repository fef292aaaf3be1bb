package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/heavens-above/ghscripts/internal/cli/shared"
	"github.com/heavens-above/ghscripts/internal/output"
	"github.com/heavens-above/ghscripts/internal/report"
)

func newReportCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "File the maintenance report issue",
		Long: `Open an issue summarizing the scheduled maintenance run: backup status,
cache update status and cleanup results, taken from BACKUP_SUCCESS,
CACHE_UPDATE_SUCCESS and CLEANUP_RESULTS.

A task succeeded only if its variable is exactly "true". The issue is always
filed; when a task failed the step fails afterwards with exit code 1.`,
		Example: `  BACKUP_SUCCESS=true CACHE_UPDATE_SUCCESS=false ghscripts report`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupScripts,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, global)
		},
	}
}

func runReport(cmd *cobra.Command, global *globalOptions) error {
	rt, err := loadSession(cmd, global)
	if err != nil {
		return err
	}
	client, err := rt.githubClient(cmd.Context())
	if err != nil {
		return err
	}

	outcome := report.Outcome{
		BackupSuccess:      rt.cfg.Maintenance.BackupSuccess,
		CacheUpdateSuccess: rt.cfg.Maintenance.CacheUpdateSuccess,
		CleanupResults:     rt.cfg.Maintenance.CleanupResults,
	}

	issue, err := report.NewReporter(client, rt.logger).Run(cmd.Context(), outcome)
	if issue != nil {
		output.PrintLink(rt.stderr, "Report", issue.URL)
	}
	if errors.Is(err, report.ErrTasksFailed) {
		rt.commands.SetFailed(report.FailureMessage)
		return shared.NewExitError(shared.ExitStepFailed)
	}
	return providerError(err)
}
