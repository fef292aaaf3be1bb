package cli

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/heavens-above/ghscripts/internal/cli/shared"
	clierrors "github.com/heavens-above/ghscripts/internal/errors"
	"github.com/heavens-above/ghscripts/internal/notify"
	"github.com/heavens-above/ghscripts/internal/output"
)

type notifyOptions struct {
	status string
	issue  int
}

func newNotifyCmd(global *globalOptions) *cobra.Command {
	opts := &notifyOptions{}

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Comment the deployment status on the triggering issue or pull request",
		Long: `Comment the outcome of a deployment job on the issue or pull request that
triggered the workflow. When the status is anything but "success", an issue
labelled deployment and failed is opened as well.

Pass the job status with --status ${{ job.status }} or JOB_STATUS.`,
		Example: `  ghscripts notify --status ${{ job.status }}
  ghscripts notify --status failure --issue 42`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupScripts,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNotify(cmd, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.status, "status", "s", "", "Job status: success, failure or cancelled (default: JOB_STATUS)")
	cmd.Flags().IntVarP(&opts.issue, "issue", "i", 0, "Issue or pull request to comment on (default: from the event payload)")

	return cmd
}

func runNotify(cmd *cobra.Command, global *globalOptions, opts *notifyOptions) error {
	rt, err := loadSession(cmd, global)
	if err != nil {
		return err
	}

	status := lo.CoalesceOrEmpty(opts.status, rt.cfg.Deploy.JobStatus)
	if status == "" {
		return clierrors.NewArgumentErrorWithUsage("job status is not set",
			"ghscripts notify --status <status>",
			"Pass --status ${{ job.status }} or set JOB_STATUS",
		)
	}

	number := lo.CoalesceOrEmpty(opts.issue, rt.gha.Event.IssueNumber())
	if number <= 0 {
		return clierrors.MissingIssueNumber()
	}

	client, err := rt.githubClient(cmd.Context())
	if err != nil {
		return err
	}

	deployment := notify.Deployment{
		Status:      status,
		SHA:         rt.gha.SHA,
		Environment: rt.cfg.Deploy.Environment,
		Workflow:    rt.gha.Workflow,
		RunNumber:   rt.gha.RunNumber,
		RunURL:      rt.gha.RunURL(),
		Number:      number,
	}

	result, err := notify.NewHandler(client, rt.logger).Notify(cmd.Context(), deployment)
	if err != nil {
		return providerError(err)
	}

	if result.Comment != nil && result.Comment.URL != "" {
		output.PrintLink(rt.stderr, "Comment", result.Comment.URL)
	}
	if result.Issue != nil {
		output.PrintLink(rt.stderr, "Failure issue", result.Issue.URL)
	}
	return nil
}
