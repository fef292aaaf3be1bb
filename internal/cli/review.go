package cli

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/heavens-above/ghscripts/internal/cli/shared"
	clierrors "github.com/heavens-above/ghscripts/internal/errors"
	"github.com/heavens-above/ghscripts/internal/output"
	"github.com/heavens-above/ghscripts/internal/review"
)

type reviewOptions struct {
	pr int
}

func newReviewCmd(global *globalOptions) *cobra.Command {
	opts := &reviewOptions{}

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Post the automated review summary on a pull request",
		Long: `Comment the collected tool results on the pull request and label it.

Sections are included for LINT_RESULTS, COVERAGE_RESULTS, SECURITY_RESULTS and
SONAR_RESULTS when set. The pull request is labelled "reviewed" plus
"needs-work" when HAS_ISSUES is "true", otherwise "ready-to-merge".`,
		Example: `  ghscripts review
  ghscripts review --pr 42`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupScripts,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReview(cmd, global, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.pr, "pr", "p", 0, "Pull request number (default: from the event payload)")

	return cmd
}

func runReview(cmd *cobra.Command, global *globalOptions, opts *reviewOptions) error {
	rt, err := loadSession(cmd, global)
	if err != nil {
		return err
	}

	number := lo.CoalesceOrEmpty(opts.pr, rt.gha.Event.PullRequestNumber())
	if number <= 0 {
		return clierrors.MissingPullRequest()
	}

	client, err := rt.githubClient(cmd.Context())
	if err != nil {
		return err
	}

	findings := review.Findings{
		Lint:      rt.cfg.Review.LintResults,
		Coverage:  rt.cfg.Review.CoverageResults,
		Security:  rt.cfg.Review.SecurityResults,
		Sonar:     rt.cfg.Review.SonarResults,
		HasIssues: rt.cfg.Review.HasIssues,
	}

	labels, err := review.NewReviewer(client, rt.logger).Run(cmd.Context(), number, findings)
	if err != nil {
		return providerError(err)
	}

	output.PrintSuccess(rt.stderr, fmt.Sprintf("Reviewed #%d (%s)", number, strings.Join(labels, ", ")))
	return nil
}
