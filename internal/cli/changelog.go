package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/heavens-above/ghscripts/internal/changelog"
	"github.com/heavens-above/ghscripts/internal/cli/shared"
	clierrors "github.com/heavens-above/ghscripts/internal/errors"
	"github.com/heavens-above/ghscripts/internal/git"
	"github.com/heavens-above/ghscripts/internal/output"
)

// changelogOutputName is the step output holding the rendered changelog.
const changelogOutputName = "changelog"

type changelogOptions struct {
	tag      string
	local    bool
	repoPath string
	output   string
	summary  bool
}

func newChangelogCmd(global *globalOptions) *cobra.Command {
	opts := &changelogOptions{}

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Render the changelog for a release tag",
		Long: `Render a Markdown changelog for a release tag.

The commits between the previous release and the tag are grouped by their
conventional prefix (feat:, fix:, docs:) into sections. The tag defaults to
the pushed tag in GITHUB_REF. Commits come from the GitHub API, or from the
local clone with --local.

The changelog is printed to stdout and, inside GitHub Actions, stored in the
"changelog" step output.`,
		Example: `  # On a tag push
  ghscripts changelog

  # Explicit tag, from the local clone, into a file
  ghscripts changelog --tag v1.4.0 --local --output CHANGELOG.md`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupScripts,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChangelog(cmd, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.tag, "tag", "t", "", "Release tag (default: tag in GITHUB_REF)")
	cmd.Flags().BoolVar(&opts.local, "local", false, "Read history from the local git repository instead of the API")
	cmd.Flags().StringVar(&opts.repoPath, "repo-path", ".", "Path inside the local repository (with --local)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Also write the changelog to this file")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Append the changelog to the job summary")

	return cmd
}

func runChangelog(cmd *cobra.Command, global *globalOptions, opts *changelogOptions) error {
	rt, err := loadSession(cmd, global)
	if err != nil {
		return err
	}

	tag := opts.tag
	if tag == "" && strings.HasPrefix(rt.gha.Ref, "refs/tags/") {
		tag = changelog.TagFromRef(rt.gha.Ref)
	}
	if tag == "" {
		return clierrors.MissingTag()
	}

	history, err := changelogHistory(cmd, rt, opts)
	if err != nil {
		return err
	}

	var result *changelog.Result
	err = rt.display.Track("Collecting commits for "+tag, func() error {
		var runErr error
		result, runErr = changelog.NewGenerator(history, rt.logger).Run(cmd.Context(), tag)
		return runErr
	})
	if err != nil {
		if opts.local {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "reading local history")
		}
		return providerError(err)
	}
	rt.logger.Debug("Changelog generated", "tag", result.Tag, "base", result.Base, "commits", result.Groups.Count())
	if result.Groups.IsEmpty() {
		output.PrintWarning(rt.stderr, fmt.Sprintf("No commits between %s and %s", lo.CoalesceOrEmpty(result.Base, "the first commit"), result.Tag))
	}

	fmt.Fprint(rt.stdout, result.Markdown)

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(result.Markdown), 0o644); err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing changelog")
		}
		output.PrintSuccess(rt.stderr, "Changelog written to "+opts.output)
	}

	if _, err := rt.commands.SetOutput(changelogOutputName, result.Markdown); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	if opts.summary {
		if _, err := rt.commands.AppendSummary(result.Markdown); err != nil {
			return clierrors.Wrap(err, clierrors.Runtime)
		}
	}
	return nil
}

// changelogHistory selects the revision history provider.
func changelogHistory(cmd *cobra.Command, rt *session, opts *changelogOptions) (changelog.RevisionHistory, error) {
	if opts.local {
		repo, err := git.Open(opts.repoPath)
		if err != nil {
			return nil, clierrors.WrapWithMessage(err, clierrors.Argument, "opening local repository",
				"Run inside a git checkout or pass --repo-path",
			)
		}
		rt.logger.Debug("Using local history", "root", repo.Root())
		return repo, nil
	}

	client, err := rt.githubClient(cmd.Context())
	if err != nil {
		return nil, err
	}
	return client, nil
}
