package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/heavens-above/ghscripts/internal/actions"
	"github.com/heavens-above/ghscripts/internal/config"
	clierrors "github.com/heavens-above/ghscripts/internal/errors"
	"github.com/heavens-above/ghscripts/internal/git"
	"github.com/heavens-above/ghscripts/internal/github"
	"github.com/heavens-above/ghscripts/internal/progress"
)

// session is everything a command needs from its surroundings.
type session struct {
	opts     *globalOptions
	cfg      *config.Configuration
	gha      *actions.Context
	commands *actions.Commands
	logger   *log.Logger
	display  *progress.Display
	stdout   io.Writer
	stderr   io.Writer
}

// loadSession loads configuration and the workflow environment for cmd.
func loadSession(cmd *cobra.Command, opts *globalOptions) (*session, error) {
	logger := newLogger(cmd.ErrOrStderr(), opts.debug)
	if opts.debug {
		git.SetDebugLogger(logger.Debugf)
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigPath:    opts.configPath,
		WarningWriter: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Configuration, "loading configuration",
			"Check .ghscripts.yml (or the file passed with --config)",
			"Check GHSCRIPTS_* environment variables",
		)
	}

	gha, err := actions.FromEnv(os.Getenv)
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Configuration, "reading workflow environment")
	}

	return &session{
		opts:     opts,
		cfg:      cfg,
		gha:      gha,
		commands: actions.NewCommands(cmd.OutOrStdout(), os.Getenv),
		logger:   logger,
		display:  progress.NewDisplay(cmd.ErrOrStderr(), progress.DetectTerminalCapabilities(os.Stderr)),
		stdout:   cmd.OutOrStdout(),
		stderr:   cmd.ErrOrStderr(),
	}, nil
}

// newLogger creates the stderr logger. Debug lowers the level.
func newLogger(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "ghscripts"})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// repository returns the owner/name the command operates on.
func (r *session) repository() string {
	return lo.CoalesceOrEmpty(r.opts.repo, r.cfg.Repository)
}

// githubClient creates the REST client for the configured repository.
func (r *session) githubClient(ctx context.Context) (*github.Client, error) {
	token := lo.CoalesceOrEmpty(r.opts.token, r.cfg.Token)
	if token == "" {
		return nil, clierrors.MissingToken()
	}

	full := r.repository()
	if full == "" {
		return nil, clierrors.MissingRepository()
	}
	owner, repo, err := github.SplitRepository(full)
	if err != nil {
		return nil, clierrors.InvalidRepository(full)
	}

	client, err := github.NewClient(ctx, github.Options{
		Token:           token,
		Owner:           owner,
		Repo:            repo,
		APIURL:          r.cfg.APIURL,
		ReleaseLookback: r.cfg.ReleaseLookback,
		Logger:          r.logger,
	})
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Configuration, "creating GitHub client",
			"Check GITHUB_API_URL / api_url",
		)
	}
	return client, nil
}

// providerError wraps a failed remote call unless it already carries a category.
func providerError(err error) error {
	if err == nil || clierrors.IsCLIError(err) {
		return err
	}
	return clierrors.ProviderFailure(err)
}
