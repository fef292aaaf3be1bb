// Package git reads release history from a local repository using go-git,
// without requiring the git CLI. It serves as the offline counterpart of the
// GitHub REST provider: tags stand in for releases and commit ranges are
// computed from the object graph.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/heavens-above/ghscripts/internal/changelog"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repository is a local revision history.
type Repository struct {
	repo *git.Repository
	root string
}

// Open opens the repository containing path, walking up to the directory that
// holds .git. An empty path means the current working directory.
func Open(path string) (*Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	root := path
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}

	logDebug("[git] repository opened at %s", root)
	return &Repository{repo: repo, root: root}, nil
}

// Root returns the working tree root of the repository.
func (r *Repository) Root() string {
	return r.root
}

// ListReleases returns the repository tags, newest first. Semantic version
// tags are ordered by precedence; other tags follow in descending name order.
func (r *Repository) ListReleases(_ context.Context) ([]changelog.Release, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sortTags(names)
	logDebug("[git] ListReleases: %d tags", len(names))

	releases := make([]changelog.Release, 0, len(names))
	for _, name := range names {
		releases = append(releases, changelog.Release{TagName: name, Name: name})
	}
	return releases, nil
}

// sortTags orders tags newest first.
func sortTags(names []string) {
	versions := make(map[string]*semver.Version, len(names))
	for _, n := range names {
		if v, err := semver.NewVersion(n); err == nil {
			versions[n] = v
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		vi, iok := versions[names[i]]
		vj, jok := versions[names[j]]
		switch {
		case iok && jok:
			if c := vi.Compare(vj); c != 0 {
				return c > 0
			}
			return names[i] > names[j]
		case iok != jok:
			return iok
		default:
			return names[i] > names[j]
		}
	})
}

// CompareCommits returns the commits reachable from head but not from base,
// oldest first. An empty base returns the full history of head.
func (r *Repository) CompareCommits(ctx context.Context, base, head string) ([]changelog.CommitRecord, error) {
	headCommit, err := r.resolveCommit(head)
	if err != nil {
		return nil, err
	}

	exclude := make(map[plumbing.Hash]struct{})
	if base != "" {
		baseCommit, err := r.resolveCommit(base)
		if err != nil {
			return nil, err
		}
		err = r.walk(ctx, baseCommit.Hash, func(c *object.Commit) {
			exclude[c.Hash] = struct{}{}
		})
		if err != nil {
			return nil, fmt.Errorf("walking history of %s: %w", base, err)
		}
	}

	var commits []changelog.CommitRecord
	err = r.walk(ctx, headCommit.Hash, func(c *object.Commit) {
		if _, ok := exclude[c.Hash]; ok {
			return
		}
		commits = append(commits, changelog.CommitRecord{SHA: c.Hash.String(), Message: c.Message})
	})
	if err != nil {
		return nil, fmt.Errorf("walking history of %s: %w", head, err)
	}

	slices.Reverse(commits)
	logDebug("[git] CompareCommits %s...%s: %d commits", base, head, len(commits))
	return commits, nil
}

// walk visits every commit reachable from start, newest committer time first.
func (r *Repository) walk(ctx context.Context, start plumbing.Hash, visit func(*object.Commit)) error {
	iter, err := r.repo.Log(&git.LogOptions{From: start, Order: git.LogOrderCommitterTime})
	if err != nil {
		return err
	}
	defer iter.Close()

	return iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		visit(c)
		return nil
	})
}

// resolveCommit resolves a tag, branch or commit hash to its commit.
// Annotated tags are peeled to the commit they point at.
func (r *Repository) resolveCommit(rev string) (*object.Commit, error) {
	if ref, err := r.repo.Tag(rev); err == nil {
		tag, err := r.repo.TagObject(ref.Hash())
		switch {
		case err == nil:
			commit, err := tag.Commit()
			if err != nil {
				return nil, fmt.Errorf("peeling tag %s: %w", rev, err)
			}
			return commit, nil
		case errors.Is(err, plumbing.ErrObjectNotFound):
			return r.commitObject(rev, ref.Hash())
		default:
			return nil, fmt.Errorf("reading tag %s: %w", rev, err)
		}
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %s: %w", rev, err)
	}
	return r.commitObject(rev, *hash)
}

func (r *Repository) commitObject(rev string, hash plumbing.Hash) (*object.Commit, error) {
	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit for %s: %w", rev, err)
	}
	return commit, nil
}
