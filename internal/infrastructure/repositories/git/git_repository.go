package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reqlint/internal/domain/repositories"
)

const (
	committerName  = "reqlint[bot]"
	committerEmail = "reqlint[bot]@users.noreply.github.com"
)

// GoGitRepository implements repositories.VCSRepository using go-git,
// so committing a rewritten manifest needs no git binary on the host.
type GoGitRepository struct{}

// NewGoGitRepository creates a new go-git backed VCS repository.
func NewGoGitRepository() repositories.VCSRepository {
	return &GoGitRepository{}
}

// CommitFiles stages the given files and commits them on the current branch.
func (r *GoGitRepository) CommitFiles(paths []string, message string) (string, error) {
	if len(paths) == 0 {
		return "", errors.New("no files to commit")
	}

	abs, err := filepath.Abs(paths[0])
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(
		filepath.Dir(abs),
		&gogit.PlainOpenOptions{DetectDotGit: true},
	)
	if err != nil {
		return "", fmt.Errorf("not inside a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree: %w", err)
	}

	for _, path := range paths {
		if addErr := stage(worktree, path); addErr != nil {
			return "", addErr
		}
	}

	hash, commitErr := worktree.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  committerName,
			Email: committerEmail,
			When:  time.Now(),
		},
	})
	if commitErr != nil {
		return "", fmt.Errorf("failed to commit: %w", commitErr)
	}

	logger.Debugf("[git] Committed %d file(s) as %s", len(paths), hash.String())
	return hash.String(), nil
}

// stage adds one file to the worktree index.
func stage(worktree *gogit.Worktree, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	rel, err := filepath.Rel(worktree.Filesystem.Root(), abs)
	if err != nil {
		return fmt.Errorf("file %q is outside the repository: %w", abs, err)
	}

	if _, addErr := worktree.Add(rel); addErr != nil {
		return fmt.Errorf("failed to stage %q: %w", rel, addErr)
	}

	return nil
}
