// --- START OF FINAL REVISED FILE internal/cli/git/git_gogit.go ---
//go:build gogit

package git

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	libgit "github.com/stackvity/salvage/pkg/salvage/git"
)

// BackendName identifies snapshots produced by this build's reader.
const BackendName = "go-git"

// GoGitClient implements libgit.RevisionReader using go-git, without needing
// a git executable.
type GoGitClient struct {
	logger *slog.Logger
}

// NewGoGitClient creates a new GoGitClient.
func NewGoGitClient(loggerHandler slog.Handler) *GoGitClient {
	if loggerHandler == nil {
		loggerHandler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(loggerHandler).With(slog.String("component", "gitClient"), slog.String("backend", BackendName))
	logger.Debug("Using 'go-git' backend for Git operations.")
	return &GoGitClient{logger: logger}
}

// NewDefaultReader returns the reader selected at build time.
func NewDefaultReader(loggerHandler slog.Handler) Reader {
	return NewGoGitClient(loggerHandler)
}

// IsGitAvailable always reports true; go-git is compiled in.
func (c *GoGitClient) IsGitAvailable() bool {
	return true
}

func (c *GoGitClient) openRepo(repoPath string) (*git.Repository, error) {
	absRepoPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, libgit.Errorf("failed to get absolute path for repository '%s': %w", repoPath, err)
	}
	repo, err := git.PlainOpenWithOptions(absRepoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, libgit.Errorf("repository not found at or above path '%s': %w", absRepoPath, err)
		}
		return nil, libgit.Errorf("failed to open repository at '%s': %w", absRepoPath, err)
	}
	return repo, nil
}

// Show resolves revision (hash, abbreviated hash, branch, tag or relative
// expression like HEAD~1) and returns the blob stored at filePath in that
// commit's tree.
func (c *GoGitClient) Show(ctx context.Context, repoPath, revision, filePath string) (libgit.Snapshot, error) {
	spec := libgit.ObjectSpec(revision, filePath)
	logArgs := []any{slog.String("repo", repoPath), slog.String("object", spec)}
	if err := ctx.Err(); err != nil {
		return libgit.Snapshot{}, libgit.Errorf("reading %s: %w", spec, err)
	}

	repo, err := c.openRepo(repoPath)
	if err != nil {
		c.logger.Error("Failed to open repository", append(logArgs, slog.Any("error", err))...)
		return libgit.Snapshot{}, err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		c.logger.Error("Failed to resolve revision", append(logArgs, slog.Any("error", err))...)
		if errors.Is(err, plumbing.ErrReferenceNotFound) || errors.Is(err, plumbing.ErrObjectNotFound) {
			return libgit.Snapshot{}, libgit.Errorf("unknown revision '%s': %w", revision, err)
		}
		return libgit.Snapshot{}, libgit.Errorf("failed to resolve revision '%s': %w", revision, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		c.logger.Error("Failed to load commit", append(logArgs, slog.Any("error", err))...)
		return libgit.Snapshot{}, libgit.Errorf("failed to load commit %s: %w", hash.String(), err)
	}

	treePath := path.Clean(strings.TrimPrefix(filepath.ToSlash(filePath), "./"))
	file, err := commit.File(treePath)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return libgit.Snapshot{}, libgit.Errorf("path '%s' does not exist in '%s': %w", filePath, revision, err)
		}
		return libgit.Snapshot{}, libgit.Errorf("failed to look up '%s' in '%s': %w", filePath, revision, err)
	}

	reader, err := file.Reader()
	if err != nil {
		return libgit.Snapshot{}, libgit.Errorf("failed to open blob %s: %w", spec, err)
	}
	defer reader.Close()
	content, err := io.ReadAll(reader)
	if err != nil {
		return libgit.Snapshot{}, libgit.Errorf("failed to read blob %s: %w", spec, err)
	}
	if err := ctx.Err(); err != nil {
		return libgit.Snapshot{}, libgit.Errorf("reading %s: %w", spec, err)
	}

	c.logger.Debug("Blob read", append(logArgs, slog.String("commit", hash.String()), slog.Int("bytes", len(content)))...)
	return libgit.Snapshot{
		Repository: repoPath,
		Revision:   revision,
		Path:       filePath,
		Content:    content,
		Backend:    BackendName,
	}, nil
}

var _ libgit.RevisionReader = (*GoGitClient)(nil)

// --- END OF FINAL REVISED FILE internal/cli/git/git_gogit.go ---
