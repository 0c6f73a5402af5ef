// --- START OF FINAL REVISED FILE internal/cli/git/git_exec.go ---
//go:build !gogit

package git

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	libgit "github.com/stackvity/salvage/pkg/salvage/git"
)

// BackendName identifies snapshots produced by this build's reader.
const BackendName = "exec"

// ExecGitClient implements libgit.RevisionReader by running the git binary.
type ExecGitClient struct {
	logger *slog.Logger
}

// NewExecGitClient creates a new ExecGitClient.
func NewExecGitClient(loggerHandler slog.Handler) *ExecGitClient {
	if loggerHandler == nil {
		loggerHandler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(loggerHandler).With(slog.String("component", "gitClient"), slog.String("backend", BackendName))
	logger.Debug("Using 'exec' backend for Git operations.")
	return &ExecGitClient{logger: logger}
}

// NewDefaultReader returns the reader selected at build time.
func NewDefaultReader(loggerHandler slog.Handler) Reader {
	return NewExecGitClient(loggerHandler)
}

// IsGitAvailable checks if the git command is available in the system's PATH.
func (c *ExecGitClient) IsGitAvailable() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Show runs `git show <revision>:<path>` inside repoPath. Standard output and
// standard error are captured into one buffer, in the order git wrote them,
// and returned unmodified on success.
func (c *ExecGitClient) Show(ctx context.Context, repoPath, revision, filePath string) (libgit.Snapshot, error) {
	spec := libgit.ObjectSpec(revision, filePath)
	logArgs := []any{slog.String("repo", repoPath), slog.String("object", spec)}

	info, err := os.Stat(repoPath)
	if err != nil {
		if os.IsNotExist(err) {
			return libgit.Snapshot{}, libgit.Errorf("repository path does not exist: %s", repoPath)
		}
		return libgit.Snapshot{}, libgit.Errorf("failed to access repository path %s: %w", repoPath, err)
	}
	if !info.IsDir() {
		return libgit.Snapshot{}, libgit.Errorf("repository path is not a directory: %s", repoPath)
	}

	cmd := exec.CommandContext(ctx, "git", "show", spec)
	cmd.Dir = repoPath
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	c.logger.Debug("Running git show", logArgs...)
	if runErr := cmd.Run(); runErr != nil {
		output := strings.TrimSpace(combined.String())
		if errors.Is(runErr, exec.ErrNotFound) {
			c.logger.Error("git executable not found", append(logArgs, slog.Any("error", runErr))...)
			return libgit.Snapshot{}, libgit.Errorf("git executable not found: %w", runErr)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.logger.Error("git show cancelled or timed out", append(logArgs, slog.Any("error", ctxErr))...)
			return libgit.Snapshot{}, libgit.Errorf("git show %s in %s: %w", spec, repoPath, ctxErr)
		}
		c.logger.Error("git show failed", append(logArgs, slog.Any("error", runErr), slog.String("output", output))...)
		if output != "" {
			return libgit.Snapshot{}, libgit.Errorf("git show %s failed: %w: %s", spec, runErr, output)
		}
		return libgit.Snapshot{}, libgit.Errorf("git show %s failed: %w", spec, runErr)
	}

	c.logger.Debug("git show finished", append(logArgs, slog.Int("bytes", combined.Len()))...)
	return libgit.Snapshot{
		Repository: repoPath,
		Revision:   revision,
		Path:       filePath,
		Content:    combined.Bytes(),
		Backend:    BackendName,
	}, nil
}

var _ libgit.RevisionReader = (*ExecGitClient)(nil)

// --- END OF FINAL REVISED FILE internal/cli/git/git_exec.go ---
