// --- START OF FINAL REVISED FILE internal/testutil/helpers.go ---
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateDummyFile writes content to path, creating parent directories.
func CreateDummyFile(t *testing.T, path string, content []byte) {
	t.Helper()
	fullPath := filepath.Clean(path)
	dir := filepath.Dir(fullPath)
	require.NoError(t, os.MkdirAll(dir, 0o755), "Failed to create directory %s for dummy file", dir)
	require.NoError(t, os.WriteFile(fullPath, content, 0o644), "Failed to write dummy file %s", fullPath)
}

// RequireGit skips the test when no git executable is on PATH.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not found in PATH")
	}
}

// RunGit runs git in dir with a fixed identity and returns trimmed stdout.
func RunGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=Test", "GIT_COMMITTER_EMAIL=test@example.com",
		"GIT_CONFIG_NOSYSTEM=1", "HOME="+dir,
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s failed: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

// InitGitRepo creates a repository in a temp directory, commits files (path
// relative to the repository root -> content) and returns the repository
// path and the full hash of the commit.
func InitGitRepo(t *testing.T, files map[string][]byte) (string, string) {
	t.Helper()
	RequireGit(t)
	dir := t.TempDir()
	RunGit(t, dir, "init", "-q")
	return dir, CommitFiles(t, dir, files, "initial")
}

// CommitFiles writes files into repo, commits them and returns the new hash.
func CommitFiles(t *testing.T, repo string, files map[string][]byte, message string) string {
	t.Helper()
	for rel, content := range files {
		CreateDummyFile(t, filepath.Join(repo, filepath.FromSlash(rel)), content)
	}
	RunGit(t, repo, "add", "-A")
	RunGit(t, repo, "commit", "-q", "--no-gpg-sign", "-m", message)
	return RunGit(t, repo, "rev-parse", "HEAD")
}

// --- END OF FINAL REVISED FILE internal/testutil/helpers.go ---
