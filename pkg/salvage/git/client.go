// --- START OF FINAL REVISED FILE pkg/salvage/git/client.go ---
package git

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// --- Error Variables ---

// ErrGitOperation indicates a failure while fetching a historical file revision.
// This might be due to the path not being a repository, an unknown revision, a
// path missing from that revision, or the git executable not being available.
// Implementations should wrap specific underlying errors with this variable
// (using Errorf) so callers can check errors.Is(err, ErrGitOperation).
var ErrGitOperation = errors.New("git operation failed")

// commitHashPattern matches abbreviated or full object names.
var commitHashPattern = regexp.MustCompile(`^[0-9a-fA-F]{7,40}$`)

// --- Types ---

// Snapshot is the content of one file as it existed at one revision.
type Snapshot struct {
	Repository string
	Revision   string
	Path       string
	// Content is the raw captured output. For the exec backend this is the
	// combined stdout/stderr stream of `git show`.
	Content []byte
	// Backend names the implementation that produced the snapshot ("exec", "go-git", "cache").
	Backend string
}

// Object returns the `<revision>:<path>` object expression for the snapshot.
func (s Snapshot) Object() string {
	return ObjectSpec(s.Revision, s.Path)
}

// --- Interfaces ---

// RevisionReader retrieves the content of a file at a historical revision.
// Implementations might use the native `git` command via `os/exec` or a
// library like `go-git`.
//
// Stability: Public API - Implementations can be provided externally.
// Failures (not a repository, unknown revision, missing path, missing tool)
// MUST be returned as errors wrapping ErrGitOperation, never as panics.
type RevisionReader interface {
	Show(ctx context.Context, repoPath, revision, filePath string) (Snapshot, error)
}

// Errorf returns a formatted error that wraps ErrGitOperation.
// Helper intended for use by RevisionReader implementations.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrGitOperation}, args...)...)
}

// ObjectSpec builds the `<revision>:<path>` expression understood by `git show`.
func ObjectSpec(revision, filePath string) string {
	return revision + ":" + filePath
}

// IsCommitHash reports whether revision looks like an (abbreviated) object name
// rather than a movable reference such as a branch or tag.
func IsCommitHash(revision string) bool {
	return commitHashPattern.MatchString(revision)
}

// --- END OF FINAL REVISED FILE pkg/salvage/git/client.go ---
