// --- START OF FINAL REVISED FILE internal/cli/git/git_exec_test.go ---
//go:build !gogit

package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stackvity/salvage/internal/testutil"
	libgit "github.com/stackvity/salvage/pkg/salvage/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecGitClient_Show(t *testing.T) {
	content := []byte("const a = getAmazonLink('B0ABCDEF12');\n\xff trailing\n")
	repo, hash := testutil.InitGitRepo(t, map[string][]byte{"src/App.tsx": content})
	client := NewExecGitClient(nil)
	require.True(t, client.IsGitAvailable())

	for _, rev := range []string{hash, hash[:7], "HEAD"} {
		snap, err := client.Show(context.Background(), repo, rev, "src/App.tsx")
		require.NoError(t, err, "revision %s", rev)
		assert.Equal(t, content, snap.Content, "content must be returned byte for byte")
		assert.Equal(t, rev, snap.Revision)
		assert.Equal(t, BackendName, snap.Backend)
	}
}

func TestExecGitClient_ShowOlderRevision(t *testing.T) {
	repo, first := testutil.InitGitRepo(t, map[string][]byte{"a.txt": []byte("v1")})
	testutil.CommitFiles(t, repo, map[string][]byte{"a.txt": []byte("v2")}, "second")
	client := NewExecGitClient(nil)

	snap, err := client.Show(context.Background(), repo, first, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(snap.Content))

	snap, err = client.Show(context.Background(), repo, "HEAD~1", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(snap.Content))
}

func TestExecGitClient_Failures(t *testing.T) {
	repo, _ := testutil.InitGitRepo(t, map[string][]byte{"a.txt": []byte("v1")})
	notRepo := t.TempDir()
	file := filepath.Join(notRepo, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	client := NewExecGitClient(nil)

	tests := []struct {
		name, repo, rev, path string
	}{
		{"missing path", repo, "HEAD", "src/App.tsx"},
		{"unknown revision", repo, "0a8d02a", "a.txt"},
		{"not a repository", notRepo, "HEAD", "a.txt"},
		{"repository missing", filepath.Join(notRepo, "nope"), "HEAD", "a.txt"},
		{"repository is a file", file, "HEAD", "a.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Show(context.Background(), tt.repo, tt.rev, tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, libgit.ErrGitOperation)
		})
	}
}

func TestExecGitClient_FailureCarriesGitOutput(t *testing.T) {
	repo, _ := testutil.InitGitRepo(t, map[string][]byte{"a.txt": []byte("v1")})

	_, err := NewExecGitClient(nil).Show(context.Background(), repo, "HEAD", "missing.txt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "git show HEAD:missing.txt failed")
	assert.Contains(t, err.Error(), "missing.txt")
}

func TestExecGitClient_CancelledContext(t *testing.T) {
	repo, _ := testutil.InitGitRepo(t, map[string][]byte{"a.txt": []byte("v1")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExecGitClient(nil).Show(ctx, repo, "HEAD", "a.txt")

	require.Error(t, err)
	assert.ErrorIs(t, err, libgit.ErrGitOperation)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewDefaultReader(t *testing.T) {
	_, ok := NewDefaultReader(nil).(*ExecGitClient)
	assert.True(t, ok)
}

// --- END OF FINAL REVISED FILE internal/cli/git/git_exec_test.go ---
