// --- START OF FINAL REVISED FILE pkg/salvage/search_test.go ---
package salvage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stackvity/salvage/internal/testutil"
	"github.com/stackvity/salvage/pkg/salvage"
	"github.com/stackvity/salvage/pkg/salvage/extract"
	"github.com/stackvity/salvage/pkg/salvage/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const appSource = `import { getAmazonLink } from './links';
const a = getAmazonLink('B0ABCDEF12');
const b = getAmazonLink('B0ABCDEF12');
const c = "B0ABCDE";
`

func searchOptions(reader git.RevisionReader) salvage.SearchOptions {
	return salvage.SearchOptions{
		RepoPath: salvage.DefaultRepoPath,
		Revision: salvage.DefaultRevision,
		FilePath: salvage.DefaultFilePath,
		Timeout:  time.Minute,
		Logger:   discardHandler(),
		Reader:   reader,
	}
}

func snapshotOf(content string) git.Snapshot {
	return git.Snapshot{
		Repository: salvage.DefaultRepoPath,
		Revision:   salvage.DefaultRevision,
		Path:       salvage.DefaultFilePath,
		Content:    []byte(content),
		Backend:    "mock",
	}
}

func TestSearch_DefaultPatterns(t *testing.T) {
	reader := new(testutil.MockRevisionReader)
	reader.On("Show", mock.Anything, ".", "0a8d02a", "src/App.tsx").Return(snapshotOf(appSource), nil)

	report, err := salvage.Search(context.Background(), searchOptions(reader))

	require.NoError(t, err)
	assert.Equal(t, "0a8d02a:src/App.tsx", report.Object())
	assert.Equal(t, "mock", report.Backend)
	assert.False(t, report.FromCache)
	assert.Equal(t, string(extract.LossyDrop), report.LossyMode)
	require.Len(t, report.Results, 2)
	assert.Equal(t, salvage.PatternMatches{Name: "asin", Label: "ASINs", Matches: []string{"B0ABCDEF12"}}, report.Results[0])
	assert.Equal(t, []string{"getAmazonLink('B0ABCDEF12')"}, report.Results[1].Matches)
	reader.AssertExpectations(t)
}

func TestSearch_InvalidBytesAreDropped(t *testing.T) {
	reader := new(testutil.MockRevisionReader)
	reader.On("Show", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(snapshotOf("B0ABC\xffDEF12 B0ZZZZZZZZ"), nil)

	report, err := salvage.Search(context.Background(), searchOptions(reader))

	require.NoError(t, err)
	assert.Equal(t, []string{"B0ABCDEF12", "B0ZZZZZZZZ"}, report.Results[0].Matches)
}

func TestSearch_ReplaceModeBreaksMatch(t *testing.T) {
	reader := new(testutil.MockRevisionReader)
	reader.On("Show", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(snapshotOf("B0ABC\xffDEF12"), nil)
	opts := searchOptions(reader)
	opts.Invalid = extract.LossyReplace

	report, err := salvage.Search(context.Background(), opts)

	require.NoError(t, err)
	assert.Empty(t, report.Results[0].Matches)
	assert.Equal(t, "replace", report.LossyMode)
}

func TestSearch_GitFailure(t *testing.T) {
	reader := new(testutil.MockRevisionReader)
	reader.On("Show", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(git.Snapshot{}, errors.New("exit status 128"))

	report, err := salvage.Search(context.Background(), searchOptions(reader))

	require.Error(t, err)
	assert.ErrorIs(t, err, salvage.ErrGitOperation, "foreign reader errors are wrapped")
	assert.Empty(t, report.Results)
	assert.Equal(t, salvage.ExitFailure, salvage.ExitCodeFor(err))
}

func TestSearch_TimeoutReachesReader(t *testing.T) {
	reader := new(testutil.MockRevisionReader)
	reader.On("Show", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), mock.Anything, mock.Anything, mock.Anything).Return(snapshotOf(""), nil)

	_, err := salvage.Search(context.Background(), searchOptions(reader))

	require.NoError(t, err)
	reader.AssertExpectations(t)
}

func TestSearch_CustomPatterns(t *testing.T) {
	reader := new(testutil.MockRevisionReader)
	reader.On("Show", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(snapshotOf("TODO(alice) TODO(bob) TODO(alice)"), nil)
	opts := searchOptions(reader)
	opts.Patterns = []extract.Spec{{Name: "todo", Label: "TODOs", Expr: `TODO\([a-z]+\)`}}

	report, err := salvage.Search(context.Background(), opts)

	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "TODOs", report.Results[0].Label)
	assert.Equal(t, []string{"TODO(alice)", "TODO(bob)"}, report.Results[0].Matches)
}

func TestSearch_BadPatternRejectedBeforeFetch(t *testing.T) {
	reader := new(testutil.MockRevisionReader)
	opts := searchOptions(reader)
	opts.Patterns = []extract.Spec{{Name: "broken", Expr: "("}}

	_, err := salvage.Search(context.Background(), opts)

	assert.ErrorIs(t, err, salvage.ErrConfigValidation)
	assert.ErrorIs(t, err, salvage.ErrPatternCompile)
	reader.AssertNotCalled(t, "Show", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSearch_CacheServesCommitHashes(t *testing.T) {
	cacheFile := filepath.Join(t.TempDir(), "snapshots.gob")
	reader := new(testutil.MockRevisionReader)
	reader.On("Show", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(snapshotOf(appSource), nil).Once()

	opts := searchOptions(reader)
	opts.CacheFile = cacheFile

	first, err := salvage.Search(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.FileExists(t, cacheFile)

	second, err := salvage.Search(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, "cache", second.Backend)
	assert.Equal(t, first.Results, second.Results)
	reader.AssertNumberOfCalls(t, "Show", 1)
}

func TestSearch_BranchRevisionsAreNotCached(t *testing.T) {
	store := new(testutil.MockStore)
	reader := new(testutil.MockRevisionReader)
	reader.On("Show", mock.Anything, ".", "main", "src/App.tsx").Return(snapshotOf(appSource), nil).Twice()

	opts := searchOptions(reader)
	opts.Revision = "main"
	opts.CacheFile = filepath.Join(t.TempDir(), "snapshots.gob")
	opts.Cache = store

	for i := 0; i < 2; i++ {
		report, err := salvage.Search(context.Background(), opts)
		require.NoError(t, err)
		assert.False(t, report.FromCache)
	}
	store.AssertNotCalled(t, "Get", mock.Anything)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	reader.AssertExpectations(t)
}

func TestSearch_CacheLoadErrorSkipsPersist(t *testing.T) {
	store := new(testutil.MockStore)
	store.On("Load", mock.Anything).Return(salvage.ErrCacheLoad)
	reader := new(testutil.MockRevisionReader)
	reader.On("Show", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(snapshotOf(appSource), nil)

	opts := searchOptions(reader)
	opts.CacheFile = "unused"
	opts.Cache = store

	report, err := salvage.Search(context.Background(), opts)

	require.NoError(t, err)
	assert.False(t, report.FromCache)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Persist", mock.Anything)
}

func TestSearch_CacheLoadErrorKeepsUnreadableFile(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for this user")
	}
	cacheFile := filepath.Join(t.TempDir(), "snapshots.gob")
	require.NoError(t, os.WriteFile(cacheFile, []byte("locked"), 0o000))
	reader := new(testutil.MockRevisionReader)
	reader.On("Show", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(snapshotOf(appSource), nil)

	opts := searchOptions(reader)
	opts.CacheFile = cacheFile
	_, err := salvage.Search(context.Background(), opts)
	require.NoError(t, err)

	require.NoError(t, os.Chmod(cacheFile, 0o600))
	data, err := os.ReadFile(cacheFile)
	require.NoError(t, err)
	assert.Equal(t, "locked", string(data), "a cache file that failed to load must not be replaced")
}

func TestSearch_CachePersistErrorDoesNotFailRun(t *testing.T) {
	store := new(testutil.MockStore)
	store.On("Load", mock.Anything).Return(nil)
	store.On("Get", mock.Anything).Return(nil, false)
	store.On("Put", mock.Anything, mock.Anything).Return()
	store.On("Persist", mock.Anything).Return(salvage.ErrCachePersist)
	reader := new(testutil.MockRevisionReader)
	reader.On("Show", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(snapshotOf(appSource), nil)

	opts := searchOptions(reader)
	opts.CacheFile = "unused"
	opts.Cache = store

	_, err := salvage.Search(context.Background(), opts)

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestSearch_Hooks(t *testing.T) {
	snap := snapshotOf(appSource)
	reader := new(testutil.MockRevisionReader)
	reader.On("Show", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(snap, nil)
	hooks := new(testutil.MockHooks)
	hooks.On("OnSnapshot", snap, false).Once()
	hooks.On("OnPatternResult", mock.AnythingOfType("extract.Result")).Twice()

	opts := searchOptions(reader)
	opts.Hooks = hooks
	_, err := salvage.Search(context.Background(), opts)

	require.NoError(t, err)
	hooks.AssertExpectations(t)
}

// --- END OF FINAL REVISED FILE pkg/salvage/search_test.go ---
