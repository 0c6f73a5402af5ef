// --- START OF FINAL REVISED FILE pkg/salvage/errors.go ---
package salvage

import (
	"errors"

	"github.com/stackvity/salvage/pkg/salvage/cache"
	"github.com/stackvity/salvage/pkg/salvage/encoding"
	"github.com/stackvity/salvage/pkg/salvage/extract"
	"github.com/stackvity/salvage/pkg/salvage/git"
)

// --- Exported Error Variables ---
// Errors returned by Recover and Search wrap one of these. Callers check them
// with errors.Is; the sentinels owned by subpackages are re-exported here so a
// single import is enough.

var (
	// ErrReadFailed indicates the input file could not be read (missing,
	// permission denied, or a directory).
	ErrReadFailed = errors.New("failed to read input file")

	// ErrWriteFailed indicates the recovered text could not be written to the
	// output path. The output file is left untouched when this happens.
	ErrWriteFailed = errors.New("failed to write output file")

	// ErrConfigValidation indicates the options failed validation before any
	// work started: empty paths, unknown formats or modes, unknown encoding
	// names, or patterns that do not compile.
	ErrConfigValidation = errors.New("invalid configuration options provided")

	// ErrNoCandidateMatched is returned by Recover when every candidate
	// encoding rejected the input.
	ErrNoCandidateMatched = encoding.ErrNoCandidateMatched

	// ErrUnknownEncoding wraps a candidate name that resolves to no encoding.
	ErrUnknownEncoding = encoding.ErrUnknownEncoding

	// ErrPatternCompile wraps an invalid pattern definition.
	ErrPatternCompile = extract.ErrPatternCompile

	// ErrGitOperation wraps any failure fetching a file revision.
	ErrGitOperation = git.ErrGitOperation

	ErrCacheLoad    = cache.ErrCacheLoad
	ErrCachePersist = cache.ErrCachePersist
)

// --- END OF FINAL REVISED FILE pkg/salvage/errors.go ---
