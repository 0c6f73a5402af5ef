// --- START OF FINAL REVISED FILE pkg/salvage/constants.go ---
package salvage

import (
	"time"

	"github.com/stackvity/salvage/pkg/salvage/encoding"
	"github.com/stackvity/salvage/pkg/salvage/extract"
)

// Default values used when setting up configuration defaults.
const (
	// DefaultInputPath is the damaged file fix-encoding reads.
	DefaultInputPath = "old_App.tsx"
	// DefaultOutputPath is where fix-encoding writes the recovered text.
	DefaultOutputPath = "old_App_fixed.tsx"
	// DefaultRepoPath is the repository search-git reads from.
	DefaultRepoPath = "."
	// DefaultRevision is the historical revision search-git inspects.
	DefaultRevision = "0a8d02a"
	// DefaultFilePath is the repository-relative file search-git inspects.
	DefaultFilePath = "src/App.tsx"
	// DefaultLossyMode drops invalid UTF-8 from fetched content.
	DefaultLossyMode = extract.LossyDrop
	// DefaultGitTimeout bounds a single revision fetch.
	DefaultGitTimeout = 60 * time.Second
	// DefaultOutputFormat prints status lines only.
	DefaultOutputFormat = OutputFormatText
	DefaultDryRun       = false
	DefaultVerbose      = false
	// DefaultOutputPerm is the permission of the recovered file.
	DefaultOutputPerm = 0o644
)

// ReportSchemaVersion is stamped into structured reports.
const ReportSchemaVersion = "1.0"

// DefaultCandidates is the encoding trial order.
var DefaultCandidates = encoding.DefaultCandidates

// Process exit codes.
const (
	ExitSuccess = 0
	// ExitFailure covers every caught failure in both tools.
	ExitFailure = 1
	// ExitNoCandidate is returned when no encoding could decode the input.
	ExitNoCandidate = 1
	// ExitUsage is returned for flag parsing and usage errors.
	ExitUsage = 2
)

// --- END OF FINAL REVISED FILE pkg/salvage/constants.go ---
