// --- START OF FINAL REVISED FILE internal/cli/hooks/hooks.go ---
package hooks

import (
	"context"
	"log/slog"

	"github.com/stackvity/salvage/pkg/salvage"
	"github.com/stackvity/salvage/pkg/salvage/encoding"
	"github.com/stackvity/salvage/pkg/salvage/extract"
	"github.com/stackvity/salvage/pkg/salvage/git"
)

// CLIHooks implements salvage.Hooks by turning library events into log
// records. Routine events are logged at debug level so they only show with
// --verbose; rejected candidates are logged at info level in verbose mode.
type CLIHooks struct {
	logger         *slog.Logger
	verboseEnabled bool
}

// NewCLIHooks creates a new CLIHooks instance.
func NewCLIHooks(logger *slog.Logger, verboseEnabled bool) salvage.Hooks {
	return &CLIHooks{
		logger:         logger.With(slog.String("component", "hooks")),
		verboseEnabled: verboseEnabled,
	}
}

// OnDecodeAttempt logs the outcome of one candidate encoding.
func (h *CLIHooks) OnDecodeAttempt(attempt encoding.Attempt) {
	if attempt.Err == nil {
		h.logger.Debug("Candidate accepted", slog.String("encoding", attempt.Name))
		return
	}
	level := slog.LevelDebug
	if h.verboseEnabled {
		level = slog.LevelInfo
	}
	h.logger.Log(context.Background(), level, "Candidate rejected",
		slog.String("encoding", attempt.Name),
		slog.String("reason", attempt.Err.Error()))
}

// OnSnapshot logs where the revision content came from.
func (h *CLIHooks) OnSnapshot(snapshot git.Snapshot, cached bool) {
	h.logger.Debug("Snapshot obtained",
		slog.String("object", snapshot.Object()),
		slog.String("backend", snapshot.Backend),
		slog.Bool("cached", cached),
		slog.Int("bytes", len(snapshot.Content)))
}

// OnPatternResult logs the size of one match set.
func (h *CLIHooks) OnPatternResult(result extract.Result) {
	h.logger.Debug("Pattern matched",
		slog.String("pattern", result.Pattern.Name),
		slog.Int("unique", result.Matches.Len()))
}

// --- END OF FINAL REVISED FILE internal/cli/hooks/hooks.go ---
