// --- START OF FINAL REVISED FILE pkg/salvage/hooks.go ---
package salvage

import (
	"github.com/stackvity/salvage/pkg/salvage/encoding"
	"github.com/stackvity/salvage/pkg/salvage/extract"
	"github.com/stackvity/salvage/pkg/salvage/git"
)

// Hooks receives progress events from Recover and Search. Hook methods run
// synchronously on the calling goroutine and must not block for long.
type Hooks interface {
	// OnDecodeAttempt is called once per candidate tried, in order.
	OnDecodeAttempt(attempt encoding.Attempt)
	// OnSnapshot is called after a revision was obtained; cached is true when
	// the content came from the snapshot cache instead of the reader.
	OnSnapshot(snapshot git.Snapshot, cached bool)
	// OnPatternResult is called once per pattern, in pattern order.
	OnPatternResult(result extract.Result)
}

// NoOpHooks ignores every event.
type NoOpHooks struct{}

func (NoOpHooks) OnDecodeAttempt(encoding.Attempt) {}
func (NoOpHooks) OnSnapshot(git.Snapshot, bool) {}
func (NoOpHooks) OnPatternResult(extract.Result) {}

var _ Hooks = NoOpHooks{}

// --- END OF FINAL REVISED FILE pkg/salvage/hooks.go ---
