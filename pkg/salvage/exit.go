// --- START OF FINAL REVISED FILE pkg/salvage/exit.go ---
package salvage

import (
	"errors"
	"fmt"
)

// ExitError carries a process exit status alongside the error that caused it.
// Reported is set once the error has already been shown to the user, so the
// process boundary does not print it twice.
type ExitError struct {
	Code     int
	Err      error
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeFor maps err to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, ErrNoCandidateMatched) {
		return ExitNoCandidate
	}
	return ExitFailure
}

// --- END OF FINAL REVISED FILE pkg/salvage/exit.go ---
