package salvage_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stackvity/salvage/pkg/salvage"
	"github.com/stretchr/testify/assert"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, salvage.ExitSuccess},
		{"no candidate", fmt.Errorf("%w: tried utf-8", salvage.ErrNoCandidateMatched), salvage.ExitNoCandidate},
		{"read failure", fmt.Errorf("%w: x", salvage.ErrReadFailed), salvage.ExitFailure},
		{"git failure", fmt.Errorf("%w: x", salvage.ErrGitOperation), salvage.ExitFailure},
		{"usage", &salvage.ExitError{Code: salvage.ExitUsage, Err: errors.New("unknown flag")}, salvage.ExitUsage},
		{"wrapped exit error", fmt.Errorf("outer: %w", &salvage.ExitError{Code: 3}), 3},
		{"anything else", errors.New("boom"), salvage.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, salvage.ExitCodeFor(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	inner := errors.New("unknown flag: --bogus")
	err := &salvage.ExitError{Code: salvage.ExitUsage, Err: inner}
	assert.Equal(t, "unknown flag: --bogus", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "exit status 1", (&salvage.ExitError{Code: 1}).Error())
}
