package git

import libgit "github.com/stackvity/salvage/pkg/salvage/git"

// Reader is a RevisionReader that can report whether its backend is usable
// before any revision is requested.
type Reader interface {
	libgit.RevisionReader
	IsGitAvailable() bool
}
