// Package lock provides a repo-scoped advisory lock that serializes
// mutating arbor commands. The lock is keyed by the repository's common
// git directory, so unrelated repositories never contend.
package lock

import (
	"os"
	"path/filepath"
)

// FileName is the well-known lock file name inside the git common dir.
const FileName = "arbor.lock"

// Handle is a scoped, exclusive claim on a repository's lock file.
// Release is idempotent and safe to defer on every exit path.
type Handle struct {
	path     string
	file     *os.File
	released bool
}

// Path returns the lock file path backing this handle.
func (h *Handle) Path() string {
	return h.path
}

// Acquire takes the repository lock, failing fast with a LOCK_HELD error
// when another process holds it. The caller must Release the returned
// handle when the operation ends.
func Acquire(gitCommonDir string) (*Handle, error) {
	return acquire(filepath.Join(gitCommonDir, FileName))
}

// Release drops the lock. Calling it more than once is a no-op.
func (h *Handle) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	h.release()
}
