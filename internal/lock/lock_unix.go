//go:build !windows

package lock

import (
	"os"
	"syscall"

	"arbor/internal/errors"
)

// acquire opens or creates the lock file and takes a non-blocking exclusive
// flock(2). The file is left in place after release; the next acquisition
// reuses it.
func acquire(path string) (*Handle, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, errors.LockIO(path, err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		if err == syscall.EWOULDBLOCK {
			return nil, errors.LockHeld(path, 0)
		}
		return nil, errors.LockIO(path, err)
	}

	return &Handle{path: path, file: f}, nil
}

func (h *Handle) release() {
	if h.file == nil {
		return
	}
	_ = syscall.Flock(int(h.file.Fd()), syscall.LOCK_UN)
	_ = h.file.Close()
	h.file = nil
}
