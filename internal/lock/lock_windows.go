//go:build windows

package lock

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/windows"

	"arbor/internal/errors"
)

// acquire implements PID-file locking for platforms without flock(2).
// If the file exists and names a live process the acquisition fails; a
// dead PID means a crashed holder, and the stale file is reclaimed.
func acquire(path string) (*Handle, error) {
	if data, err := os.ReadFile(path); err == nil {
		content := strings.TrimSpace(string(data))
		if content != "" {
			pid, convErr := strconv.Atoi(content)
			if convErr == nil && pid != os.Getpid() && processExists(pid) {
				return nil, errors.LockHeld(path, pid)
			}
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.LockIO(path, err)
	}

	if _, err := f.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		_ = f.Close()
		return nil, errors.LockIO(path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return nil, errors.LockIO(path, err)
	}

	return &Handle{path: path, file: f}, nil
}

func (h *Handle) release() {
	if h.file == nil {
		return
	}
	_ = h.file.Close()
	h.file = nil
	// The PID file holds the claim itself, so it must not outlive us.
	_ = os.Remove(h.path)
}

// processExists reports whether a PID names a live process.
func processExists(pid int) bool {
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return false
	}
	_ = windows.CloseHandle(handle)
	return true
}
