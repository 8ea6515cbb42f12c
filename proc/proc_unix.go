//go:build !windows

package proc

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Alive reports whether a process with the given PID exists.
//
// Signal 0 performs the existence check without delivering anything;
// EPERM means the process exists but belongs to another user.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, unix.EPERM)
}

// Terminate asks the process to shut down gracefully via SIGTERM.
//
// A process that is already gone is not an error.
func Terminate(pid int) error {
	err := unix.Kill(pid, unix.SIGTERM)
	if err == nil || errors.Is(err, unix.ESRCH) {
		return nil
	}
	return err
}
