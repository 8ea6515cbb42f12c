//go:build windows

package proc

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// Alive reports whether a process with the given PID exists, using a
// query-limited handle so no special privileges are required.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return false
	}
	_ = windows.CloseHandle(handle)
	return true
}

// Terminate stops the process. Windows has no SIGTERM delivery for
// unrelated processes, so this kill is not graceful; workers there
// rely on the lease reaper to recover any in-flight job.
func Terminate(pid int) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}
	err = process.Kill()
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
