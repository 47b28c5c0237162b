//go:build windows

package fsync

import (
	"os"

	"golang.org/x/sys/windows"
)

// fdatasync performs file descriptor sync using FlushFileBuffers, which
// writes data and metadata. The full parameter is ignored.
func fdatasync(f *os.File, _ bool) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}

// syncDir is a no-op: Windows has no handle-level directory sync and
// MoveFileEx replaces the file atomically.
func syncDir(string) error {
	return nil
}
