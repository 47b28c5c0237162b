// Package fsync flushes written files to stable storage before they are
// renamed into place.
package fsync

import (
	"fmt"
	"os"
)

// Mode controls how hard File pushes data to disk.
type Mode int

const (
	// Data flushes file contents (fdatasync where available).
	Data Mode = iota

	// Full also asks the drive to empty its write cache (F_FULLFSYNC on
	// macOS). Same as Data elsewhere.
	Full
)

// File flushes f's data to disk.
func File(f *os.File, mode Mode) error {
	if err := fdatasync(f, mode == Full); err != nil {
		return fmt.Errorf("fsync %s: %w", f.Name(), err)
	}
	return nil
}

// Dir flushes a directory entry so a rename inside it survives a crash.
// Platforms that cannot sync directories return nil.
func Dir(path string) error {
	return syncDir(path)
}
