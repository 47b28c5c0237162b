//go:build !linux && !freebsd && !darwin && !windows

package fsync

import "os"

// fdatasync falls back to os.File.Sync on platforms without a dedicated
// x/sys call.
func fdatasync(f *os.File, _ bool) error {
	return f.Sync()
}

func syncDir(string) error {
	return nil
}
