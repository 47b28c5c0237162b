//go:build darwin

package fsync

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync performs file descriptor sync.
//
// If full is true, F_FULLFSYNC is used so data reaches the physical disk,
// not just the drive cache. macOS has no fdatasync, so fsync otherwise.
func fdatasync(f *os.File, full bool) error {
	fd := f.Fd()
	if full {
		_, err := unix.FcntlInt(fd, unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(int(fd))
}

func syncDir(path string) error {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return err
	}
	defer unix.Close(fd)
	return unix.Fsync(fd)
}
