//go:build darwin

package sink

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync pushes the file's data to stable storage.
//
// macOS doesn't have fdatasync; F_FULLFSYNC also flushes the drive cache.
func fdatasync(f *os.File) error {
	_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
	return err
}
