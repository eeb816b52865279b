//go:build !linux && !freebsd && !darwin && !windows

package sink

import "os"

func fdatasync(f *os.File) error {
	return f.Sync()
}
