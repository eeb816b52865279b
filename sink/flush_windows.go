//go:build windows

package sink

import (
	"os"

	"golang.org/x/sys/windows"
)

// fdatasync pushes the file's data to stable storage using FlushFileBuffers.
func fdatasync(f *os.File) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}
