//go:build windows

package fs

import (
	"os"
	"syscall"
	"time"
)

func creationTime(_ string, fi os.FileInfo) time.Time {
	data, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}
	}
	return time.Unix(0, data.CreationTime.Nanoseconds())
}
