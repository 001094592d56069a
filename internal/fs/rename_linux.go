//go:build linux

package fs

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// rename uses renameat2(RENAME_NOREPLACE) so the existence check and the
// move happen atomically in the kernel.
func rename(src, dst string) error {
	err := unix.Renameat2(unix.AT_FDCWD, src, unix.AT_FDCWD, dst, unix.RENAME_NOREPLACE)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.EINVAL), errors.Is(err, unix.ENOSYS):
		// Filesystem or kernel without RENAME_NOREPLACE support.
		return renameChecked(src, dst)
	}
	return &os.LinkError{Op: "move", Old: src, New: dst, Err: err}
}
