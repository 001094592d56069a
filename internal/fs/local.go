package fs

import (
	"os"
	"path/filepath"

	"github.com/justyntemme/docbrowser/internal/debug"
	"github.com/justyntemme/docbrowser/internal/trash"
)

// Local implements Manager on top of the operating system.
type Local struct {
	bin *trash.Bin
}

// NewLocal returns a Manager for the real filesystem. When bin is non-nil,
// Remove moves items into the bin instead of deleting them.
func NewLocal(bin *trash.Bin) *Local {
	return &Local{bin: bin}
}

// List returns the visible children of dir in name order.
func (l *Local) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if isHidden(e.Name()) {
			continue
		}
		debug.Log(debug.FS_ENTRY, "list %s: %s", dir, e.Name())
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	debug.Log(debug.FS, "list %s: %d entries", dir, len(paths))
	return paths, nil
}

// Stat reads name, size, timestamps and kind of path.
func (l *Local) Stat(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Name:     fi.Name(),
		Path:     path,
		Size:     fi.Size(),
		Created:  creationTime(path, fi),
		Modified: fi.ModTime(),
		IsDir:    fi.IsDir(),
	}, nil
}

// Remove deletes path or, with a trash bin configured, moves it to the bin.
func (l *Local) Remove(path string) error {
	if l.bin != nil {
		item, err := l.bin.MoveToTrash(path)
		if err != nil {
			return err
		}
		debug.Log(debug.FS, "remove %s: trashed as %s", path, item.TrashPath)
		return nil
	}
	return deleteItem(path)
}

// Mkdir creates a single directory. The parent must exist.
func (l *Local) Mkdir(path string) error {
	debug.Log(debug.FS, "mkdir %s", path)
	return os.Mkdir(path, DirPermission)
}

// Copy duplicates src at dst. dst must not exist.
func (l *Local) Copy(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	debug.Log(debug.FS, "copy %s -> %s (dir=%v)", src, dst, info.IsDir())
	if info.IsDir() {
		return copyDir(src, dst, info.Mode())
	}
	return copyFile(src, dst)
}

// Move renames src to dst, refusing to replace an existing dst.
func (l *Local) Move(src, dst string) error {
	debug.Log(debug.FS, "move %s -> %s", src, dst)
	return rename(src, dst)
}

// Exists reports whether anything, including a dangling symlink, is at path.
func (l *Local) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// deleteItem removes a file or directory (recursively for directories).
func deleteItem(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// renameChecked is the portable no-replace rename: it refuses when dst is
// taken by a different file, which still allows case-only renames on
// case-insensitive volumes.
func renameChecked(src, dst string) error {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return &os.LinkError{Op: "move", Old: src, New: dst, Err: err}
	}
	if dstInfo, err := os.Lstat(dst); err == nil && !(src != dst && os.SameFile(srcInfo, dstInfo)) {
		return existError("move", dst)
	}
	return os.Rename(src, dst)
}
