package fs

import (
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/justyntemme/docbrowser/internal/debug"
)

// copyFile copies a regular file. The destination is created exclusively so
// an existing dst surfaces as fs.ErrExist without a check-then-act window.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		os.Remove(dst)
		return err
	}
	return dstFile.Close()
}

type copyItem struct {
	srcPath string
	dstPath string
	mode    iofs.FileMode
}

// copyDir copies a directory tree. The destination root is created with
// Mkdir first, which is where a conflict is reported.
func copyDir(src, dst string, mode iofs.FileMode) error {
	if err := os.Mkdir(dst, mode.Perm()); err != nil {
		return err
	}

	var items []copyItem
	var itemsMu sync.Mutex

	// Symlinks are recreated, not followed, so link cycles cannot recurse.
	conf := &fastwalk.Config{Follow: false}
	err := fastwalk.Walk(conf, src, func(fullPath string, d iofs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if fullPath == src {
			return nil
		}

		rel, err := filepath.Rel(src, fullPath)
		if err != nil {
			return err
		}

		entryMode := iofs.ModeSymlink
		if d.Type()&iofs.ModeSymlink == 0 {
			info, err := fastwalk.StatDirEntry(fullPath, d)
			if err != nil {
				return err
			}
			entryMode = info.Mode()
		}

		debug.Log(debug.FS_WALK, "copyDir: %s", rel)
		itemsMu.Lock()
		items = append(items, copyItem{srcPath: fullPath, dstPath: filepath.Join(dst, rel), mode: entryMode})
		itemsMu.Unlock()
		return nil
	})
	if err != nil {
		os.RemoveAll(dst)
		return err
	}

	// Directories first, parents before children, then everything else.
	sort.Slice(items, func(i, j int) bool {
		di, dj := items[i].mode.IsDir(), items[j].mode.IsDir()
		if di != dj {
			return di
		}
		return len(items[i].dstPath) < len(items[j].dstPath)
	})

	for _, item := range items {
		if err := copyItemTo(item); err != nil {
			os.RemoveAll(dst)
			return err
		}
	}
	return nil
}

func copyItemTo(item copyItem) error {
	switch {
	case item.mode.IsDir():
		return os.MkdirAll(item.dstPath, item.mode.Perm())
	case item.mode&iofs.ModeSymlink != 0:
		target, err := os.Readlink(item.srcPath)
		if err != nil {
			return err
		}
		return os.Symlink(target, item.dstPath)
	case item.mode.IsRegular():
		return copyFile(item.srcPath, item.dstPath)
	default:
		// Devices, sockets and pipes are not copied.
		return nil
	}
}
