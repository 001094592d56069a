// Package fs is the filesystem boundary of the document browser: every list,
// stat, copy, move, mkdir and remove goes through a Manager so the document
// store and the search walker can run against the real disk or memory.
package fs

import (
	"errors"
	iofs "io/fs"
	"strings"
	"time"
)

// Common file permission modes
const (
	DirPermission  = 0o755 // Standard directory permissions
	FilePermission = 0o644 // Standard file permissions
)

// Info is the attribute set fetched for every listed entry.
// A zero Created or Modified means the platform could not report it.
type Info struct {
	Name     string
	Path     string
	Size     int64
	Created  time.Time
	Modified time.Time
	IsDir    bool
}

// Manager describes the filesystem operations the document store relies on.
//
// Copy, Move and Mkdir report a conflicting destination with an error that
// matches fs.ErrExist; callers use IsExist to tell it apart from generic I/O
// failures.
type Manager interface {
	// List returns the full paths of the visible entries of dir.
	// Hidden entries (leading '.') are never returned.
	List(dir string) ([]string, error)
	// Stat returns the attributes of path, following symlinks.
	Stat(path string) (Info, error)
	// Remove deletes path, recursively for directories.
	Remove(path string) error
	// Mkdir creates a single directory.
	Mkdir(path string) error
	// Copy copies src to dst, recursively for directories.
	Copy(src, dst string) error
	// Move renames src to dst without replacing an existing dst.
	Move(src, dst string) error
	// Exists reports whether anything is present at path.
	Exists(path string) bool
}

// IsExist reports whether err is an "already exists" conflict.
func IsExist(err error) bool {
	return errors.Is(err, iofs.ErrExist)
}

// IsNotExist reports whether err means the path is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, iofs.ErrNotExist)
}

// isHidden reports whether a directory entry name is suppressed from listings.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func existError(op, path string) error {
	return &iofs.PathError{Op: op, Path: path, Err: iofs.ErrExist}
}
