// Package trash implements a recoverable delete: items are moved into a bin
// directory laid out like the freedesktop.org trash (files/ plus info/
// .trashinfo records) and can be listed, restored or purged later.
package trash

import (
	"bufio"
	"errors"
	"fmt"
	iofs "io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/justyntemme/docbrowser/internal/debug"
)

const deletionDateLayout = "2006-01-02T15:04:05"

// Item represents a file or directory in the trash
type Item struct {
	Name         string    // Original filename
	OriginalPath string    // Full path where the file was deleted from
	TrashPath    string    // Current path in trash
	DeletedAt    time.Time // When the file was deleted
	Size         int64     // Size in bytes
	IsDir        bool      // Whether this is a directory
}

// Bin is a trash directory. The zero Dir means DefaultDir().
type Bin struct {
	Dir string
}

// DefaultDir returns $XDG_DATA_HOME/Trash, falling back to
// ~/.local/share/Trash.
func DefaultDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "Trash")
}

func (b *Bin) dir() string {
	if b.Dir == "" {
		return DefaultDir()
	}
	return b.Dir
}

func (b *Bin) filesPath() string { return filepath.Join(b.dir(), "files") }
func (b *Bin) infoPath() string  { return filepath.Join(b.dir(), "info") }

func (b *Bin) infoFile(trashName string) string {
	return filepath.Join(b.infoPath(), trashName+".trashinfo")
}

// MoveToTrash moves a file or directory into the bin and records where it
// came from.
func (b *Bin) MoveToTrash(path string) (Item, error) {
	if err := os.MkdirAll(b.filesPath(), 0o700); err != nil {
		return Item{}, fmt.Errorf("cannot create trash files directory: %w", err)
	}
	if err := os.MkdirAll(b.infoPath(), 0o700); err != nil {
		return Item{}, fmt.Errorf("cannot create trash info directory: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return Item{}, err
	}
	info, err := os.Lstat(absPath)
	if err != nil {
		return Item{}, err
	}

	// Handle conflicts inside the bin by appending numbers
	baseName := filepath.Base(absPath)
	destName := baseName
	destPath := filepath.Join(b.filesPath(), destName)
	for counter := 1; ; counter++ {
		if _, err := os.Lstat(destPath); errors.Is(err, iofs.ErrNotExist) {
			break
		}
		ext := filepath.Ext(baseName)
		name := strings.TrimSuffix(baseName, ext)
		destName = fmt.Sprintf("%s.%d%s", name, counter, ext)
		destPath = filepath.Join(b.filesPath(), destName)
	}

	deletedAt := time.Now()
	infoContent := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		url.PathEscape(absPath), deletedAt.Format(deletionDateLayout))
	if err := os.WriteFile(b.infoFile(destName), []byte(infoContent), 0o600); err != nil {
		return Item{}, fmt.Errorf("cannot create trashinfo file: %w", err)
	}

	if err := os.Rename(absPath, destPath); err != nil {
		os.Remove(b.infoFile(destName))
		return Item{}, fmt.Errorf("cannot move to trash: %w", err)
	}

	debug.Log(debug.TRASH, "trashed %s as %s", absPath, destName)
	return Item{
		Name:         baseName,
		OriginalPath: absPath,
		TrashPath:    destPath,
		DeletedAt:    deletedAt.Truncate(time.Second),
		Size:         info.Size(),
		IsDir:        info.IsDir(),
	}, nil
}

// List returns the items in the bin, most recently deleted first.
func (b *Bin) List() ([]Item, error) {
	entries, err := os.ReadDir(b.filesPath())
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var items []Item
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}

		item := Item{
			Name:      entry.Name(),
			TrashPath: filepath.Join(b.filesPath(), entry.Name()),
			DeletedAt: info.ModTime(),
			Size:      info.Size(),
			IsDir:     entry.IsDir(),
		}
		if origPath, delTime, err := parseTrashInfo(b.infoFile(entry.Name())); err == nil {
			item.OriginalPath = origPath
			if origPath != "" {
				item.Name = filepath.Base(origPath)
			}
			if !delTime.IsZero() {
				item.DeletedAt = delTime
			}
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DeletedAt.After(items[j].DeletedAt)
	})
	return items, nil
}

// Restore moves an item back to its original location. It fails with an
// error matching fs.ErrExist when that location is occupied.
func (b *Bin) Restore(item Item) error {
	if item.OriginalPath == "" {
		return fmt.Errorf("restore %s: original location unknown", item.Name)
	}
	return b.RestoreTo(item, item.OriginalPath)
}

// RestoreTo moves an item out of the bin to destPath.
func (b *Bin) RestoreTo(item Item, destPath string) error {
	if _, err := os.Lstat(destPath); err == nil {
		return &iofs.PathError{Op: "restore", Path: destPath, Err: iofs.ErrExist}
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return err
	}
	if err := os.Rename(item.TrashPath, destPath); err != nil {
		return err
	}
	os.Remove(b.infoFile(filepath.Base(item.TrashPath)))
	debug.Log(debug.TRASH, "restored %s to %s", item.TrashPath, destPath)
	return nil
}

// Delete permanently deletes a specific item from the bin.
func (b *Bin) Delete(item Item) error {
	if err := os.RemoveAll(item.TrashPath); err != nil {
		return err
	}
	os.Remove(b.infoFile(filepath.Base(item.TrashPath)))
	return nil
}

// Empty permanently deletes everything in the bin.
func (b *Bin) Empty() error {
	var lastErr error
	for _, dir := range []string{b.filesPath(), b.infoPath()} {
		entries, err := os.ReadDir(dir)
		if err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return err
		}
		for _, entry := range entries {
			if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
				lastErr = err
			}
		}
	}
	return lastErr
}

func parseTrashInfo(path string) (originalPath string, deletionDate time.Time, err error) {
	file, err := os.Open(path)
	if err != nil {
		return "", time.Time{}, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "Path="):
			encodedPath := strings.TrimPrefix(line, "Path=")
			if decoded, err := url.PathUnescape(encodedPath); err == nil {
				originalPath = decoded
			} else {
				originalPath = encodedPath
			}
		case strings.HasPrefix(line, "DeletionDate="):
			dateStr := strings.TrimPrefix(line, "DeletionDate=")
			if t, err := time.ParseInLocation(deletionDateLayout, dateStr, time.Local); err == nil {
				deletionDate = t
			}
		}
	}

	return originalPath, deletionDate, scanner.Err()
}
