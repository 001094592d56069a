// Package docs holds the document model and the per-directory document
// store: listing, sorting, and the create/import/rename/delete operations
// with their name-conflict handling.
package docs

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/justyntemme/docbrowser/internal/fs"
)

// Document is a file or folder listed by a Store.
//
// Identity is ID, not Path: a renamed document keeps its ID. A zero Created
// or Modified means the timestamp is unknown.
type Document struct {
	ID       uuid.UUID
	Name     string
	Path     string
	Size     int64
	Created  time.Time
	Modified time.Time
	IsDir    bool
}

// NewDocument builds a Document with a fresh ID from adapter metadata.
func NewDocument(info fs.Info) Document {
	return Document{
		ID:       uuid.New(),
		Name:     info.Name,
		Path:     info.Path,
		Size:     info.Size,
		Created:  info.Created,
		Modified: info.Modified,
		IsDir:    info.IsDir,
	}
}

// Equal reports whether d and other are the same document.
func (d Document) Equal(other Document) bool {
	return d.ID == other.ID
}

// FormattedSize renders Size in SI units, e.g. "1.0 kB".
func (d Document) FormattedSize() string {
	if d.Size < 0 {
		return humanize.Bytes(0)
	}
	return humanize.Bytes(uint64(d.Size))
}

// FormattedModified renders Modified as a short date and time, or "-" when
// unknown.
func (d Document) FormattedModified() string {
	return ShortTimestamp(d.Modified)
}

// RelativeModified renders Modified relative to now, e.g. "3 hours ago".
func (d Document) RelativeModified() string {
	if d.Modified.IsZero() {
		return "-"
	}
	return humanize.Time(d.Modified)
}

// ShortTimestamp formats t as a short date and time, or "-" for the zero time.
func ShortTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("01/02/2006, 3:04 PM")
}
