package docs

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justyntemme/docbrowser/internal/debug"
	"github.com/justyntemme/docbrowser/internal/fs"
	"github.com/justyntemme/docbrowser/internal/logging"
)

const (
	newFolderName = "New Folder"

	// maxImportAttempts bounds the numbered-suffix retries of ImportFile.
	maxImportAttempts = 10000
)

// Options configures a Store.
type Options struct {
	// Root is the base directory being browsed.
	Root string
	// RelativePath selects a subdirectory of Root; empty means Root itself.
	RelativePath string
	// Sorting is the initial order. The zero value is date descending.
	Sorting SortOption
	// Manager performs filesystem access. Nil means fs.NewLocal(nil).
	Manager fs.Manager
	// Logger receives read-path failures. Nil means logging.L().
	Logger *zap.Logger
	// OnChange, when set, receives a snapshot after every load and every
	// successful mutation.
	OnChange func([]Document)
}

// Store owns the sorted document list of one working directory.
//
// A Store is not safe for concurrent use; callers serialize access, usually
// by driving it from a single goroutine.
type Store struct {
	root         string
	relativePath string
	sorting      SortOption
	manager      fs.Manager
	log          *zap.Logger
	onChange     func([]Document)

	documents []Document
	loaded    bool
}

// NewStore returns a store bound to opts.Root and opts.RelativePath. The
// document list stays empty until Load is called.
func NewStore(opts Options) *Store {
	manager := opts.Manager
	if manager == nil {
		manager = fs.NewLocal(nil)
	}
	return &Store{
		root:         opts.Root,
		relativePath: opts.RelativePath,
		sorting:      opts.Sorting,
		manager:      manager,
		log:          logging.OrDefault(opts.Logger).Named("docs"),
		onChange:     opts.OnChange,
	}
}

// Root returns the base directory.
func (s *Store) Root() string { return s.root }

// WorkingDirectory is Root joined with RelativePath.
func (s *Store) WorkingDirectory() string {
	if s.relativePath == "" {
		return s.root
	}
	return filepath.Join(s.root, s.relativePath)
}

// Documents returns a copy of the current list in sort order.
func (s *Store) Documents() []Document {
	return slices.Clone(s.documents)
}

// Loaded reports whether Load has run at least once.
func (s *Store) Loaded() bool { return s.loaded }

// Sorting returns the active sort option.
func (s *Store) Sorting() SortOption { return s.sorting }

// DocumentNamed returns the listed document called name.
func (s *Store) DocumentNamed(name string) (Document, bool) {
	for _, d := range s.documents {
		if d.Name == name {
			return d, true
		}
	}
	return Document{}, false
}

// Load replaces the list with the current contents of the working
// directory. Entries whose metadata cannot be read are logged and skipped;
// a directory that cannot be listed leaves the list unchanged.
func (s *Store) Load() {
	dir := s.WorkingDirectory()
	paths, err := s.manager.List(dir)
	if err != nil {
		s.log.Error("cannot list directory", zap.String("dir", dir), zap.Error(err))
		s.sort()
		return
	}

	// Keep IDs stable for entries that were already listed.
	known := make(map[string]uuid.UUID, len(s.documents))
	for _, d := range s.documents {
		known[d.Path] = d.ID
	}

	documents := make([]Document, 0, len(paths))
	for _, p := range paths {
		d, ok := s.document(p)
		if !ok {
			continue
		}
		if id, ok := known[p]; ok {
			d.ID = id
		}
		documents = append(documents, d)
	}

	s.documents = documents
	s.loaded = true
	s.sort()
	debug.Log(debug.DOCS, "loaded %s: %d documents, sort=%s", dir, len(documents), s.sorting)
	s.notify()
}

// Reload is Load.
func (s *Store) Reload() {
	s.Load()
}

// SetSorting changes the order and re-sorts the current list without
// touching the filesystem.
func (s *Store) SetSorting(o SortOption) {
	s.sorting = o
	s.sort()
	s.notify()
}

// Delete removes the document from disk and from the list. Failures are
// logged and leave the list unchanged.
func (s *Store) Delete(d Document) {
	if err := s.manager.Remove(d.Path); err != nil {
		s.log.Error("cannot delete document", zap.String("path", d.Path), zap.Error(err))
		return
	}
	if i := s.indexOf(d.Path); i >= 0 {
		s.documents = slices.Delete(s.documents, i, i+1)
	}
	debug.Log(debug.DOCS, "deleted %s", d.Path)
	s.notify()
}

// CreateFolder creates a directory called name in the working directory.
// It fails with ErrExists when the name is taken.
func (s *Store) CreateFolder(name string) (Document, error) {
	if err := validateName(name); err != nil {
		return Document{}, fmt.Errorf("create folder %q: %w", name, err)
	}

	target := filepath.Join(s.WorkingDirectory(), name)
	if err := s.manager.Mkdir(target); err != nil {
		if fs.IsExist(err) {
			return Document{}, fmt.Errorf("create folder %q: %w", name, ErrExists)
		}
		return Document{}, fmt.Errorf("create folder %q: %w", name, err)
	}

	folder, ok := s.document(target)
	if !ok {
		return Document{}, fmt.Errorf("create folder %q: %w", name, ErrUnknown)
	}

	s.documents = slices.Insert(s.documents, 0, folder)
	s.sort()
	debug.Log(debug.DOCS, "created folder %s", target)
	s.notify()
	return folder, nil
}

// CreateNewFolder creates the first free folder among "New Folder",
// "New Folder (1)", "New Folder (2)", ... Every failure is reported as
// ErrUnknown.
func (s *Store) CreateNewFolder() (Document, error) {
	name := newFolderName
	for n := 1; s.manager.Exists(filepath.Join(s.WorkingDirectory(), name)); n++ {
		name = fmt.Sprintf("%s (%d)", newFolderName, n)
	}

	folder, err := s.CreateFolder(name)
	if err != nil {
		s.log.Error("cannot create new folder", zap.String("name", name), zap.Error(err))
		return Document{}, fmt.Errorf("create new folder: %w: %v", ErrUnknown, err)
	}
	return folder, nil
}

// ImportFile copies src into the working directory under its base name.
// On a name conflict it retries as "name (1).ext", "name (2).ext", ...
// Any other failure is logged and reported as ok == false.
func (s *Store) ImportFile(src string) (doc Document, ok bool) {
	base := filepath.Base(src)
	stem, ext := splitExt(base)
	target := filepath.Join(s.WorkingDirectory(), base)

	for attempt := 1; ; attempt++ {
		err := s.manager.Copy(src, target)
		if err == nil {
			break
		}
		if !fs.IsExist(err) {
			s.log.Error("cannot import file", zap.String("src", src), zap.String("dst", target), zap.Error(err))
			return Document{}, false
		}
		if attempt > maxImportAttempts {
			s.log.Error("giving up import, no free name", zap.String("src", src), zap.Int("attempts", attempt))
			return Document{}, false
		}
		target = filepath.Join(s.WorkingDirectory(), numberedName(stem, ext, attempt))
		debug.Log(debug.DOCS, "import conflict, retrying as %s", filepath.Base(target))
	}

	doc, ok = s.document(target)
	if !ok {
		return Document{}, false
	}
	s.documents = append(s.documents, doc)
	s.sort()
	debug.Log(debug.DOCS, "imported %s as %s", src, target)
	s.notify()
	return doc, true
}

// Rename moves d to newName inside the working directory. The returned
// document keeps d's ID. It fails with ErrExists when newName is taken and
// with ErrWasDeleted when d is gone from disk or from the list.
func (s *Store) Rename(d Document, newName string) (Document, error) {
	if err := validateName(newName); err != nil {
		return Document{}, fmt.Errorf("rename %q: %w", d.Name, err)
	}

	newPath := filepath.Join(s.WorkingDirectory(), newName)
	if err := s.manager.Move(d.Path, newPath); err != nil {
		switch {
		case fs.IsExist(err):
			return Document{}, fmt.Errorf("rename %q to %q: %w", d.Name, newName, ErrExists)
		case fs.IsNotExist(err):
			return Document{}, fmt.Errorf("rename %q: %w", d.Name, ErrWasDeleted)
		}
		return Document{}, fmt.Errorf("rename %q to %q: %w", d.Name, newName, err)
	}

	i := s.indexOf(d.Path)
	if i < 0 {
		return Document{}, fmt.Errorf("rename %q: %w", d.Name, ErrWasDeleted)
	}

	updated := s.documents[i]
	s.documents = slices.Delete(s.documents, i, i+1)
	updated.Path = newPath
	updated.Name = newName
	s.documents = slices.Insert(s.documents, 0, updated)
	s.sort()
	debug.Log(debug.DOCS, "renamed %s to %s", d.Path, newPath)
	s.notify()
	return updated, nil
}

// RelativePath returns the document's location below Root, always starting
// with a single "/", e.g. "/sub/report.pdf".
func (s *Store) RelativePath(d Document) string {
	return path.Join("/", filepath.ToSlash(s.relativePath), d.Name)
}

func (s *Store) document(p string) (Document, bool) {
	info, err := s.manager.Stat(p)
	if err != nil {
		s.log.Warn("cannot read file attributes", zap.String("path", p), zap.Error(err))
		return Document{}, false
	}
	return NewDocument(info), true
}

func (s *Store) indexOf(p string) int {
	return slices.IndexFunc(s.documents, func(d Document) bool { return d.Path == p })
}

func (s *Store) sort() {
	slices.SortStableFunc(s.documents, s.sorting.Compare)
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange(s.Documents())
	}
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/`+string(filepath.Separator)) {
		return ErrInvalidName
	}
	return nil
}

// splitExt splits "report.pdf" into "report" and ".pdf". Names without a
// usable extension ("README", ".env", "notes.") return an empty ext.
func splitExt(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i:]
}

// numberedName returns "stem (n)ext".
func numberedName(stem, ext string, n int) string {
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}
