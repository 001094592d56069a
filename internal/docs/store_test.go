package docs

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/justyntemme/docbrowser/internal/fs"
)

// newMemoryStore returns a store over an in-memory tree rooted at /root
// whose clock advances one minute per created entry.
func newMemoryStore(t *testing.T, opts Options) (*Store, *fs.Memory) {
	t.Helper()
	m := fs.NewMemory()
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.SetClock(func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	})
	if err := m.MkdirAll("/root"); err != nil {
		t.Fatal(err)
	}
	if opts.Root == "" {
		opts.Root = "/root"
	}
	opts.Manager = m
	return NewStore(opts), m
}

func TestStoreLoad(t *testing.T) {
	s, m := newMemoryStore(t, Options{})
	for _, name := range []string{"first.txt", "second.txt", ".hidden", "third"} {
		if err := m.WriteFile("/root/"+name, []byte(name)); err != nil {
			t.Fatal(err)
		}
	}

	if s.Loaded() {
		t.Fatal("store should not be loaded before Load")
	}
	s.Load()
	if !s.Loaded() {
		t.Fatal("store should be loaded after Load")
	}

	want := []string{"third", "second.txt", "first.txt"}
	if got := namesOf(s.Documents()); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	d, ok := s.DocumentNamed("second.txt")
	if !ok || d.Size != int64(len("second.txt")) || d.IsDir {
		t.Errorf("unexpected document: %+v", d)
	}
}

func TestStoreLoadSkipsUnreadableEntries(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s, m := newMemoryStore(t, Options{Logger: zap.New(core)})
	for _, name := range []string{"ok.txt", "broken.txt"} {
		if err := m.WriteFile("/root/"+name, nil); err != nil {
			t.Fatal(err)
		}
	}
	m.FailOn(fs.OpStat, "/root/broken.txt", errors.New("permission denied"))

	s.Load()
	if got := namesOf(s.Documents()); !slices.Equal(got, []string{"ok.txt"}) {
		t.Errorf("expected only ok.txt, got %v", got)
	}
	if logs.FilterMessage("cannot read file attributes").Len() != 1 {
		t.Errorf("expected one warning for the unreadable entry, got %v", logs.All())
	}
}

func TestStoreLoadListFailureKeepsList(t *testing.T) {
	s, m := newMemoryStore(t, Options{})
	if err := m.WriteFile("/root/a.txt", nil); err != nil {
		t.Fatal(err)
	}
	s.Load()

	m.FailOn(fs.OpList, "/root", errors.New("io error"))
	if err := m.WriteFile("/root/b.txt", nil); err != nil {
		t.Fatal(err)
	}
	s.Reload()

	if got := namesOf(s.Documents()); !slices.Equal(got, []string{"a.txt"}) {
		t.Errorf("expected the previous list, got %v", got)
	}
}

func TestStoreReloadKeepsIDs(t *testing.T) {
	s, m := newMemoryStore(t, Options{})
	if err := m.WriteFile("/root/a.txt", nil); err != nil {
		t.Fatal(err)
	}
	s.Load()
	before, _ := s.DocumentNamed("a.txt")

	if err := m.WriteFile("/root/b.txt", nil); err != nil {
		t.Fatal(err)
	}
	s.Reload()

	after, ok := s.DocumentNamed("a.txt")
	if !ok || !after.Equal(before) {
		t.Errorf("expected a.txt to keep id %s, got %s", before.ID, after.ID)
	}
	if len(s.Documents()) != 2 {
		t.Errorf("expected 2 documents after reload, got %d", len(s.Documents()))
	}
}

func TestStoreSetSorting(t *testing.T) {
	s, m := newMemoryStore(t, Options{})
	for _, name := range []string{"b", "C", "a"} {
		if err := m.WriteFile("/root/"+name, nil); err != nil {
			t.Fatal(err)
		}
	}
	s.Load()

	testCases := []struct {
		opt  SortOption
		want []string
	}{
		{NameSort(true), []string{"a", "b", "C"}},
		{NameSort(false), []string{"C", "b", "a"}},
		{DateSort(true), []string{"b", "C", "a"}},
		{DateSort(false), []string{"a", "C", "b"}},
	}
	for _, tc := range testCases {
		s.SetSorting(tc.opt)
		if s.Sorting() != tc.opt {
			t.Errorf("Sorting(): expected %s, got %s", tc.opt, s.Sorting())
		}
		if got := namesOf(s.Documents()); !slices.Equal(got, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.opt, tc.want, got)
		}
	}
}

func TestStoreCreateFolderTwice(t *testing.T) {
	s, _ := newMemoryStore(t, Options{})
	s.Load()

	folder, err := s.CreateFolder("X")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if !folder.IsDir || folder.Name != "X" {
		t.Errorf("unexpected folder: %+v", folder)
	}

	_, err = s.CreateFolder("X")
	if !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if got := namesOf(s.Documents()); !slices.Equal(got, []string{"X"}) {
		t.Errorf("expected exactly one X, got %v", got)
	}
}

func TestStoreCreateFolderInvalidName(t *testing.T) {
	s, _ := newMemoryStore(t, Options{})
	for _, name := range []string{"", ".", "..", "a/b"} {
		if _, err := s.CreateFolder(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("CreateFolder(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestStoreCreateNewFolder(t *testing.T) {
	s, _ := newMemoryStore(t, Options{})
	s.Load()

	for _, want := range []string{"New Folder", "New Folder (1)", "New Folder (2)"} {
		folder, err := s.CreateNewFolder()
		if err != nil {
			t.Fatalf("CreateNewFolder: %v", err)
		}
		if folder.Name != want {
			t.Errorf("expected %q, got %q", want, folder.Name)
		}
	}
	if len(s.Documents()) != 3 {
		t.Errorf("expected 3 documents, got %v", namesOf(s.Documents()))
	}
}

func TestStoreCreateNewFolderFailureIsUnknown(t *testing.T) {
	s, m := newMemoryStore(t, Options{})
	m.FailOn(fs.OpMkdir, "/root/New Folder", errors.New("disk full"))

	_, err := s.CreateNewFolder()
	if !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
}

func TestStoreImportFileNumbering(t *testing.T) {
	s, m := newMemoryStore(t, Options{})
	if err := m.WriteFile("/inbox/report.pdf", []byte("pdf")); err != nil {
		t.Fatal(err)
	}
	s.Load()

	for _, want := range []string{"report.pdf", "report (1).pdf", "report (2).pdf"} {
		d, ok := s.ImportFile("/inbox/report.pdf")
		if !ok {
			t.Fatalf("ImportFile failed, expected %q", want)
		}
		if d.Name != want {
			t.Errorf("expected %q, got %q", want, d.Name)
		}
		if data, err := m.ReadFile(d.Path); err != nil || string(data) != "pdf" {
			t.Errorf("%s: unexpected content %q, %v", want, data, err)
		}
	}
}

func TestStoreImportFileFailure(t *testing.T) {
	s, m := newMemoryStore(t, Options{})
	if err := m.WriteFile("/inbox/a.txt", nil); err != nil {
		t.Fatal(err)
	}
	m.FailOn(fs.OpCopy, "/root/a.txt", errors.New("read-only volume"))

	if _, ok := s.ImportFile("/inbox/a.txt"); ok {
		t.Error("expected import to fail")
	}
	if _, ok := s.ImportFile("/inbox/missing.txt"); ok {
		t.Error("expected import of a missing source to fail")
	}
	if len(s.Documents()) != 0 {
		t.Errorf("expected no documents, got %v", namesOf(s.Documents()))
	}
}

func TestSplitExt(t *testing.T) {
	testCases := []struct {
		name string
		want string
	}{
		{"report.pdf", "report (1).pdf"},
		{"a.tar.gz", "a.tar (1).gz"},
		{"README", "README (1)"},
		{".env", ".env (1)"},
		{"notes.", "notes. (1)"},
	}

	for _, tc := range testCases {
		stem, ext := splitExt(tc.name)
		if got := numberedName(stem, ext, 1); got != tc.want {
			t.Errorf("%q: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestStoreRename(t *testing.T) {
	s, m := newMemoryStore(t, Options{})
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := m.WriteFile("/root/"+name, nil); err != nil {
			t.Fatal(err)
		}
	}
	s.Load()
	a, _ := s.DocumentNamed("a.txt")

	renamed, err := s.Rename(a, "c.txt")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if !renamed.Equal(a) {
		t.Error("renamed document should keep its id")
	}
	if renamed.Path != filepath.Join("/root", "c.txt") || !m.Exists("/root/c.txt") || m.Exists("/root/a.txt") {
		t.Errorf("unexpected state after rename: %+v", renamed)
	}
	if got := namesOf(s.Documents()); !slices.Contains(got, "c.txt") || slices.Contains(got, "a.txt") {
		t.Errorf("unexpected list after rename: %v", got)
	}

	before := namesOf(s.Documents())
	if _, err := s.Rename(renamed, "b.txt"); !errors.Is(err, ErrExists) {
		t.Errorf("rename onto b.txt: expected ErrExists, got %v", err)
	}
	if !m.Exists("/root/c.txt") {
		t.Error("failed rename must leave the source in place")
	}
	if after := namesOf(s.Documents()); !slices.Equal(before, after) {
		t.Errorf("failed rename changed the list: %v -> %v", before, after)
	}
}

func TestStoreRenameDeleted(t *testing.T) {
	s, m := newMemoryStore(t, Options{})
	if err := m.WriteFile("/root/a.txt", nil); err != nil {
		t.Fatal(err)
	}
	s.Load()
	a, _ := s.DocumentNamed("a.txt")

	if err := m.Remove("/root/a.txt"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Rename(a, "b.txt"); !errors.Is(err, ErrWasDeleted) {
		t.Errorf("expected ErrWasDeleted, got %v", err)
	}

	// Present on disk but not in the list.
	if err := m.WriteFile("/root/late.txt", nil); err != nil {
		t.Fatal(err)
	}
	late := Document{Name: "late.txt", Path: "/root/late.txt"}
	if _, err := s.Rename(late, "later.txt"); !errors.Is(err, ErrWasDeleted) {
		t.Errorf("expected ErrWasDeleted for an unlisted document, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s, m := newMemoryStore(t, Options{Logger: zap.New(core)})
	for _, name := range []string{"keep.txt", "drop.txt", "stuck.txt"} {
		if err := m.WriteFile("/root/"+name, nil); err != nil {
			t.Fatal(err)
		}
	}
	s.Load()

	drop, _ := s.DocumentNamed("drop.txt")
	s.Delete(drop)
	if m.Exists("/root/drop.txt") {
		t.Error("drop.txt should be removed from disk")
	}
	if _, ok := s.DocumentNamed("drop.txt"); ok {
		t.Error("drop.txt should be removed from the list")
	}

	stuck, _ := s.DocumentNamed("stuck.txt")
	m.FailOn(fs.OpRemove, "/root/stuck.txt", errors.New("busy"))
	s.Delete(stuck)
	if _, ok := s.DocumentNamed("stuck.txt"); !ok {
		t.Error("failed delete must keep stuck.txt listed")
	}
	if logs.FilterMessage("cannot delete document").Len() != 1 {
		t.Errorf("expected the failure to be logged, got %v", logs.All())
	}
}

func TestStoreRelativePath(t *testing.T) {
	testCases := []struct {
		relative string
		want     string
	}{
		{"", "/notes.txt"},
		{"sub", "/sub/notes.txt"},
		{"sub/deeper", "/sub/deeper/notes.txt"},
		{"/", "/notes.txt"},
		{"/sub/", "/sub/notes.txt"},
	}

	for _, tc := range testCases {
		s := NewStore(Options{Root: "/root", RelativePath: tc.relative, Manager: fs.NewMemory()})
		if got := s.RelativePath(Document{Name: "notes.txt"}); got != tc.want {
			t.Errorf("relative %q: expected %q, got %q", tc.relative, tc.want, got)
		}
	}
}

func TestStoreWorkingDirectory(t *testing.T) {
	s, m := newMemoryStore(t, Options{RelativePath: "sub"})
	if got := s.WorkingDirectory(); got != filepath.Join("/root", "sub") {
		t.Fatalf("unexpected working directory %q", got)
	}
	if err := m.WriteFile("/root/sub/inner.txt", nil); err != nil {
		t.Fatal(err)
	}
	if err := m.WriteFile("/root/outer.txt", nil); err != nil {
		t.Fatal(err)
	}

	s.Load()
	if got := namesOf(s.Documents()); !slices.Equal(got, []string{"inner.txt"}) {
		t.Errorf("expected only inner.txt, got %v", got)
	}
}

func TestStoreOnChange(t *testing.T) {
	var snapshots [][]string
	s, m := newMemoryStore(t, Options{OnChange: func(docs []Document) {
		snapshots = append(snapshots, namesOf(docs))
	}})
	if err := m.WriteFile("/root/a.txt", nil); err != nil {
		t.Fatal(err)
	}

	s.Load()
	if _, err := s.CreateFolder("dir"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateFolder("dir"); err == nil {
		t.Fatal("expected conflict")
	}

	if len(snapshots) != 2 {
		t.Fatalf("expected 2 notifications, got %d: %v", len(snapshots), snapshots)
	}
	if !slices.Equal(snapshots[1], []string{"dir", "a.txt"}) {
		t.Errorf("unexpected snapshot %v", snapshots[1])
	}
}

func TestStoreOnDisk(t *testing.T) {
	root := t.TempDir()
	inbox := t.TempDir()
	src := filepath.Join(inbox, "photo.jpg")
	if err := os.WriteFile(src, []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(Options{Root: root, Sorting: NameSort(true)})
	s.Load()

	for _, want := range []string{"photo.jpg", "photo (1).jpg"} {
		d, ok := s.ImportFile(src)
		if !ok || d.Name != want {
			t.Fatalf("expected %q, got %q (ok=%v)", want, d.Name, ok)
		}
	}

	if _, err := s.CreateNewFolder(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateFolder("New Folder"); !errors.Is(err, ErrExists) {
		t.Errorf("expected ErrExists, got %v", err)
	}

	photo, _ := s.DocumentNamed("photo.jpg")
	if _, err := s.Rename(photo, "photo (1).jpg"); !errors.Is(err, ErrExists) {
		t.Errorf("expected ErrExists, got %v", err)
	}

	s.Reload()
	want := []string{"New Folder", "photo (1).jpg", "photo.jpg"}
	if got := namesOf(s.Documents()); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
