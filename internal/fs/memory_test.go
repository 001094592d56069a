package fs

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

var _ Manager = (*Memory)(nil)
var _ Manager = (*Local)(nil)

func TestMemoryListOrderAndHidden(t *testing.T) {
	m := NewMemory()
	for _, p := range []string{"/docs/b.txt", "/docs/A.txt", "/docs/.secret", "/docs/sub/deep.txt"} {
		if err := m.WriteFile(p, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := m.List("/docs")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"/docs/A.txt", "/docs/b.txt", "/docs/sub"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != filepath.FromSlash(want[i]) {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], paths[i])
		}
	}
}

func TestMemoryConflicts(t *testing.T) {
	m := NewMemory()
	if err := m.WriteFile("/a.txt", []byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := m.WriteFile("/b.txt", []byte("b")); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name string
		op   func() error
	}{
		{"mkdir existing", func() error { return m.Mkdir("/a.txt") }},
		{"copy onto existing", func() error { return m.Copy("/a.txt", "/b.txt") }},
		{"move onto existing", func() error { return m.Move("/a.txt", "/b.txt") }},
	}
	for _, tc := range testCases {
		if err := tc.op(); !IsExist(err) {
			t.Errorf("%s: expected exist error, got %v", tc.name, err)
		}
	}

	if err := m.Move("/missing", "/c.txt"); !IsNotExist(err) {
		t.Errorf("move missing: expected not-exist error, got %v", err)
	}
	if err := m.Mkdir("/no/parent"); !IsNotExist(err) {
		t.Errorf("mkdir without parent: expected not-exist error, got %v", err)
	}
}

func TestMemoryCopyAndMoveSubtree(t *testing.T) {
	m := NewMemory()
	if err := m.WriteFile("/src/dir/file.txt", []byte("content")); err != nil {
		t.Fatal(err)
	}

	if err := m.Copy("/src", "/copy"); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	data, err := m.ReadFile("/copy/dir/file.txt")
	if err != nil || string(data) != "content" {
		t.Fatalf("copied file mismatch: %q %v", data, err)
	}

	if err := m.Move("/copy", "/moved"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if m.Exists("/copy/dir/file.txt") {
		t.Error("old subtree still present after move")
	}
	if !m.Exists("/moved/dir/file.txt") {
		t.Error("moved subtree missing")
	}
	if !m.Exists("/src/dir/file.txt") {
		t.Error("copy source disappeared")
	}

	if err := m.Remove("/moved"); err != nil {
		t.Fatal(err)
	}
	if m.Exists("/moved/dir") {
		t.Error("remove should delete descendants")
	}
}

func TestMemoryStatAndClock(t *testing.T) {
	m := NewMemory()
	fixed := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	m.SetClock(func() time.Time { return fixed })

	if err := m.WriteFile("/notes.md", []byte("12345")); err != nil {
		t.Fatal(err)
	}
	info, err := m.Stat("/notes.md")
	if err != nil {
		t.Fatal(err)
	}
	if info.Name != "notes.md" || info.Size != 5 || info.IsDir {
		t.Errorf("unexpected info: %+v", info)
	}
	if !info.Modified.Equal(fixed) || !info.Created.Equal(fixed) {
		t.Errorf("expected timestamps %v, got %+v", fixed, info)
	}

	if err := m.SetModTime("/notes.md", time.Time{}); err != nil {
		t.Fatal(err)
	}
	info, _ = m.Stat("/notes.md")
	if !info.Modified.IsZero() {
		t.Error("expected zero modification time")
	}
}

func TestMemoryFailOn(t *testing.T) {
	m := NewMemory()
	if err := m.WriteFile("/x.txt", nil); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("disk on fire")

	m.FailOn(OpStat, "/x.txt", boom)
	if _, err := m.Stat("/x.txt"); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}

	m.FailOn(OpStat, "/x.txt", nil)
	if _, err := m.Stat("/x.txt"); err != nil {
		t.Errorf("fault should be cleared, got %v", err)
	}
}
