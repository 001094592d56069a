package docs

import (
	"path/filepath"
	"testing"
	"time"
)

func TestHumanReadablePath(t *testing.T) {
	root := filepath.FromSlash("/var/mobile/Documents")

	testCases := []struct {
		path string
		want string
	}{
		{"/var/mobile/Documents/Foo/bar.txt", "Documents/Foo/bar.txt"},
		{"/var/mobile/Documents", "Documents"},
		{"/var/mobile/Documents/top.txt", "Documents/top.txt"},
	}

	for _, tc := range testCases {
		if got := HumanReadablePath(filepath.FromSlash(tc.path), root); got != tc.want {
			t.Errorf("HumanReadablePath(%q): expected %q, got %q", tc.path, tc.want, got)
		}
	}

	outside := filepath.FromSlash("/etc/hosts")
	if got := HumanReadablePath(outside, root); got != outside {
		t.Errorf("path outside root: expected it unchanged, got %q", got)
	}
}

func TestRelativeTo(t *testing.T) {
	root := filepath.FromSlash("/data/root")

	testCases := []struct {
		path string
		want string
	}{
		{"/data/root/Foo/bar.txt", "/Foo/bar.txt"},
		{"/data/root", "/"},
		{"/data/root/a", "/a"},
	}

	for _, tc := range testCases {
		if got := RelativeTo(filepath.FromSlash(tc.path), root); got != tc.want {
			t.Errorf("RelativeTo(%q): expected %q, got %q", tc.path, tc.want, got)
		}
	}
}

func TestDocumentFormatting(t *testing.T) {
	d := Document{Size: 1700, Modified: time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC)}

	if got := d.FormattedSize(); got != "1.7 kB" {
		t.Errorf("FormattedSize: expected %q, got %q", "1.7 kB", got)
	}
	if got := d.FormattedModified(); got != "01/02/2024, 3:04 PM" {
		t.Errorf("FormattedModified: got %q", got)
	}

	var unknown Document
	if unknown.FormattedModified() != "-" || unknown.RelativeModified() != "-" {
		t.Error("unknown timestamps should render as \"-\"")
	}
}
