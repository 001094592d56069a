package docs

import (
	"path/filepath"
	"strings"
)

// HumanReadablePath renders p for display as the root's base name followed
// by the path below it, e.g. "Documents/Foo/bar.txt". Paths outside root are
// returned unchanged.
func HumanReadablePath(p, root string) string {
	rel, ok := below(p, root)
	if !ok {
		return p
	}
	base := filepath.Base(filepath.Clean(root))
	if rel == "" {
		return base
	}
	return base + "/" + rel
}

// RelativeTo returns p relative to root with a leading "/", e.g.
// "/Foo/bar.txt". root itself maps to "/".
func RelativeTo(p, root string) string {
	rel, ok := below(p, root)
	if !ok {
		return filepath.ToSlash(p)
	}
	return "/" + rel
}

// below returns the slash-separated part of p under root.
func below(p, root string) (string, bool) {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(p))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	if rel == "." {
		return "", true
	}
	return filepath.ToSlash(rel), true
}
