package fs

import (
	"os"
	"path/filepath"
)

// Root is a top-level directory offered for browsing.
type Root struct {
	Name string
	Path string
}

// DefaultRoots returns the per-user directories an application would keep
// its documents in, skipping any that do not exist on this machine.
func DefaultRoots() []Root {
	var roots []Root
	for _, r := range platformRoots() {
		if r.Path == "" {
			continue
		}
		if info, err := os.Stat(r.Path); err == nil && info.IsDir() {
			roots = append(roots, r)
		}
	}
	return roots
}

func homeDir(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home}, elem...)...)
}
