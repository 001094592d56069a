//go:build darwin

package fs

import "os"

func platformRoots() []Root {
	return []Root{
		{Name: "Documents", Path: homeDir("Documents")},
		{Name: "Library", Path: homeDir("Library")},
		{Name: "tmp", Path: os.TempDir()},
	}
}
