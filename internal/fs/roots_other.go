//go:build !linux && !darwin && !windows

package fs

import "os"

func platformRoots() []Root {
	return []Root{
		{Name: "Documents", Path: homeDir("Documents")},
		{Name: "tmp", Path: os.TempDir()},
	}
}
