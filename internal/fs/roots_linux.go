//go:build linux

package fs

import (
	"os"
	"path/filepath"
)

// platformRoots follows the XDG layout: Documents, the data home and the
// temporary directory.
func platformRoots() []Root {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = homeDir(".local", "share")
	}
	return []Root{
		{Name: "Documents", Path: homeDir("Documents")},
		{Name: filepath.Base(dataHome), Path: dataHome},
		{Name: "tmp", Path: os.TempDir()},
	}
}
