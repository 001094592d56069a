//go:build windows

package fs

import "os"

func platformRoots() []Root {
	appData, _ := os.UserConfigDir()
	return []Root{
		{Name: "Documents", Path: homeDir("Documents")},
		{Name: "AppData", Path: appData},
		{Name: "Temp", Path: os.TempDir()},
	}
}
