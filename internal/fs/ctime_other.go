//go:build !linux && !darwin && !windows

package fs

import (
	"os"
	"time"
)

func creationTime(_ string, _ os.FileInfo) time.Time {
	return time.Time{}
}
