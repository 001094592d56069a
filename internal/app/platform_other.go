//go:build !linux && !darwin && !windows

package app

import (
	"errors"
	"os/exec"
)

// platformOpen falls back to xdg-open where it is installed.
func platformOpen(path string) error {
	if _, err := exec.LookPath("xdg-open"); err != nil {
		return errors.New("no default application launcher on this platform")
	}
	return exec.Command("xdg-open", path).Start()
}
