//go:build !linux

package fs

func rename(src, dst string) error {
	return renameChecked(src, dst)
}
