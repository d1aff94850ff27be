package util

import (
	"fmt"
	"os"
	"path/filepath"
)

func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}

// SafeJoin keeps name inside root by dropping any directory components.
func SafeJoin(root, name string) string {
	return filepath.Join(root, filepath.Base(name))
}

// IsRegularFile follows symlinks; a file that vanished reports false.
func IsRegularFile(path string) (os.FileInfo, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	return info, info.Mode().IsRegular()
}
