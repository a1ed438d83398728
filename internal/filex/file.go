// Package filex holds small filesystem helpers for scratch directories.
package filex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EnsureDir creates dir (relative paths resolve against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// ScratchDir creates a new uniquely named directory <root>/<prefix>-<uuid>.
// Removing it is up to the caller.
func ScratchDir(root, prefix string) (string, error) {
	base, err := EnsureDir(root)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(base, fmt.Sprintf("%s-%s", prefix, uuid.New()))
	if err := os.Mkdir(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
