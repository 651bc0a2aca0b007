package filesystem

import (
	"errors"
	"fmt"
	"os"
)

// PathChecker implements ports.PathChecker against the host filesystem.
type PathChecker struct{}

// NewPathChecker creates a path checker.
func NewPathChecker() *PathChecker {
	return &PathChecker{}
}

// Exists reports whether path exists. Any stat failure counts as absent.
func (p *PathChecker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates path and its parents if absent and reports whether it
// had to create anything.
func (p *PathChecker) EnsureDir(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, fmt.Errorf("%s exists and is not a directory", path)
	case !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return true, nil
}
