package checks

import (
	"fmt"
	"os"
	"path/filepath"
)

// Source reads plugin files relative to a root directory.
type Source struct {
	root string
}

// NewSource returns a Source rooted at root.
func NewSource(root string) *Source {
	return &Source{root: root}
}

// Root returns the directory paths are resolved against.
func (s *Source) Root() string { return s.root }

// Path resolves rel against the root. Absolute paths are returned unchanged.
func (s *Source) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.root, rel)
}

// ReadFile returns the full text of rel. The error wraps the underlying
// *fs.PathError, so errors.Is(err, fs.ErrNotExist) holds for missing files.
func (s *Source) ReadFile(rel string) (string, error) {
	data, err := os.ReadFile(s.Path(rel))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rel, err)
	}
	return string(data), nil
}

// Exists reports whether rel can be stat'ed.
func (s *Source) Exists(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}
