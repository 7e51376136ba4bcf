// Package locate resolves the on-disk paths of the three bundles.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoMatch is returned when a directory scan finds no matching file.
var ErrNoMatch = errors.New("no matching file")

// Target describes where one bundle lives: either a fixed Path, or the first
// file in Dir whose name starts with Prefix and ends with Suffix.
type Target struct {
	Path   string
	Dir    string
	Prefix string
	Suffix string
}

// IsScan reports whether the target is located by directory scan.
func (t Target) IsScan() bool {
	return t.Path == "" && t.Dir != ""
}

// Resolve returns the concrete path for target. Relative paths are joined
// onto baseDir.
func Resolve(target Target, baseDir string) (string, error) {
	if target.Path != "" {
		return absolute(target.Path, baseDir), nil
	}
	if target.Dir == "" {
		return "", fmt.Errorf("target has neither path nor dir")
	}

	dir := absolute(target.Dir, baseDir)
	name, err := FindByAffix(dir, target.Prefix, target.Suffix)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// FindByAffix returns the name of the first regular file in dir, in lexical
// order, whose name has the given prefix and suffix.
func FindByAffix(dir, prefix, suffix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix) {
			return name, nil
		}
	}

	return "", fmt.Errorf("%w: no %s*%s in %s", ErrNoMatch, prefix, suffix, dir)
}

func absolute(path, baseDir string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}
