package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/evhash/internal/config"
)

// CheckExisting returns an error if dir already holds an evhash.yml
func CheckExisting(dir string) error {
	path := filepath.Join(dir, config.DefaultFile)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("project already initialized\n\nFound existing: %s\n\nUse 'evhash init --force' to reinitialize (this will overwrite existing configuration)", config.DefaultFile)
	}
	return nil
}
