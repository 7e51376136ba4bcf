package scaffold

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dyluth/evhash/internal/config"
)

//go:embed templates/*
var templatesFS embed.FS

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Initialize writes a default evhash.yml into dir and returns its path.
// If force is true an existing evhash.yml is replaced.
func Initialize(dir string, force bool) (string, error) {
	if !force {
		if err := CheckExisting(dir); err != nil {
			return "", err
		}
	}

	files, err := getTemplateFiles(dir)
	if err != nil {
		return "", err
	}

	if err := writeFiles(files); err != nil {
		return "", err
	}

	path := filepath.Join(dir, config.DefaultFile)
	if err := validateCreatedFile(path); err != nil {
		return "", err
	}

	return path, nil
}

// getTemplateFiles reads all template files
func getTemplateFiles(dir string) ([]FileInfo, error) {
	content, err := templatesFS.ReadFile("templates/evhash.yml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read evhash.yml template: %w", err)
	}

	return []FileInfo{{
		Path:        filepath.Join(dir, config.DefaultFile),
		Content:     content,
		Permissions: 0644,
	}}, nil
}

// writeFiles writes all template files to disk
func writeFiles(files []FileInfo) error {
	for _, file := range files {
		if err := os.WriteFile(file.Path, file.Content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}
	return nil
}

// validateCreatedFile loads the written config through the normal loader
func validateCreatedFile(path string) error {
	if _, err := config.Load(path); err != nil {
		return fmt.Errorf("created %s is invalid: %w", config.DefaultFile, err)
	}
	return nil
}

// PrintSuccess prints the success message with next steps
func PrintSuccess(w io.Writer) {
	fmt.Fprintln(w, "\n✅ Successfully initialized evhash!")
	fmt.Fprintln(w, "\nCreated:")
	fmt.Fprintf(w, "  ✓ %s\n", config.DefaultFile)
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintln(w, "  1. Point the client, server and embedded targets at your build output")
	fmt.Fprintln(w, "  2. Run 'evhash scan' to review the identifiers that will be replaced")
	fmt.Fprintln(w, "  3. Run 'evhash run' after each build, before packaging")
}
