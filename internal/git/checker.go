package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrGitNotFound is returned when the git binary is not on PATH.
var ErrGitNotFound = errors.New("git not found in PATH")

// Checker inspects the Git state of the bundles before they are overwritten
type Checker struct {
	dir string
}

// NewChecker creates a Git checker that runs commands in dir
func NewChecker(dir string) *Checker {
	return &Checker{dir: dir}
}

func (c *Checker) command(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.dir
	return cmd
}

// IsGitRepository checks if the checker's directory is within a Git repository
func (c *Checker) IsGitRepository() (bool, error) {
	err := c.command("rev-parse", "--git-dir").Run()
	if err != nil {
		if _, ok := err.(*exec.Error); ok {
			return false, fmt.Errorf("%w\nevhash needs Git for the require_clean check.\nInstall Git: https://git-scm.com/downloads", ErrGitNotFound)
		}
		return false, nil
	}
	return true, nil
}

// GetGitRoot returns the absolute path to the Git repository root
func (c *Checker) GetGitRoot() (string, error) {
	output, err := c.command("rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get Git root: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// DirtyFile is one entry of `git status --porcelain`
type DirtyFile struct {
	Status string
	Path   string
}

// Untracked reports whether Git does not know the file at all
func (d DirtyFile) Untracked() bool {
	return d.Status == "??"
}

// DirtyPaths returns uncommitted changes limited to paths.
// Untracked files are included: Git holds no copy to restore them from.
func (c *Checker) DirtyPaths(paths []string) ([]DirtyFile, error) {
	args := append([]string{"status", "--porcelain", "--untracked-files=all", "--"}, paths...)
	output, err := c.command(args...).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to check Git status: %w", err)
	}
	return parsePorcelain(string(output)), nil
}

func parsePorcelain(output string) []DirtyFile {
	var files []DirtyFile
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		if len(line) < 4 {
			continue
		}
		files = append(files, DirtyFile{
			Status: line[:2],
			Path:   strings.TrimSpace(line[3:]),
		})
	}
	return files
}

// FormatDirty renders files for error messages, modified first.
// Returns empty string if files is empty.
func FormatDirty(files []DirtyFile) string {
	var modified, untracked []string
	for _, f := range files {
		if f.Untracked() {
			untracked = append(untracked, f.Path)
		} else {
			modified = append(modified, fmt.Sprintf("%s %s", strings.TrimSpace(f.Status), f.Path))
		}
	}

	var parts []string
	if len(modified) > 0 {
		parts = append(parts, "Uncommitted changes:")
		for _, m := range modified {
			parts = append(parts, " "+m)
		}
	}
	if len(untracked) > 0 {
		if len(parts) > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, "Untracked files:")
		for _, u := range untracked {
			parts = append(parts, fmt.Sprintf("?? %s", u))
		}
	}

	return strings.Join(parts, "\n")
}
