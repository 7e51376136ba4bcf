package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/evhash/internal/config"
)

func TestInitialize(t *testing.T) {
	dir := t.TempDir()

	path, err := Initialize(dir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "evhash.yml"), path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, "client_packages/index.js", cfg.Targets.Client.Path)
	assert.Equal(t, "index-", cfg.Targets.Embedded.Prefix)
	assert.False(t, cfg.Git.RequireClean)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm()&0644)
}

func TestInitialize_RefusesExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "evhash.yml")
	require.NoError(t, os.WriteFile(existing, []byte("old content"), 0644))

	_, err := Initialize(dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project already initialized")

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "old content", string(data))
}

func TestInitialize_Force(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "evhash.yml")
	require.NoError(t, os.WriteFile(existing, []byte("old content"), 0644))

	_, err := Initialize(dir, true)
	require.NoError(t, err)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Contains(t, string(data), `version: "1.0"`)
}

func TestInitialize_MissingDirectory(t *testing.T) {
	_, err := Initialize(filepath.Join(t.TempDir(), "missing"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write")
}

func TestGetTemplateFiles(t *testing.T) {
	files, err := getTemplateFiles("/project")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join("/project", "evhash.yml"), files[0].Path)
	assert.NotEmpty(t, files[0].Content)
	assert.Equal(t, os.FileMode(0644), files[0].Permissions)
}

func TestValidateCreatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evhash.yml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"2.0\"\n"), 0644))

	err := validateCreatedFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created evhash.yml is invalid")
}

func TestPrintSuccess(t *testing.T) {
	var buf bytes.Buffer
	PrintSuccess(&buf)
	assert.Contains(t, buf.String(), "evhash.yml")
	assert.Contains(t, buf.String(), "evhash scan")
}
