package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureGitignoreCreatesFile(t *testing.T) {
	dir := t.TempDir()
	created, err := EnsureGitignore(dir)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, gitignoreContent, string(data))
}

func TestEnsureGitignoreDoesNotOverwriteExisting(t *testing.T) {
	dir := t.TempDir()
	custom := "custom content\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(custom), 0o644))

	created, err := EnsureGitignore(dir)
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

func TestEnsureGitignoreCreatesParentDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")
	created, err := EnsureGitignore(dir)
	require.NoError(t, err)
	assert.True(t, created)

	_, statErr := os.Stat(filepath.Join(dir, ".gitignore"))
	require.NoError(t, statErr)
}
