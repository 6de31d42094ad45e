package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveModelDirPrefersFlag(t *testing.T) {
	dir := t.TempDir()
	got := ResolveModelDir(context.Background(), dir, t.TempDir())
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, got)
}

func TestResolveModelDirFallsBackToEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FAMENGINE_MODEL_DIR", dir)

	got := ResolveModelDir(context.Background(), "", t.TempDir())
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, got)
}

func TestResolveModelDirWalksUpToMarker(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "model.yaml"), []byte("schema_version: 1.0.0\n"), 0o644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	got := ResolveModelDir(context.Background(), "", nested)
	abs, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, abs, got)
}

func TestResolveModelDirNoMarkerFound(t *testing.T) {
	got := ResolveModelDir(context.Background(), "", t.TempDir())
	assert.Equal(t, "", got)
}

func TestNewWithModelDirMergesProjectConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
logging:
  level: warn
`), 0o644))

	cfg := NewWithModelDir(context.Background(), dir)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, dir, cfg.Model.Dir)
}

func TestNewWithModelDirNoProjectConfigUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := NewWithModelDir(context.Background(), dir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, dir, cfg.Model.Dir)
}

func TestGetSetResolvedModelDir(t *testing.T) {
	SetResolvedModelDir("/tmp/models")
	assert.Equal(t, "/tmp/models", GetResolvedModelDir())
}
