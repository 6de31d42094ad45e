package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/takrawm/famengine/internal/logging"
)

// resolvedModelDir holds the resolved model directory path for use by
// other config functions during the lifetime of a CLI invocation.
var (
	resolvedModelDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedModelDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedModelDir
)

// SetResolvedModelDir stores the resolved model directory for use by other config functions.
func SetResolvedModelDir(dir string) {
	resolvedModelDirMu.Lock()
	defer resolvedModelDirMu.Unlock()
	resolvedModelDir = dir
}

// GetResolvedModelDir returns the stored resolved model directory.
func GetResolvedModelDir() string {
	resolvedModelDirMu.RLock()
	defer resolvedModelDirMu.RUnlock()
	return resolvedModelDir
}

// modelMarkerFile is the file whose presence identifies a directory as
// a model root during the walk-up search.
const modelMarkerFile = "model.yaml"

// ResolveModelDir determines the directory holding model.yaml,
// accounts.yaml, periods.yaml and rules.yaml. It checks (in order):
//  1. flagValue (--model-dir CLI flag)
//  2. FAMENGINE_MODEL_DIR env var
//  3. a walk-up search from startDir for the nearest model.yaml
//
// Returns the absolute directory path, or empty string if none found.
// Does NOT create anything (read-only operation).
func ResolveModelDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsDir(ctx, flagValue)
	}

	if envDir := os.Getenv("FAMENGINE_MODEL_DIR"); envDir != "" {
		return toAbsDir(ctx, envDir)
	}

	root, ok := findModelRoot(startDir)
	if !ok {
		return ""
	}
	return toAbsDir(ctx, root)
}

// findModelRoot walks up from startDir looking for a directory
// containing model.yaml.
func findModelRoot(startDir string) (string, bool) {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, modelMarkerFile)); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// NewWithModelDir creates a Config from New() defaults, then
// shallow-merges project-local config.yaml on top, pointing
// Model.Dir at modelDir. If modelDir is empty, behaves identically to
// New().
func NewWithModelDir(ctx context.Context, modelDir string) *Config {
	cfg := New()

	if modelDir == "" {
		return cfg
	}
	cfg.Model.Dir = modelDir

	overlayPath := filepath.Join(modelDir, "config.yaml")
	if _, err := os.Stat(overlayPath); err != nil {
		// Missing project config is not an error: use defaults.
		return cfg
	}

	if err := ShallowMergeYAML(cfg, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using defaults")
		fallback := New()
		fallback.Model.Dir = modelDir
		return fallback
	}

	return cfg
}

// toAbsDir converts dir to an absolute path, logging (not failing) on
// error.
func toAbsDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for model directory")
		return dir
	}
	return abs
}
