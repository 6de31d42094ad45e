package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"github.com/takrawm/famengine/internal/config"
	"github.com/takrawm/famengine/internal/engine"
	"github.com/takrawm/famengine/internal/loader"
	"github.com/takrawm/famengine/internal/logging"
)

// workingDir returns the process working directory, used as the
// starting point of the model-dir walk-up search.
func workingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return dir, nil
}

// modelDirOrErr returns the resolved model directory from the global
// config, or an error if none could be found.
func modelDirOrErr() (string, error) {
	dir := config.GetGlobalConfig().Model.Dir
	if dir == "" || dir == "." {
		if _, err := os.Stat("model.yaml"); err != nil {
			return "", fmt.Errorf(
				"no model directory found: pass --model-dir, set FAMENGINE_MODEL_DIR, " +
					"or run from a directory containing model.yaml")
		}
	}
	return dir, nil
}

// loadEngine loads model.yaml/accounts.yaml/periods.yaml/rules.yaml from
// the resolved model directory and returns a ready-to-use Engine.
func loadEngine(ctx context.Context) (*engine.Engine, *config.Model, error) {
	log := logging.FromContext(ctx)

	dir, err := modelDirOrErr()
	if err != nil {
		return nil, nil, err
	}

	m, err := config.LoadModel(ctx, dir)
	if err != nil {
		log.Error().Ctx(ctx).Str("model_dir", dir).Err(err).Msg("failed to load model")
		return nil, nil, fmt.Errorf("loading model from %s: %w", dir, err)
	}

	e := engine.New()
	e.SetAccounts(m.Accounts)
	e.SetPeriods(m.Periods)
	e.SetRuleSet(m.Rules)

	log.Debug().Ctx(ctx).
		Int("accounts", len(m.Accounts)).
		Int("periods", len(m.Periods)).
		Int("rules", m.Rules.Len()).
		Msg("model loaded")

	return e, m, nil
}

// seedValuesFromPath parses a CSV or JSON seed-value file based on its
// extension and loads the rows into e in chunks, reporting progress at
// debug level. Parsed rows are served from the parsed-file cache when
// the file's content hash is unchanged.
func seedValuesFromPath(ctx context.Context, e *engine.Engine, path string) error {
	if path == "" {
		return nil
	}
	log := logging.FromContext(ctx)

	rows, err := cachedParseSeedFile(ctx, path)
	if err != nil {
		return fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil
	}

	onProgress := func(p *loader.Progress) {
		log.Debug().Ctx(ctx).
			Float64("percent_complete", p.PercentComplete()).
			Msg("seed import progress")
	}

	if err := loader.ImportSeedValues(ctx, e, rows, loader.DefaultChunkSize, onProgress); err != nil {
		log.Error().Ctx(ctx).Str("path", path).Err(err).Msg("failed to load seed values")
		return fmt.Errorf("loading seed values: %w", err)
	}

	log.Debug().Ctx(ctx).Int("rows", len(rows)).Str("path", path).Msg("seed values loaded")
	return nil
}

// seedFileCache opens the parsed-file cache, rooted at ~/.famengine/cache
// unless overridden by the FAMENGINE_CACHE_* environment variables.
func seedFileCache() (*loader.FileCache, error) {
	enabled := loader.GetCacheEnabledFromEnv()
	dir := loader.GetCacheDirFromEnv()
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return loader.NewFileCache("", false, 0)
		}
		dir = filepath.Join(home, ".famengine", "cache")
	}
	return loader.NewFileCache(dir, enabled, loader.GetTTLFromEnv())
}

// cachedParseSeedFile parses path's rows, reusing the parsed-file cache
// keyed by the file's content hash when available.
func cachedParseSeedFile(ctx context.Context, path string) ([]engine.SeedValue, error) {
	log := logging.FromContext(ctx)

	data, err := os.ReadFile(path) //nolint:gosec // path is an operator-supplied CLI argument
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	cache, err := seedFileCache()
	if err != nil {
		log.Debug().Ctx(ctx).Err(err).Msg("parsed-file cache unavailable, parsing directly")
		return parseSeedFile(path, data)
	}

	key, err := loader.HashFile(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if cached, getErr := cache.Get(key); getErr == nil {
		var rows []engine.SeedValue
		if err := json.Unmarshal(cached, &rows); err == nil {
			log.Debug().Ctx(ctx).Str("path", path).Msg("parsed seed file served from cache")
			return rows, nil
		}
	}

	rows, err := parseSeedFile(path, data)
	if err != nil {
		return nil, err
	}

	if encoded, encErr := json.Marshal(rows); encErr == nil {
		if setErr := cache.Set(key, encoded); setErr != nil {
			log.Debug().Ctx(ctx).Err(setErr).Msg("failed to write parsed-file cache entry")
		}
	}

	return rows, nil
}

// parseSeedFile dispatches to the CSV or JSON seed-value parser based
// on path's extension.
func parseSeedFile(path string, data []byte) ([]engine.SeedValue, error) {
	r := bytes.NewReader(data)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loader.ParseJSONSeedRows(r)
	default:
		return loader.ParseCSVSeedRows(r, language.English)
	}
}
