package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takrawm/famengine/internal/config"
	"github.com/takrawm/famengine/internal/engine"
	"github.com/takrawm/famengine/internal/fam"
)

func writeModelFiles(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"model.yaml": "schema_version: 1.0.0\n",
		"accounts.yaml": `accounts:
  - id: revenue
    name: Revenue
    sheet: PL
`,
		"periods.yaml": `periods:
  - id: "2024"
    year: 2024
    type: ANNUAL
`,
		"rules.yaml": `rules:
  - id: revenue
    kind: input
    value: 1000
`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
}

func TestLoadEngineReadsModelDirectory(t *testing.T) {
	dir := t.TempDir()
	writeModelFiles(t, dir)

	config.ResetGlobalConfigForTest()
	config.SetGlobalConfig(config.NewWithModelDir(context.Background(), dir))

	e, m, err := loadEngine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", m.SchemaVersion)
	assert.Len(t, e.AllAccounts(), 1)
	assert.Len(t, e.AllPeriods(), 1)
}

func TestModelDirOrErrFailsWithoutModelDir(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	config.ResetGlobalConfigForTest()
	config.SetGlobalConfig(config.New())

	_, err = modelDirOrErr()
	require.Error(t, err)
}

func TestSeedValuesFromPathLoadsCSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "seed.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("period,account,value\n2024,revenue,500\n"), 0o600))

	e := engine.New()
	e.SetAccounts([]fam.Account{{ID: "revenue"}})
	e.SetPeriods([]fam.Period{{ID: "2024"}})

	require.NoError(t, seedValuesFromPath(context.Background(), e, csvPath))

	v, ok := e.Value("2024", "revenue")
	require.True(t, ok)
	assert.InDelta(t, 500.0, v, 1e-9)
}

func TestSeedValuesFromPathEmptyPathIsNoop(t *testing.T) {
	e := engine.New()
	require.NoError(t, seedValuesFromPath(context.Background(), e, ""))
}
