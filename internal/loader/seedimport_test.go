package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/takrawm/famengine/internal/engine"
	"github.com/takrawm/famengine/internal/fam"
)

func TestParseCSVSeedRows(t *testing.T) {
	csv := "period,account,value\n2024,revenue,500000\n2024,cogs,300000\n"
	rows, err := ParseCSVSeedRows(strings.NewReader(csv), language.English)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, engine.SeedValue{Period: "2024", Account: "revenue", Value: 500000}, rows[0])
	assert.Equal(t, engine.SeedValue{Period: "2024", Account: "cogs", Value: 300000}, rows[1])
}

func TestParseCSVSeedRowsRejectsBadHeader(t *testing.T) {
	csv := "account,period,value\nrevenue,2024,500000\n"
	_, err := ParseCSVSeedRows(strings.NewReader(csv), language.English)
	require.Error(t, err)
}

func TestParseCSVSeedRowsRejectsEmptyFile(t *testing.T) {
	_, err := ParseCSVSeedRows(strings.NewReader(""), language.English)
	require.Error(t, err)
}

func TestParseJSONSeedRows(t *testing.T) {
	jsonInput := `[{"period":"2024","account":"revenue","value":500000},{"period":"2024","account":"cogs","value":300000}]`
	rows, err := ParseJSONSeedRows(strings.NewReader(jsonInput))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, fam.AccountId("revenue"), rows[0].Account)
	assert.Equal(t, 500000.0, rows[0].Value)
}

func TestImportSeedValuesLoadsAllRows(t *testing.T) {
	e := engine.New()
	e.SetAccounts([]fam.Account{{ID: "revenue"}, {ID: "cogs"}})
	e.SetPeriods([]fam.Period{{ID: "2024"}})

	rows := []engine.SeedValue{
		{Period: "2024", Account: "revenue", Value: 500000},
		{Period: "2024", Account: "cogs", Value: 300000},
	}

	var chunks int
	err := ImportSeedValues(context.Background(), e, rows, 1, func(p *Progress) { chunks = p.ProcessedChunks })
	require.NoError(t, err)
	assert.Equal(t, 2, chunks)

	v, ok := e.Value("2024", "revenue")
	require.True(t, ok)
	assert.Equal(t, 500000.0, v)
}

func TestImportSeedValuesFailsOnUnknownAccount(t *testing.T) {
	e := engine.New()
	e.SetPeriods([]fam.Period{{ID: "2024"}})

	rows := []engine.SeedValue{{Period: "2024", Account: "ghost", Value: 1}}
	err := ImportSeedValues(context.Background(), e, rows, 10, nil)
	require.Error(t, err)
	var uae *fam.UnknownAccountError
	require.ErrorAs(t, err, &uae)
}
