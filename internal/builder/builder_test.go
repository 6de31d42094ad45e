package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takrawm/famengine/internal/evaluator"
	"github.com/takrawm/famengine/internal/fam"
	"github.com/takrawm/famengine/internal/nodestore"
	"github.com/takrawm/famengine/internal/valuestore"
)

func newTestBuilder(periods []fam.Period, rules map[fam.AccountId]fam.Rule) (*Builder, *nodestore.Store, *valuestore.Store) {
	pt := fam.NewPeriodTable()
	pt.Set(periods)

	rs := fam.NewRuleSet()
	rs.Set(rules)

	values := valuestore.New()
	store := nodestore.New()
	return New(store, pt, &rs, values), store, values
}

func evalOne(t *testing.T, store *nodestore.Store, id nodestore.ID) float64 {
	t.Helper()
	vals, err := evaluator.Evaluate(store, []nodestore.ID{id})
	require.NoError(t, err)
	return vals[id]
}

func TestSeedPrecedenceOverridesRule(t *testing.T) {
	b, store, values := newTestBuilder(
		[]fam.Period{{ID: "p1", Type: fam.Annual}},
		map[fam.AccountId]fam.Rule{"a": fam.GrowthRateRule(0.5)},
	)
	values.Set("p1", "a", 42)

	id, err := b.BuildForAccount("p1", "a")
	require.NoError(t, err)
	assert.Equal(t, 42.0, evalOne(t, store, id))
}

func TestCalculationRule(t *testing.T) {
	b, store, values := newTestBuilder(
		[]fam.Period{{ID: "p1", Type: fam.Annual}},
		map[fam.AccountId]fam.Rule{
			"revenue": fam.InputRule(500000),
			"cogs":    fam.InputRule(300000),
			"gp":      fam.CalculationRule(fam.Bin(fam.Sub, fam.Ref("revenue"), fam.Ref("cogs"))),
		},
	)
	_ = values

	id, err := b.BuildForAccount("p1", "gp")
	require.NoError(t, err)
	assert.Equal(t, 200000.0, evalOne(t, store, id))
}

func TestMissingRuleError(t *testing.T) {
	b, _, _ := newTestBuilder(
		[]fam.Period{{ID: "p1", Type: fam.Annual}},
		map[fam.AccountId]fam.Rule{},
	)

	_, err := b.BuildForAccount("p1", "ghost")
	require.Error(t, err)
	var mre *fam.MissingRuleError
	require.ErrorAs(t, err, &mre)
}

func TestCycleDetection(t *testing.T) {
	b, _, _ := newTestBuilder(
		[]fam.Period{{ID: "p1", Type: fam.Annual}},
		map[fam.AccountId]fam.Rule{
			"a": fam.CalculationRule(fam.Ref("b")),
			"b": fam.CalculationRule(fam.Ref("a")),
		},
	)

	_, err := b.BuildForAccount("p1", "a")
	require.Error(t, err)
	var cycleErr *fam.CycleError
	require.ErrorAs(t, err, &cycleErr)
}

func TestMemoizationReturnsSameNodeID(t *testing.T) {
	b, _, values := newTestBuilder(
		[]fam.Period{{ID: "p1", Type: fam.Annual}},
		map[fam.AccountId]fam.Rule{"a": fam.InputRule(10)},
	)
	_ = values

	id1, err := b.BuildForAccount("p1", "a")
	require.NoError(t, err)
	id2, err := b.BuildForAccount("p1", "a")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestGrowthRateCompilesToPriorTimesFactor(t *testing.T) {
	b, store, values := newTestBuilder(
		[]fam.Period{{ID: "p0", Type: fam.Annual}, {ID: "p1", Type: fam.Annual}},
		map[fam.AccountId]fam.Rule{"a": fam.GrowthRateRule(0.1)},
	)
	values.Set("p0", "a", 1000)

	id, err := b.BuildForAccount("p1", "a")
	require.NoError(t, err)
	assert.InDelta(t, 1100.0, evalOne(t, store, id), 1e-9)
}

func TestPercentageRule(t *testing.T) {
	b, store, values := newTestBuilder(
		[]fam.Period{{ID: "p1", Type: fam.Annual}},
		map[fam.AccountId]fam.Rule{
			"revenue": fam.InputRule(605000),
			"cogs":    fam.PercentageRule(0.6, "revenue"),
		},
	)
	_ = values

	id, err := b.BuildForAccount("p1", "cogs")
	require.NoError(t, err)
	assert.InDelta(t, 363000.0, evalOne(t, store, id), 1e-9)
}

func TestFixedValueCarriesForward(t *testing.T) {
	b, store, values := newTestBuilder(
		[]fam.Period{{ID: "p0", Type: fam.Annual}, {ID: "p1", Type: fam.Annual}},
		map[fam.AccountId]fam.Rule{"a": fam.FixedValueRule()},
	)
	values.Set("p0", "a", 77)

	id, err := b.BuildForAccount("p1", "a")
	require.NoError(t, err)
	assert.Equal(t, 77.0, evalOne(t, store, id))
}

func TestProportionateRule(t *testing.T) {
	b, store, values := newTestBuilder(
		[]fam.Period{{ID: "p0", Type: fam.Annual}, {ID: "p1", Type: fam.Annual}},
		map[fam.AccountId]fam.Rule{"a": fam.ProportionateRule("revenue")},
	)
	values.Set("p0", "a", 100)
	values.Set("p0", "revenue", 500)
	values.Set("p1", "revenue", 600)

	id, err := b.BuildForAccount("p1", "a")
	require.NoError(t, err)
	assert.InDelta(t, 120.0, evalOne(t, store, id), 1e-9)
}

func TestBalanceChangeRuleSignedFlows(t *testing.T) {
	b, store, values := newTestBuilder(
		[]fam.Period{{ID: "p0", Type: fam.Annual}, {ID: "p1", Type: fam.Annual}},
		map[fam.AccountId]fam.Rule{
			"asset": fam.BalanceChangeRule([]fam.Flow{
				{Ref: "capex", Sign: fam.Plus},
				{Ref: "depreciation", Sign: fam.Minus},
			}),
		},
	)
	values.Set("p0", "asset", 1000)
	values.Set("p1", "capex", 200)
	values.Set("p1", "depreciation", 50)

	id, err := b.BuildForAccount("p1", "asset")
	require.NoError(t, err)
	assert.InDelta(t, 1150.0, evalOne(t, store, id), 1e-9)
}

func TestBalanceChangeEmptyFlowsCarriesForward(t *testing.T) {
	b, store, values := newTestBuilder(
		[]fam.Period{{ID: "p0", Type: fam.Annual}, {ID: "p1", Type: fam.Annual}},
		map[fam.AccountId]fam.Rule{"a": fam.BalanceChangeRule(nil)},
	)
	values.Set("p0", "a", 42)

	id, err := b.BuildForAccount("p1", "a")
	require.NoError(t, err)
	assert.Equal(t, 42.0, evalOne(t, store, id))
}

func TestPeriodOutOfRange(t *testing.T) {
	b, _, _ := newTestBuilder(
		[]fam.Period{{ID: "p0", Type: fam.Annual}},
		map[fam.AccountId]fam.Rule{"a": fam.GrowthRateRule(0.1)},
	)

	_, err := b.BuildForAccount("p0", "a")
	require.Error(t, err)
	var oorErr *fam.PeriodOutOfRangeError
	require.ErrorAs(t, err, &oorErr)
}
