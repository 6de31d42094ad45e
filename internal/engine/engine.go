// Package engine implements the Engine facade: the orchestration layer
// that owns the account/period/rule/value tables, runs the CF
// Synthesizer, and drives the Node Builder and Topological Evaluator
// once per account on every Compute call.
package engine

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/takrawm/famengine/internal/builder"
	"github.com/takrawm/famengine/internal/evaluator"
	"github.com/takrawm/famengine/internal/fam"
	"github.com/takrawm/famengine/internal/logging"
	"github.com/takrawm/famengine/internal/nodestore"
	"github.com/takrawm/famengine/internal/synth"
	"github.com/takrawm/famengine/internal/valuestore"
)

// Engine is the facade described in spec.md §6. It is not safe for
// concurrent calls (spec.md §5): callers needing isolation must
// serialize externally.
type Engine struct {
	accounts *fam.AccountTable
	periods  *fam.PeriodTable
	rules    fam.RuleSet
	values   *valuestore.Store
}

// New returns an empty Engine.
func New() *Engine {
	return &Engine{
		accounts: fam.NewAccountTable(),
		periods:  fam.NewPeriodTable(),
		rules:    fam.NewRuleSet(),
		values:   valuestore.New(),
	}
}

// SetAccounts replaces the account table.
func (e *Engine) SetAccounts(accounts []fam.Account) {
	e.accounts.Set(accounts)
}

// SetPeriods replaces the period table. Order matters: it defines time.
func (e *Engine) SetPeriods(periods []fam.Period) {
	e.periods.Set(periods)
}

// SetRules replaces the rule set from a plain map. Insertion order
// across a map is arbitrary; callers that need deterministic
// diagnostic ordering should build rules with fam.NewRuleSet/Put
// directly and pass it via SetRuleSet.
func (e *Engine) SetRules(rules map[fam.AccountId]fam.Rule) {
	e.rules.Set(rules)
}

// SetRuleSet replaces the rule set, preserving rs's insertion order.
func (e *Engine) SetRuleSet(rs fam.RuleSet) {
	e.rules = rs
}

// SeedValue is one (account, period, value) input row for
// LoadInputData.
type SeedValue struct {
	Account fam.AccountId
	Period  fam.PeriodId
	Value   float64
}

// LoadInputData sets seeded values. An unknown account or period fails
// the whole call (spec.md §6).
func (e *Engine) LoadInputData(values []SeedValue) error {
	for _, v := range values {
		if !e.accounts.Has(v.Account) {
			return &fam.UnknownAccountError{Account: v.Account}
		}
		if _, err := e.periods.IndexOf(v.Period); err != nil {
			return err
		}
	}
	for _, v := range values {
		e.values.Set(v.Period, v.Account, v.Value)
	}
	return nil
}

// Value returns the stored value at (pid, aid), if any.
func (e *Engine) Value(pid fam.PeriodId, aid fam.AccountId) (float64, bool) {
	return e.values.Get(pid, aid)
}

// AllAccounts returns the account table in insertion order.
func (e *Engine) AllAccounts() []fam.Account {
	return e.accounts.All()
}

// AllPeriods returns the period table in order.
func (e *Engine) AllPeriods() []fam.Period {
	return e.periods.All()
}

// Compute implements spec.md §4.8: it appends exactly one new period,
// rebuilds the Node Store and per-cycle builder state from empty, runs
// the CF Synthesizer when an account is flagged IsCFBaseProfit, then
// builds and evaluates every ruled account for the new period, rounding
// and storing each result.
func (e *Engine) Compute(ctx context.Context) (fam.PeriodId, map[fam.AccountId]float64, error) {
	runID := ulid.Make().String()
	log := logging.FromContext(ctx).With().Str("component", "engine").Str("compute_run_id", runID).Logger()

	latest, ok := e.periods.Latest()
	if !ok || e.rules.Len() == 0 {
		return "", nil, fmt.Errorf("%w: requires at least one period and one rule", fam.ErrNotConfigured)
	}

	next := deriveNextPeriod(latest)
	e.periods.Append(next)
	log.Info().Str("period", string(next.ID)).Msg("appended forecast period")

	// The CF Synthesizer runs only when some account is flagged as the
	// base-profit line; a model with none is computed from its own rules.
	runSynth := false
	for _, a := range e.accounts.All() {
		if a.IsCFBaseProfit {
			runSynth = true
			break
		}
	}
	if runSynth {
		if err := synth.Synthesize(e.accounts, &e.rules); err != nil {
			return "", nil, err
		}
	}

	store := nodestore.New()
	b := builder.New(store, e.periods, &e.rules, e.values)

	order := e.rules.Order()
	results := make(map[fam.AccountId]float64, len(order))
	for _, aid := range order {
		id, err := b.BuildForAccount(next.ID, aid)
		if err != nil {
			log.Error().Str("account", string(aid)).Err(err).Msg("build failed")
			return "", nil, err
		}
		vals, err := evaluator.Evaluate(store, []nodestore.ID{id})
		if err != nil {
			log.Error().Str("account", string(aid)).Err(err).Msg("evaluate failed")
			return "", nil, err
		}
		v := roundValue(string(aid), vals[id])
		e.values.Set(next.ID, aid, v)
		results[aid] = v
	}

	log.Info().Int("accounts", len(results)).Msg("compute complete")
	return next.ID, results, nil
}
