// Package builder implements the demand-driven Node Builder: given a
// (period, account) demand, it produces a nodestore.ID, recursing
// through the rule and formula for that account, memoizing per
// (period, account), and detecting cycles via a visiting set.
package builder

import (
	"github.com/takrawm/famengine/internal/fam"
	"github.com/takrawm/famengine/internal/nodestore"
)

type key struct {
	period  fam.PeriodId
	account fam.AccountId
}

// Builder is scoped to exactly one Engine.Compute cycle: its Store,
// memo table, and visiting set are all created fresh at the start of
// that cycle and discarded afterward (spec.md §3 Lifecycle, §5).
type Builder struct {
	store    *nodestore.Store
	periods  *fam.PeriodTable
	rules    *fam.RuleSet
	values   valueGetter
	memo     map[key]nodestore.ID
	visiting map[key]bool
	path     []fam.CycleKey
}

// valueGetter is the subset of valuestore.Store the builder needs; kept
// as an interface so tests can substitute a plain map.
type valueGetter interface {
	Get(pid fam.PeriodId, aid fam.AccountId) (float64, bool)
}

// New returns a Builder scoped to one compute cycle.
func New(store *nodestore.Store, periods *fam.PeriodTable, rules *fam.RuleSet, values valueGetter) *Builder {
	return &Builder{
		store:    store,
		periods:  periods,
		rules:    rules,
		values:   values,
		memo:     make(map[key]nodestore.ID),
		visiting: make(map[key]bool),
	}
}

// BuildForAccount implements spec.md §4.5 steps 1-6.
func (b *Builder) BuildForAccount(pid fam.PeriodId, aid fam.AccountId) (nodestore.ID, error) {
	k := key{pid, aid}

	if id, ok := b.memo[k]; ok {
		return id, nil
	}

	if b.visiting[k] {
		path := append(b.path, fam.CycleKey{Period: pid, Account: aid})
		return 0, &fam.CycleError{Path: path}
	}
	b.visiting[k] = true
	b.path = append(b.path, fam.CycleKey{Period: pid, Account: aid})
	defer func() {
		delete(b.visiting, k)
		b.path = b.path[:len(b.path)-1]
	}()

	if v, ok := b.values.Get(pid, aid); ok {
		id := b.store.AddLeaf(v, string(aid)+"@"+string(pid)+":seed")
		b.memo[k] = id
		return id, nil
	}

	rule, ok := b.rules.Get(aid)
	if !ok {
		return 0, &fam.MissingRuleError{Account: aid, Period: pid}
	}

	id, err := b.dispatch(pid, aid, rule)
	if err != nil {
		return 0, err
	}
	b.memo[k] = id
	return id, nil
}

func (b *Builder) dispatch(pid fam.PeriodId, aid fam.AccountId, rule fam.Rule) (nodestore.ID, error) {
	switch rule.Kind {
	case fam.RuleInput:
		return b.store.AddLeaf(rule.Value, string(aid)+"@"+string(pid)+":input"), nil

	case fam.RuleCalculation:
		return b.BuildFormula(rule.Formula, pid, aid)

	case fam.RuleReference:
		return b.BuildForAccount(pid, rule.RefAccount)

	case fam.RuleFixedValue:
		prev, err := b.periods.Resolve(pid, -1)
		if err != nil {
			return 0, err
		}
		return b.BuildForAccount(prev, aid)

	case fam.RuleGrowthRate:
		f := fam.Bin(fam.Mul, fam.RefAt(aid, -1), fam.Num(1+rule.Rate))
		return b.BuildFormula(f, pid, aid)

	case fam.RulePercentage:
		f := fam.Bin(fam.Mul, fam.RefAt(rule.RefAccount, 0), fam.Num(rule.Rate))
		return b.BuildFormula(f, pid, aid)

	case fam.RuleProportionate:
		f := fam.Bin(fam.Mul,
			fam.RefAt(aid, -1),
			fam.Bin(fam.Div, fam.RefAt(rule.RefAccount, 0), fam.RefAt(rule.RefAccount, -1)),
		)
		return b.BuildFormula(f, pid, aid)

	case fam.RuleBalanceChange:
		f := balanceChangeFormula(aid, rule.Flows)
		return b.BuildFormula(f, pid, aid)

	default:
		return 0, &fam.MissingRuleError{Account: aid, Period: pid}
	}
}

// balanceChangeFormula builds AccountRef(aid,-1) + Σ signed(flows),
// left-associative, per spec.md §4.5.1. An empty flow list contributes
// Number(0).
func balanceChangeFormula(aid fam.AccountId, flows []fam.Flow) *fam.Formula {
	var sum *fam.Formula
	if len(flows) == 0 {
		sum = fam.Num(0)
	} else {
		sum = signedFlow(flows[0])
		for _, f := range flows[1:] {
			sum = fam.Bin(fam.Add, sum, signedFlow(f))
		}
	}
	return fam.Bin(fam.Add, fam.RefAt(aid, -1), sum)
}

func signedFlow(f fam.Flow) *fam.Formula {
	ref := fam.RefAt(f.Ref, 0)
	if f.Sign == fam.Minus {
		return fam.Bin(fam.Mul, ref, fam.Num(-1))
	}
	return ref
}

// BuildFormula compiles a Formula rooted at (pid, aid), per spec.md
// §4.5.2.
func (b *Builder) BuildFormula(f *fam.Formula, pid fam.PeriodId, aid fam.AccountId) (nodestore.ID, error) {
	switch f.Kind {
	case fam.FormulaNumber:
		return b.store.AddLeaf(f.Value, "num"), nil

	case fam.FormulaAccountRef:
		target, err := b.periods.Resolve(pid, f.PeriodOffset)
		if err != nil {
			return 0, err
		}
		return b.BuildForAccount(target, f.RefAccount)

	case fam.FormulaBinaryOp:
		left, err := b.BuildFormula(f.Left, pid, aid)
		if err != nil {
			return 0, err
		}
		right, err := b.BuildFormula(f.Right, pid, aid)
		if err != nil {
			return 0, err
		}
		label := string(aid) + "@" + string(pid) + ":" + string(f.BinOp)
		return b.store.AddOp(left, right, f.BinOp, label), nil

	default:
		return 0, &fam.MissingRuleError{Account: aid, Period: pid}
	}
}
