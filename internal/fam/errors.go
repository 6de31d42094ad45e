package fam

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured is returned by Compute when no periods or no rules
// have been loaded yet.
var ErrNotConfigured = errors.New("fam: engine not configured")

// ErrMissingBaseProfit is returned by the CF Synthesizer when zero or
// more than one account carries IsCFBaseProfit.
var ErrMissingBaseProfit = errors.New("fam: no unique base-profit account")

// MissingRuleError is returned when a (period, account) demand has
// neither a seeded value nor a rule.
type MissingRuleError struct {
	Account AccountId
	Period  PeriodId
}

func (e *MissingRuleError) Error() string {
	return fmt.Sprintf("fam: missing rule for account %q at period %q", e.Account, e.Period)
}

// UnknownAccountError is returned by table lookups that reference an
// account id the account table does not contain.
type UnknownAccountError struct {
	Account AccountId
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("fam: unknown account %q", e.Account)
}

// UnknownPeriodError is returned by table lookups that reference a
// period id the period table does not contain.
type UnknownPeriodError struct {
	Period PeriodId
}

func (e *UnknownPeriodError) Error() string {
	return fmt.Sprintf("fam: unknown period %q", e.Period)
}

// PeriodOutOfRangeError is returned when a relative period offset
// resolves outside the period table.
type PeriodOutOfRangeError struct {
	Base   PeriodId
	Offset int
}

func (e *PeriodOutOfRangeError) Error() string {
	return fmt.Sprintf("fam: period offset %d from %q is out of range", e.Offset, e.Base)
}

// CycleKey identifies one (period, account) step on a cycle path.
type CycleKey struct {
	Period  PeriodId
	Account AccountId
}

func (k CycleKey) String() string {
	return fmt.Sprintf("%s@%s", k.Account, k.Period)
}

// CycleError is returned by the Node Builder when a (period, account)
// demand re-enters itself while still being built.
type CycleError struct {
	Path []CycleKey
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Path))
	for i, k := range e.Path {
		parts[i] = k.String()
	}
	return fmt.Sprintf("fam: cycle detected: %s", strings.Join(parts, " -> "))
}

// DivisionByZeroError is returned by the evaluator when a DIV node's
// right operand is exactly 0.0.
type DivisionByZeroError struct {
	Label string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("fam: division by zero evaluating node %q", e.Label)
}
