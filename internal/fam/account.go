// Package fam holds the value-typed data model of the financial account
// model engine: accounts, periods, formulas, and rules.
package fam

// AccountId identifies an account. Opaque to the engine; callers choose
// the string.
type AccountId string

// SheetType classifies which financial statement an account belongs to.
// The CF Synthesizer uses it to decide whether a flow qualifies as a
// non-cash add-back, a capex outflow, or neither.
type SheetType string

const (
	SheetPL    SheetType = "PL"
	SheetBS    SheetType = "BS"
	SheetCF    SheetType = "CF"
	SheetPPE   SheetType = "PP&E"
	SheetOther SheetType = "OTHER"
)

// Account is a line item in the model.
type Account struct {
	ID       AccountId
	Name     string
	Sheet    *SheetType
	ParentID *AccountId

	// IsCredit flips the sign convention used by BalanceChange and
	// working-capital delta synthesis.
	IsCredit bool

	// IgnoredForCF excludes an account from working-capital delta
	// synthesis. Derived CF accounts are always created with this set.
	IgnoredForCF bool

	// IsCFBaseProfit marks the single account the synthesizer mirrors
	// into the cash-flow statement as its starting line.
	IsCFBaseProfit bool

	// IsCashAccount excludes an account from working-capital delta
	// synthesis (cash itself is never a WC line).
	IsCashAccount bool
}

// clone returns a shallow copy safe to store independently in an
// account table.
func (a Account) clone() Account {
	out := a
	if a.Sheet != nil {
		s := *a.Sheet
		out.Sheet = &s
	}
	if a.ParentID != nil {
		p := *a.ParentID
		out.ParentID = &p
	}
	return out
}
