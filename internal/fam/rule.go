package fam

// FlowSign is the sign convention of a BalanceChange flow.
type FlowSign string

const (
	Plus  FlowSign = "PLUS"
	Minus FlowSign = "MINUS"
)

// Flow is one signed contributor to a BalanceChange rule.
type Flow struct {
	Ref  AccountId
	Sign FlowSign
}

// RuleKind tags the variant held by a Rule.
type RuleKind int

const (
	RuleInput RuleKind = iota
	RuleCalculation
	RuleGrowthRate
	RulePercentage
	RuleReference
	RuleFixedValue
	RuleProportionate
	RuleBalanceChange
)

// Rule is the tagged-union rule description keyed by AccountId in a
// RuleSet, as described in spec.md §3/§4.5.
//
// Input:         Value
// Calculation:   Formula
// GrowthRate:    Rate
// Percentage:    Rate, RefAccount
// Reference:     RefAccount
// FixedValue:    (no fields)
// Proportionate: RefAccount
// BalanceChange: Flows
type Rule struct {
	Kind RuleKind

	Value float64

	Formula *Formula

	Rate       float64
	RefAccount AccountId

	Flows []Flow
}

// InputRule builds an Input rule.
func InputRule(v float64) Rule { return Rule{Kind: RuleInput, Value: v} }

// CalculationRule builds a Calculation rule.
func CalculationRule(f *Formula) Rule { return Rule{Kind: RuleCalculation, Formula: f} }

// GrowthRateRule builds a GrowthRate rule.
func GrowthRateRule(r float64) Rule { return Rule{Kind: RuleGrowthRate, Rate: r} }

// PercentageRule builds a Percentage rule.
func PercentageRule(p float64, ref AccountId) Rule {
	return Rule{Kind: RulePercentage, Rate: p, RefAccount: ref}
}

// ReferenceRule builds a Reference rule.
func ReferenceRule(ref AccountId) Rule { return Rule{Kind: RuleReference, RefAccount: ref} }

// FixedValueRule builds a FixedValue (carry-forward) rule.
func FixedValueRule() Rule { return Rule{Kind: RuleFixedValue} }

// ProportionateRule builds a Proportionate rule.
func ProportionateRule(ref AccountId) Rule {
	return Rule{Kind: RuleProportionate, RefAccount: ref}
}

// BalanceChangeRule builds a BalanceChange rule.
func BalanceChangeRule(flows []Flow) Rule {
	return Rule{Kind: RuleBalanceChange, Flows: flows}
}

// RuleSet is the mutable, order-preserving map the CF Synthesizer
// mutates in place (spec.md §4.7). Insertion order is preserved across
// Put so that Engine.Compute's diagnostic iteration order is stable
// (spec.md §4.8 point 6), even though a plain Go map would not
// preserve it.
type RuleSet struct {
	byID  map[AccountId]Rule
	order []AccountId
}

// NewRuleSet returns an empty RuleSet.
func NewRuleSet() RuleSet {
	return RuleSet{byID: make(map[AccountId]Rule)}
}

// Set replaces the rule set wholesale from a map, assigning insertion
// order arbitrarily (callers that care about deterministic order
// should use SetOrdered).
func (rs *RuleSet) Set(rules map[AccountId]Rule) {
	rs.byID = make(map[AccountId]Rule, len(rules))
	rs.order = rs.order[:0]
	for id, r := range rules {
		rs.byID[id] = r
		rs.order = append(rs.order, id)
	}
}

// SetOrdered replaces the rule set from an ordered slice of (id, rule)
// pairs, preserving the given order exactly.
func (rs *RuleSet) SetOrdered(ids []AccountId, rules []Rule) {
	rs.byID = make(map[AccountId]Rule, len(ids))
	rs.order = make([]AccountId, 0, len(ids))
	for i, id := range ids {
		rs.byID[id] = rules[i]
		rs.order = append(rs.order, id)
	}
}

// Put inserts or overwrites the rule at id. Replacing a rule at an
// existing id is permitted (used by the synthesizer to overwrite
// "cash") and does not change its position in Order().
func (rs *RuleSet) Put(id AccountId, r Rule) {
	if rs.byID == nil {
		rs.byID = make(map[AccountId]Rule)
	}
	if _, ok := rs.byID[id]; !ok {
		rs.order = append(rs.order, id)
	}
	rs.byID[id] = r
}

// Get returns the rule at id.
func (rs RuleSet) Get(id AccountId) (Rule, bool) {
	r, ok := rs.byID[id]
	return r, ok
}

// Has reports whether id has a rule.
func (rs RuleSet) Has(id AccountId) bool {
	_, ok := rs.byID[id]
	return ok
}

// Len returns the number of rules.
func (rs RuleSet) Len() int {
	return len(rs.byID)
}

// Order returns account ids in insertion order.
func (rs RuleSet) Order() []AccountId {
	return append([]AccountId(nil), rs.order...)
}

// Clone returns a deep-enough copy for synthesizer idempotence checks
// (Formula/Flow slices are not mutated in place by the synthesizer, so
// copying the Flow slices on each Rule suffices).
func (rs RuleSet) Clone() RuleSet {
	out := NewRuleSet()
	for _, id := range rs.order {
		r := rs.byID[id]
		if r.Flows != nil {
			r.Flows = append([]Flow(nil), r.Flows...)
		}
		out.Put(id, r)
	}
	return out
}
