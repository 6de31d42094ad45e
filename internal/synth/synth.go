// Package synth implements the CF Rule Synthesizer: a pre-compute pass
// that mutates an account table and rule set in place to derive
// indirect-method cash-flow accounts and rules from the base model.
package synth

import (
	"github.com/takrawm/famengine/internal/fam"
)

const (
	idBaseProfitCF  = "baseProfit_cf"
	idCashChangeCF  = "cash_change_cf"
	idCash          = "cash"
	suffixCFAdj     = "_cf_adj"
	suffixCFWC      = "_cf_wc"
)

// Synthesize mutates accounts and rules in place. Re-running it on an
// already-synthesized state is a no-op beyond overwriting
// cash_change_cf/cash with identical formulas.
func Synthesize(accounts *fam.AccountTable, rules *fam.RuleSet) error {
	baseProfit, err := findBaseProfit(accounts)
	if err != nil {
		return err
	}

	// Step A: base-profit CF mirror.
	accounts.Ensure(fam.Account{ID: idBaseProfitCF, Sheet: sheetPtr(fam.SheetCF), IgnoredForCF: true})
	rules.Put(idBaseProfitCF, fam.ReferenceRule(baseProfit))

	var nonCashIDs, capexIDs, wcIDs []fam.AccountId
	listed := make(map[fam.AccountId]bool)

	// Steps B & C: non-cash add-backs and capex outflows, scanning
	// every BalanceChange rule's flows.
	for _, aid := range accounts.Order() {
		acct, _ := accounts.Get(aid)
		rule, ok := rules.Get(aid)
		if !ok || rule.Kind != fam.RuleBalanceChange {
			continue
		}
		for _, flow := range rule.Flows {
			flowAcct, ok := accounts.Get(flow.Ref)
			if !ok {
				continue
			}
			if !qualifiesForCF(flowAcct) {
				continue
			}

			switch flow.Sign {
			case fam.Minus:
				derived := fam.AccountId(string(flow.Ref) + suffixCFAdj)
				accounts.Ensure(fam.Account{ID: derived, Sheet: sheetPtr(fam.SheetCF), IgnoredForCF: true})
				cfSign := signOf(acct.IsCredit) * -1
				rules.Put(derived, fam.CalculationRule(fam.Bin(fam.Mul, fam.RefAt(flow.Ref, 0), fam.Num(cfSign))))
				if !listed[derived] {
					listed[derived] = true
					nonCashIDs = append(nonCashIDs, derived)
				}

			case fam.Plus:
				derived := fam.AccountId(string(flow.Ref) + suffixCFAdj)
				accounts.Ensure(fam.Account{ID: derived, Sheet: sheetPtr(fam.SheetCF), IgnoredForCF: true})
				cfSign := signOf(acct.IsCredit) * 1
				rules.Put(derived, fam.CalculationRule(fam.Bin(fam.Mul, fam.RefAt(flow.Ref, 0), fam.Num(cfSign))))
				if !listed[derived] {
					listed[derived] = true
					capexIDs = append(capexIDs, derived)
				}
			}
		}
	}

	// Step D: working-capital deltas.
	for _, aid := range accounts.Order() {
		acct, _ := accounts.Get(aid)
		if acct.Sheet == nil || *acct.Sheet != fam.SheetBS {
			continue
		}
		if acct.IsCashAccount || acct.IgnoredForCF {
			continue
		}
		if rule, ok := rules.Get(aid); ok && rule.Kind == fam.RuleBalanceChange {
			continue
		}
		derived := fam.AccountId(string(aid) + suffixCFWC)
		accounts.Ensure(fam.Account{ID: derived, Sheet: sheetPtr(fam.SheetCF), IgnoredForCF: true})
		diff := fam.Bin(fam.Sub, fam.RefAt(aid, 0), fam.RefAt(aid, -1))
		rules.Put(derived, fam.CalculationRule(fam.Bin(fam.Mul, diff, fam.Num(signOf(acct.IsCredit)))))
		wcIDs = append(wcIDs, derived)
	}

	// Step E: cash aggregator, summing base, then non-cash, then
	// working capital, then investment, left-associative.
	ordered := append([]fam.AccountId{idBaseProfitCF}, nonCashIDs...)
	ordered = append(ordered, wcIDs...)
	ordered = append(ordered, capexIDs...)
	accounts.Ensure(fam.Account{ID: idCashChangeCF, Sheet: sheetPtr(fam.SheetCF), IgnoredForCF: true})
	rules.Put(idCashChangeCF, fam.CalculationRule(sumLeftAssoc(ordered)))

	// Step F: cash linkage.
	accounts.Ensure(fam.Account{ID: idCash, Sheet: sheetPtr(fam.SheetBS), IsCashAccount: true})
	rules.Put(idCash, fam.BalanceChangeRule([]fam.Flow{{Ref: idCashChangeCF, Sign: fam.Plus}}))

	return nil
}

func findBaseProfit(accounts *fam.AccountTable) (fam.AccountId, error) {
	var found fam.AccountId
	count := 0
	for _, a := range accounts.All() {
		if a.IsCFBaseProfit {
			found = a.ID
			count++
		}
	}
	if count != 1 {
		return "", fam.ErrMissingBaseProfit
	}
	return found, nil
}

// qualifiesForCF implements spec.md §4.7 Step B/C's eligibility test:
// the flow's target must carry a sheet type outside {BS, CF, null} and
// must not itself be the base-profit account.
func qualifiesForCF(a fam.Account) bool {
	if a.IsCFBaseProfit {
		return false
	}
	if a.Sheet == nil {
		return false
	}
	switch *a.Sheet {
	case fam.SheetBS, fam.SheetCF:
		return false
	default:
		return true
	}
}

func signOf(isCredit bool) float64 {
	if isCredit {
		return 1
	}
	return -1
}

func sumLeftAssoc(ids []fam.AccountId) *fam.Formula {
	if len(ids) == 0 {
		return fam.Num(0)
	}
	sum := fam.Ref(ids[0])
	for _, id := range ids[1:] {
		sum = fam.Bin(fam.Add, sum, fam.Ref(id))
	}
	return sum
}

func sheetPtr(s fam.SheetType) *fam.SheetType {
	return &s
}
