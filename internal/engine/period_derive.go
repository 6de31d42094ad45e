package engine

import (
	"fmt"

	"github.com/takrawm/famengine/internal/fam"
)

// deriveNextPeriod implements the next-period derivation rule of
// spec.md §6.
func deriveNextPeriod(latest fam.Period) fam.Period {
	next := latest

	switch latest.Type {
	case fam.Annual:
		next.Year = latest.Year + 1
		next.FiscalYear = latest.FiscalYear + 1
		next.IsFiscalYearEnd = true

	case fam.Monthly:
		next.Month = latest.Month + 1
		next.IsFiscalYearEnd = false
		if next.Month > 12 {
			next.Month = 1
			next.Year = latest.Year + 1
		}
	}

	next.ID = fam.PeriodId(fmt.Sprintf("%d-%d-%s", next.Year, next.Month, next.Type))
	next.Label = string(next.ID)
	return next
}
