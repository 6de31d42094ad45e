package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/takrawm/famengine/internal/fam"
)

// detailBoxStyle frames the account-detail overlay.
//
//nolint:gochecknoglobals // lipgloss styles are immutable value types
var detailBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

// renderAccountDetail renders the full time series for one account, or
// a placeholder if no row is currently selected.
func renderAccountDetail(a fam.Account, ok bool, periods []fam.Period, values ValueFunc) string {
	if !ok {
		return detailBoxStyle.Render("no account selected")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", a.Name, a.ID)
	if a.Sheet != nil {
		fmt.Fprintf(&b, "sheet: %s\n", *a.Sheet)
	}
	if a.IsCFBaseProfit {
		b.WriteString("cash-flow base profit line\n")
	}
	if a.IsCashAccount {
		b.WriteString("cash account\n")
	}
	b.WriteString("\n")

	for _, p := range periods {
		v, has := values(p.ID, a.ID)
		if !has {
			fmt.Fprintf(&b, "%-16s -\n", p.DisplayLabel())
			continue
		}
		fmt.Fprintf(&b, "%-16s %.2f\n", p.DisplayLabel(), v)
	}

	return detailBoxStyle.Render(b.String())
}
