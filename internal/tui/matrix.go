package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/takrawm/famengine/internal/fam"
)

// ValueFunc looks up the stored value at (pid, aid), matching
// engine.Engine.Value's signature.
type ValueFunc func(fam.PeriodId, fam.AccountId) (float64, bool)

// headerStyle and selectedStyle style the matrix table: a bold header
// row and a reverse-video selected row.
var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1) //nolint:gochecknoglobals // lipgloss styles are immutable value types
	selectedStyle = lipgloss.NewStyle().Reverse(true)            //nolint:gochecknoglobals // lipgloss styles are immutable value types
)

// matrixModel is the Bubble Tea model backing the value matrix viewer.
type matrixModel struct {
	table    table.Model
	accounts []fam.Account
	periods  []fam.Period
	values   ValueFunc
	detail   bool
}

// RunValueMatrix launches an interactive terminal viewer over the given
// periods x accounts value matrix. Press enter to open the
// account-detail overlay for the highlighted row, q or ctrl+c to quit.
func RunValueMatrix(periods []fam.Period, accounts []fam.Account, values ValueFunc) error {
	m := newMatrixModel(periods, accounts, values)
	_, err := tea.NewProgram(m).Run()
	if err != nil {
		return fmt.Errorf("running value matrix viewer: %w", err)
	}
	return nil
}

func newMatrixModel(periods []fam.Period, accounts []fam.Account, values ValueFunc) matrixModel {
	columns := make([]table.Column, 0, len(periods)+1)
	columns = append(columns, table.Column{Title: "Account", Width: 24})
	for _, p := range periods {
		columns = append(columns, table.Column{Title: p.DisplayLabel(), Width: 14})
	}

	rows := make([]table.Row, 0, len(accounts))
	for _, a := range accounts {
		row := make(table.Row, 0, len(periods)+1)
		row = append(row, string(a.ID))
		for _, p := range periods {
			v, ok := values(p.ID, a.ID)
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, fmt.Sprintf("%.2f", v))
		}
		rows = append(rows, row)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(minInt(len(rows)+1, 20)),
	)
	style := table.DefaultStyles()
	style.Header = headerStyle
	style.Selected = selectedStyle
	t.SetStyles(style)

	return matrixModel{table: t, accounts: accounts, periods: periods, values: values}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (m matrixModel) Init() tea.Cmd {
	return nil
}

func (m matrixModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.detail = false
			return m, nil
		case "enter":
			m.detail = true
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(minInt(msg.Height-4, len(m.accounts)+1))
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m matrixModel) View() string {
	if m.detail {
		account, ok := m.selectedAccount()
		return renderAccountDetail(account, ok, m.periods, m.values) + "\n(esc to return, q to quit)\n"
	}
	return m.table.View() + "\n(enter for account detail, q to quit)\n"
}

func (m matrixModel) selectedAccount() (fam.Account, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.accounts) {
		return fam.Account{}, false
	}
	return m.accounts[idx], true
}
