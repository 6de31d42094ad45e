package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/takrawm/famengine/internal/config"
)

// scaffoldModelYAML is the starter model.yaml written by model init.
const scaffoldModelYAML = "schema_version: 1.0.0\n"

// scaffoldAccountsYAML is the starter accounts.yaml written by model init.
const scaffoldAccountsYAML = `accounts:
  - id: revenue
    name: Revenue
    sheet: PL
  - id: cogs
    name: Cost of Goods Sold
    sheet: PL
  - id: gross_profit
    name: Gross Profit
    sheet: PL
  - id: cash
    name: Cash
    sheet: BS
    is_cash_account: true
`

// scaffoldPeriodsYAML is the starter periods.yaml written by model init.
const scaffoldPeriodsYAML = `periods:
  - id: "2024-0-ANNUAL"
    year: 2024
    type: ANNUAL
    label: "FY2024"
`

// scaffoldRulesYAML is the starter rules.yaml written by model init.
const scaffoldRulesYAML = `rules:
  - id: revenue
    kind: growth_rate
    rate: 0.1
  - id: cogs
    kind: percentage
    rate: 0.6
    ref_account: revenue
  - id: gross_profit
    kind: calculation
    formula:
      op: sub
      left:
        ref: revenue
      right:
        ref: cogs
`

// NewModelInitCmd creates the "model init" command, which scaffolds a
// new model directory with minimal model.yaml/accounts.yaml/
// periods.yaml/rules.yaml files. It is idempotent: existing files are
// left untouched unless --force is given.
func NewModelInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a new model directory",
		Long: `Creates model.yaml, accounts.yaml, periods.yaml and rules.yaml with a
minimal three-line PL forecast. revenue grows from its prior-period
value, so validate and compute need a seed value for revenue at the
scaffold period (--seed). Existing files are left untouched unless
--force is given.`,
		Example: `  # Scaffold ./model
  famengine model init ./model

  # Overwrite existing scaffold files
  famengine model init ./model --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runModelInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing model files")

	return cmd
}

func runModelInit(cmd *cobra.Command, dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating model directory %s: %w", dir, err)
	}

	files := []struct {
		name    string
		content string
	}{
		{"model.yaml", scaffoldModelYAML},
		{"accounts.yaml", scaffoldAccountsYAML},
		{"periods.yaml", scaffoldPeriodsYAML},
		{"rules.yaml", scaffoldRulesYAML},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if !force {
			if _, err := os.Stat(path); err == nil {
				cmd.Printf("Skipped %s (already exists, use --force to overwrite)\n", path)
				continue
			} else if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", path, err)
			}
		}
		if err := os.WriteFile(path, []byte(f.content), 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		cmd.Printf("Wrote %s\n", path)
	}

	created, err := config.EnsureGitignore(dir)
	if err != nil {
		return fmt.Errorf("creating .gitignore: %w", err)
	}
	if created {
		cmd.Printf("Created %s\n", filepath.Join(dir, ".gitignore"))
	}

	return nil
}
