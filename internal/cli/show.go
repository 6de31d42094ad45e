package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/takrawm/famengine/internal/fam"
	"github.com/takrawm/famengine/internal/tui"
)

// NewShowAccountsCmd creates the "show accounts" command.
func NewShowAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the accounts loaded from the model directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, _, err := loadEngine(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSHEET\tBASE PROFIT\tCASH")
			for _, a := range e.AllAccounts() {
				sheet := ""
				if a.Sheet != nil {
					sheet = string(*a.Sheet)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%v\n", a.ID, a.Name, sheet, a.IsCFBaseProfit, a.IsCashAccount)
			}
			return w.Flush()
		},
	}
}

// NewShowPeriodsCmd creates the "show periods" command.
func NewShowPeriodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "periods",
		Short: "List the periods loaded from the model directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, _, err := loadEngine(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tYEAR\tMONTH\tLABEL")
			for _, p := range e.AllPeriods() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", p.ID, p.Type, p.Year, p.Month, p.DisplayLabel())
			}
			return w.Flush()
		},
	}
}

// NewShowValuesCmd creates the "show values" command: it loads the
// model, optionally seeds and computes additional periods, then prints
// the period x account value matrix. In an interactive terminal it
// launches the bubbletea matrix viewer instead of a plain table, unless
// --plain is given.
func NewShowValuesCmd() *cobra.Command {
	var (
		seedPath string
		periods  int
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "values",
		Short: "Show the period x account value matrix",
		Example: `  famengine show values --model-dir ./model --seed seed.csv
  famengine show values --model-dir ./model --seed seed.csv --periods 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShowValues(cmd, seedPath, periods, plain)
		},
	}

	cmd.Flags().StringVar(&seedPath, "seed", "", "CSV or JSON seed-value file to load before computing")
	cmd.Flags().IntVar(&periods, "periods", 1, "number of additional forecast periods to compute")
	cmd.Flags().BoolVar(&plain, "plain", false, "force plain table output, skipping the interactive viewer")

	return cmd
}

func runShowValues(cmd *cobra.Command, seedPath string, periods int, plain bool) error {
	ctx := cmd.Context()

	e, _, err := loadEngine(ctx)
	if err != nil {
		return err
	}
	if err := seedValuesFromPath(ctx, e, seedPath); err != nil {
		return err
	}

	for i := 0; i < periods; i++ {
		if _, _, err := e.Compute(ctx); err != nil {
			return fmt.Errorf("compute cycle %d: %w", i+1, err)
		}
	}

	accounts := e.AllAccounts()
	allPeriods := e.AllPeriods()

	if !plain && isTerminal(os.Stdout) {
		return tui.RunValueMatrix(allPeriods, accounts, e.Value)
	}

	return printValueMatrix(cmd, allPeriods, accounts, e.Value)
}

func printValueMatrix(
	cmd *cobra.Command,
	periods []fam.Period,
	accounts []fam.Account,
	value func(fam.PeriodId, fam.AccountId) (float64, bool),
) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprint(w, "ACCOUNT")
	for _, p := range periods {
		fmt.Fprintf(w, "\t%s", p.DisplayLabel())
	}
	fmt.Fprintln(w)

	for _, a := range accounts {
		fmt.Fprint(w, a.ID)
		for _, p := range periods {
			v, ok := value(p.ID, a.ID)
			if !ok {
				fmt.Fprint(w, "\t-")
				continue
			}
			fmt.Fprintf(w, "\t%.2f", v)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
