package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the famengine CLI.
// It wires up logging and the model/compute/show command groups.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "famengine",
		Short:   "Financial account model evaluation engine",
		Long:    "famengine: compute a forecast period over a set of accounts, periods and rules",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(cmd)
			return resolveModelConfig(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().
		String("model-dir", "", "directory holding model.yaml/accounts.yaml/periods.yaml/rules.yaml")

	cmd.AddCommand(newModelCmd(), NewComputeCmd(), newShowCmd())

	return cmd
}

const rootCmdExample = `  # Validate a model directory
  famengine model validate --model-dir ./model

  # Scaffold a new model directory
  famengine model init ./model

  # Load seed values and compute the next forecast period
  famengine compute --model-dir ./model --seed seed.csv

  # Inspect the loaded model
  famengine show accounts --model-dir ./model
  famengine show periods --model-dir ./model
  famengine show values --model-dir ./model --seed seed.csv`

// newModelCmd creates the model command group with validate/init subcommands.
func newModelCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "model", Short: "Model file management commands"}
	cmd.AddCommand(NewModelValidateCmd(), NewModelInitCmd())
	return cmd
}

// newShowCmd creates the show command group with accounts/periods/values subcommands.
func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "show", Short: "Inspect a loaded model"}
	cmd.AddCommand(NewShowAccountsCmd(), NewShowPeriodsCmd(), NewShowValuesCmd())
	return cmd
}
