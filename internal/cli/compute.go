package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/takrawm/famengine/internal/fam"
	"github.com/takrawm/famengine/internal/logging"
)

// NewComputeCmd creates the "compute" command: it loads the model
// directory, optionally loads a seed-value file, then runs one
// Compute() cycle and prints the resulting (account, value) pairs.
func NewComputeCmd() *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the next forecast period",
		Long: `Loads the model directory, loads seed values if --seed is given, appends
and computes one new forecast period, and prints the resulting value
for every ruled account, sorted by account id.`,
		Example: `  famengine compute --model-dir ./model --seed seed.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompute(cmd, seedPath)
		},
	}

	cmd.Flags().StringVar(&seedPath, "seed", "", "CSV or JSON seed-value file to load before computing")

	return cmd
}

func runCompute(cmd *cobra.Command, seedPath string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	e, _, err := loadEngine(ctx)
	if err != nil {
		return err
	}

	if err := seedValuesFromPath(ctx, e, seedPath); err != nil {
		return err
	}

	next, results, err := e.Compute(ctx)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Msg("compute failed")
		return fmt.Errorf("compute: %w", err)
	}

	ids := make([]string, 0, len(results))
	for aid := range results {
		ids = append(ids, string(aid))
	}
	sort.Strings(ids)

	cmd.Printf("period: %s\n", next)
	for _, id := range ids {
		cmd.Printf("  %-24s %.2f\n", id, results[fam.AccountId(id)])
	}

	return nil
}
