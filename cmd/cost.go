package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gorcframe/internal/pipeline"
	"github.com/spf13/cobra"
)

var costFlags projectFlags

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Estimate concrete, steel and facade cost",
	Long: `Estimate the cost of the structure and the facade.

Quantities per storey (above and below grade):
  - Slab concrete: site area × 0.25 m equivalent slab and beam thickness
  - Column concrete: column section × 3.2 m storey height × column count
  - Steel: 0.18 t per m³ of concrete

The facade cost from the climate stage is added to the structure cost.
The unit cost is given per ping (3.3058 m²) of floor area. The estimate
only runs once the worst-case column check passes; otherwise the command
exits with code 2.

Examples:
  # Default project
  gorcframe cost

  # Local prices
  gorcframe cost --concrete-cost 3100 --steel-cost 31500 -p project.yaml`,
	RunE: runCost,
}

func init() {
	rootCmd.AddCommand(costCmd)

	costFlags.register(costCmd, allGroups)
}

func runCost(cmd *cobra.Command, args []string) error {
	_, in, cfg, err := costFlags.resolve(cmd)
	if err != nil {
		return err
	}

	res := pipeline.Run(in, cfg)
	out := cmd.OutOrStdout()
	printBanner(out, "COST ESTIMATE")

	if res.Blocked() {
		printCapacity(out, in.Column, in.Floors.Total(), cfg.Basis, res.Capacity)
		return WrapExitError(ExitBlocked, "cost estimate", res.Err)
	}
	if res.Err != nil {
		return WrapExitError(ExitFailure, "cost estimate", res.Err)
	}

	fmt.Fprintf(out, "  Worst-case column: %s\n", res.Capacity)
	fmt.Fprintf(out, "  Reinforcement: %s, %d columns\n", res.Rebar.Label(), res.Grid.TotalColumns)
	fmt.Fprintln(out)
	printCost(out, res.Cost, in.Prices)
	return nil
}
