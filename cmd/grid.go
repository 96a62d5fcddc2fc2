package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gorcframe/internal/diagram"
	"github.com/alexiusacademia/gorcframe/internal/grid"
	"github.com/spf13/cobra"
)

var (
	gridFlags projectFlags

	// Diagram options
	gridShowDiagram bool
	gridExportFile  string
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Lay out the column grid for a site",
	Long: `Lay out a rectangular column grid over the site from the nominal
column spacing.

Each axis gets floor(dimension / span) + 1 column lines, spread evenly
over the full site. The resulting bay spacing is classified:
  - too-wide   above 8 m
  - too-dense  below 4 m
  - adequate   otherwise

Examples:
  # Default 12 x 20 m site with 6 x 5 m bays
  gorcframe grid

  # Wider site, show the plan
  gorcframe grid --width 18 --depth 30 --span-x 7.5 --span-y 6 --diagram

  # Export the plan
  gorcframe grid -p project.yaml -o plan.png`,
	RunE: runGrid,
}

func init() {
	rootCmd.AddCommand(gridCmd)

	gridFlags.register(gridCmd, withSite|withGrid)

	gridCmd.Flags().BoolVar(&gridShowDiagram, "diagram", false, "Show ASCII grid plan")
	gridCmd.Flags().StringVarP(&gridExportFile, "output", "o", "", "Export grid plan to file (png, svg, pdf)")
}

func runGrid(cmd *cobra.Command, args []string) error {
	_, in, _, err := gridFlags.resolve(cmd)
	if err != nil {
		return err
	}

	g := grid.Plan(in.Site, in.SpanX, in.SpanY)
	out := cmd.OutOrStdout()

	printBanner(out, "COLUMN GRID LAYOUT")
	printGrid(out, g, g.Classify())

	if gridShowDiagram {
		fmt.Fprint(out, diagram.DrawGridPlan(g))
	}
	if gridExportFile != "" {
		if err := diagram.ExportGridPlan(g, gridExportFile); err != nil {
			return WrapExitError(ExitFailure, "exporting grid plan", err)
		}
		fmt.Fprintf(out, "Grid plan exported to: %s\n", gridExportFile)
	}
	return nil
}
