package cmd

import (
	"fmt"
	"io"

	"github.com/alexiusacademia/gorcframe/internal/climate"
	"github.com/spf13/cobra"
)

var (
	climateFlags projectFlags

	climateListOptions bool
)

var climateCmd = &cobra.Command{
	Use:   "climate",
	Short: "Recommend an envelope for the site climate and price the facade",
	Long: `Classify the site climate from its latitude and evaluate the chosen
glazing and wall finish.

Zones (absolute latitude):
  tropical     below 23.5°
  subtropical  23.5° up to 40°
  cold         40° and above

The energy score is 100 − 12·U, less 20 for poorly insulating glazing in
a cold zone and less 10 for anything but Low-E in the tropics. The facade
takeoff wraps the site perimeter over every storey above grade, 70% wall
and 30% windows.

Examples:
  # Default site in Taipei
  gorcframe climate

  # A northern site with triple glazing
  gorcframe climate --lat 52.5 --glazing triple --wall metal-panel

  # List the material options
  gorcframe climate --options`,
	RunE: runClimate,
}

func init() {
	rootCmd.AddCommand(climateCmd)

	climateFlags.register(climateCmd, withSite|withFloors|withEnvelope)

	climateCmd.Flags().BoolVar(&climateListOptions, "options", false, "List the glazing and wall options")
}

func runClimate(cmd *cobra.Command, args []string) error {
	_, in, _, err := climateFlags.resolve(cmd)
	if err != nil {
		return err
	}

	sel := climate.Advise(in.Latitude, in.Site.Perimeter(), in.Floors.Above, in.Glazing, in.Wall)

	out := cmd.OutOrStdout()
	printBanner(out, "CLIMATE AND ENVELOPE")
	printClimate(out, sel)

	if climateListOptions {
		printMaterialOptions(out, sel.Profile.Zone)
	}
	return nil
}

func printMaterialOptions(out io.Writer, z climate.Zone) {
	printSection(out, "GLAZING OPTIONS")
	w := newTable(out)
	fmt.Fprintln(w, "  Key\tName\tU (W/m²K)\tCost (per m²)\tScore\tNote")
	for _, g := range climate.Glazings {
		fmt.Fprintf(w, "  %s\t%s\t%.1f\t%s\t%.0f\t%s\n",
			g, g.Name(), g.UValue(), money(g.UnitCost()), climate.EnergyScore(z, g), g.Note())
	}
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "WALL FINISHES")
	w = newTable(out)
	fmt.Fprintln(w, "  Key\tName\tCost (per m²)")
	for _, wall := range climate.Walls {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", wall, wall.Name(), money(wall.UnitCost()))
	}
	w.Flush()
	fmt.Fprintln(out)
}
