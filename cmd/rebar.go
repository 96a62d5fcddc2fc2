package cmd

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gorcframe/internal/capacity"
	"github.com/alexiusacademia/gorcframe/internal/diagram"
	"github.com/alexiusacademia/gorcframe/internal/pipeline"
	"github.com/alexiusacademia/gorcframe/internal/rebar"
	"github.com/spf13/cobra"
)

var (
	rebarFlags projectFlags

	// Diagram options
	rebarShowDiagram bool
	rebarExportFile  string
)

var rebarCmd = &cobra.Command{
	Use:   "rebar",
	Short: "Size the longitudinal reinforcement of the column",
	Long: `Select the number of longitudinal bars for the column section.

The bar count meets the NSCP 2015 minimum steel ratio of 1% of the gross
section, is at least 4 bars for a tied column and is rounded up to an
even number. Sizing only runs once the worst-case column check passes;
otherwise the command exits with code 2.

Bar sizes: #6 (D19), #7 (D22), #8 (D25), #10 (D32)

Examples:
  # Default 60 x 60 cm column with #8 bars
  gorcframe rebar

  # Show the section
  gorcframe rebar --col-width 70 --col-depth 70 --bar "#10" --diagram

  # Export the section
  gorcframe rebar -o section.svg`,
	RunE: runRebar,
}

func init() {
	rootCmd.AddCommand(rebarCmd)

	rebarFlags.register(rebarCmd, withSite|withFloors|withGrid|withColumn)

	rebarCmd.Flags().BoolVar(&rebarShowDiagram, "diagram", false, "Show ASCII column section")
	rebarCmd.Flags().StringVarP(&rebarExportFile, "output", "o", "", "Export column section to file (png, svg, pdf)")
}

func runRebar(cmd *cobra.Command, args []string) error {
	_, in, cfg, err := rebarFlags.resolve(cmd)
	if err != nil {
		return err
	}

	_, verdict := pipeline.Check(in, cfg)

	out := cmd.OutOrStdout()
	printBanner(out, "COLUMN REINFORCEMENT")

	rc, err := rebar.Size(verdict, in.Column, in.Bar)
	if errors.Is(err, capacity.ErrBlocked) {
		printCapacity(out, in.Column, in.Floors.Total(), cfg.Basis, verdict)
		return WrapExitError(ExitBlocked, "rebar sizing", err)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "rebar sizing", err)
	}

	fmt.Fprintf(out, "  Column %.0f × %.0f cm, %s\n", in.Column.Width, in.Column.Depth, verdict)
	fmt.Fprintln(out)
	printRebar(out, rc)

	if rebarShowDiagram {
		fmt.Fprint(out, diagram.DrawColumnSection(in.Column, rc))
	}
	if rebarExportFile != "" {
		if err := diagram.ExportColumnSection(in.Column, rc, rebarExportFile); err != nil {
			return WrapExitError(ExitFailure, "exporting column section", err)
		}
		fmt.Fprintf(out, "Column section exported to: %s\n", rebarExportFile)
	}
	return nil
}
