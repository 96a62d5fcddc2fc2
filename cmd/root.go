package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gorcframe/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gorcframe",
	Short: "Preliminary Reinforced Concrete Frame Design Tool",
	Long: `gorcframe - Go Reinforced Concrete Frame Designer

A CLI tool for the early-stage design of low and mid-rise reinforced
concrete frames. From a rectangular site and a few design choices it:
  - Lays out the column grid and checks the bay spacing
  - Checks the most heavily loaded column against its axial capacity
  - Sizes the longitudinal reinforcement of the column
  - Recommends an envelope for the site's climate and prices the facade
  - Estimates concrete, steel and total cost

Rebar sizing and the cost estimate only run once the column check
passes. Column strength follows NSCP 2015 (Volume 1).`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gorcframe v%-45s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Reinforced Concrete Frame Designer                   ║")
		fmt.Fprintln(out, "  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for the preliminary design of reinforced concrete frames.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Column grid layout with bay correction")
		fmt.Fprintln(out, "    • Worst-case column axial check (NSCP 2015)")
		fmt.Fprintln(out, "    • Longitudinal rebar sizing")
		fmt.Fprintln(out, "    • Climate-aware envelope selection and facade takeoff")
		fmt.Fprintln(out, "    • Cost estimate with PDF and XLSX reports")
		fmt.Fprintln(out, "    • JSON API server")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gorcframe --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
