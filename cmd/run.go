package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alexiusacademia/gorcframe/internal/diagram"
	"github.com/alexiusacademia/gorcframe/internal/pipeline"
	"github.com/alexiusacademia/gorcframe/internal/report"
	"github.com/alexiusacademia/gorcframe/internal/version"
	"github.com/spf13/cobra"
)

// Output formats of the run command
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	runFlags projectFlags

	runFormat string
	runAuthor string

	// Diagram and report options
	runShowDiagram bool
	runPlanFile    string
	runStressFile  string
	runSectionFile string
	runPDFFile     string
	runXLSXFile    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full design pipeline",
	Long: `Run every stage of the preliminary design in order:

  1. Climate and envelope   zone, glazing, wall finish, facade cost
  2. Column grid            column lines and bay spacing
  3. Worst-case column      axial demand against capacity
  4. Reinforcement          longitudinal bars (only when the column is safe)
  5. Cost estimate          concrete, steel and facade (only when safe)

A failed column check stops the run after stage 3. The report still
lists the upstream results and the remedies, and the command exits
with code 2.

Examples:
  # Defaults
  gorcframe run

  # From a project file, with diagrams and reports
  gorcframe run -p project.yaml --diagram --pdf report.pdf --xlsx boq.xlsx

  # Machine-readable output
  gorcframe run --format json --floors 12`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runFlags.register(runCmd, allGroups)

	runCmd.Flags().StringVarP(&runFormat, "format", "f", FormatText, "Output format (text|json)")
	runCmd.Flags().StringVar(&runAuthor, "author", "", "Designer named on the PDF report")

	runCmd.Flags().BoolVar(&runShowDiagram, "diagram", false, "Show ASCII grid plan, stress map and column section")
	runCmd.Flags().StringVarP(&runPlanFile, "output", "o", "", "Export grid plan to file (png, svg, pdf)")
	runCmd.Flags().StringVar(&runStressFile, "stress-map", "", "Export stress map to file (png, svg, pdf)")
	runCmd.Flags().StringVar(&runSectionFile, "section", "", "Export column section to file (png, svg, pdf)")
	runCmd.Flags().StringVar(&runPDFFile, "pdf", "", "Write the calculation report (PDF)")
	runCmd.Flags().StringVar(&runXLSXFile, "xlsx", "", "Write the bill of quantities (XLSX)")
}

// runOutput is the JSON document printed by run --format json.
type runOutput struct {
	Project string           `json:"project"`
	Version string           `json:"version"`
	Input   pipeline.Input   `json:"input"`
	Result  *pipeline.Result `json:"result"`
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if runFormat != FormatText && runFormat != FormatJSON {
		return NewExitError(ExitFailure, fmt.Sprintf("unknown format %q (expected text or json)", runFormat))
	}

	p, in, cfg, err := runFlags.resolve(cmd)
	if err != nil {
		return err
	}

	res := pipeline.Run(in, cfg)
	if res.Err != nil && !res.Blocked() {
		return WrapExitError(ExitFailure, "pipeline", res.Err)
	}

	out := cmd.OutOrStdout()
	switch runFormat {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(runOutput{Project: p.Name, Version: version.Version, Input: in, Result: res}); err != nil {
			return WrapExitError(ExitFailure, "encoding result", err)
		}
	default:
		printRun(out, p.Name, in, res)
		if runShowDiagram {
			printDiagrams(out, in, res)
		}
	}

	// Export notices go to stderr, keeping stdout to the report itself.
	doc := report.Document{Project: p.Name, Author: runAuthor, Date: time.Now(), Input: in, Result: res}
	if err := exportRun(cmd.ErrOrStderr(), doc); err != nil {
		return err
	}

	if res.Blocked() {
		return WrapExitError(ExitBlocked, "column check", res.Err)
	}
	return nil
}

func printDiagrams(out io.Writer, in pipeline.Input, res *pipeline.Result) {
	fmt.Fprint(out, diagram.DrawGridPlan(res.Grid))
	fmt.Fprint(out, diagram.DrawStressMap(res.Grid, res.Columns, res.Capacity))
	if res.Rebar != nil {
		fmt.Fprint(out, diagram.DrawColumnSection(in.Column, *res.Rebar))
	}
}

// exportRun writes every requested file. Exports that need a safe column
// are skipped with a warning when the run is blocked.
func exportRun(w io.Writer, d report.Document) error {
	res := d.Result
	type export struct {
		file      string
		what      string
		needsSafe bool
		write     func(string) error
	}
	exports := []export{
		{runPlanFile, "Grid plan", false, func(f string) error { return diagram.ExportGridPlan(res.Grid, f) }},
		{runStressFile, "Stress map", false, func(f string) error { return diagram.ExportStressMap(res.Grid, res.Columns, res.Capacity, f) }},
		{runSectionFile, "Column section", true, func(f string) error { return diagram.ExportColumnSection(d.Input.Column, *res.Rebar, f) }},
		{runPDFFile, "Calculation report", false, func(f string) error { return report.SavePDF(f, d) }},
		{runXLSXFile, "Bill of quantities", true, func(f string) error { return report.SaveBOQ(f, d) }},
	}

	for _, e := range exports {
		if e.file == "" {
			continue
		}
		if e.needsSafe && res.Blocked() {
			fmt.Fprintf(w, "Warning: %s not written, column check failed\n", e.what)
			continue
		}
		if err := e.write(e.file); err != nil {
			return WrapExitError(ExitFailure, "exporting "+e.what, err)
		}
		fmt.Fprintf(w, "%s written to: %s\n", e.what, e.file)
	}
	return nil
}
