package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/gorcframe/internal/pipeline"
	"github.com/alexiusacademia/gorcframe/internal/project"
	"github.com/alexiusacademia/gorcframe/internal/report"
	"github.com/spf13/cobra"
)

var (
	batchProjectFile string
	batchOutputFile  string
	batchVerbose     bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <scenarios.xlsx>",
	Short: "Run the pipeline for every scenario in a workbook",
	Long: `Run the full pipeline once per row of an XLSX scenario sheet.

The first row of the first sheet names the columns. Recognized columns:
  name, site_width, site_depth, latitude, longitude, floors_above,
  floors_below, span_x, span_y, column_width, column_depth, fc, bar,
  glazing, wall, basis, concrete_cost, steel_cost

Blank cells keep the value of the base project (--project, or the
defaults). Rows that fail to parse or validate are reported and skipped.
Blocked scenarios are a normal outcome and do not fail the batch.

Examples:
  gorcframe batch scenarios.xlsx
  gorcframe batch scenarios.xlsx -p base.yaml -o results.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchProjectFile, "project", "p", "", "Base project file (YAML)")
	batchCmd.Flags().StringVarP(&batchOutputFile, "output", "o", "", "Write the results workbook (XLSX)")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Log every scenario")
}

func runBatch(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if batchVerbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	base := project.Default()
	if batchProjectFile != "" {
		p, err := project.Load(batchProjectFile)
		if err != nil {
			return WrapExitError(ExitFailure, "reading base project", err)
		}
		base = p
	}

	f, err := os.Open(args[0])
	if err != nil {
		return WrapExitError(ExitFailure, "opening scenarios", err)
	}
	defer f.Close()

	scenarios, err := report.ReadScenarios(f, base)
	if err != nil {
		return WrapExitError(ExitFailure, "reading scenarios", err)
	}

	outcomes := make([]report.Outcome, 0, len(scenarios))
	for _, s := range scenarios {
		outcomes = append(outcomes, runScenario(logger, s))
	}

	out := cmd.OutOrStdout()
	printBanner(out, fmt.Sprintf("BATCH RUN - %d SCENARIOS", len(outcomes)))
	printOutcomes(out, outcomes)

	if batchOutputFile != "" {
		rf, err := os.Create(batchOutputFile)
		if err != nil {
			return WrapExitError(ExitFailure, "creating results workbook", err)
		}
		defer rf.Close()
		if err := report.WriteOutcomes(rf, outcomes); err != nil {
			return WrapExitError(ExitFailure, "writing results workbook", err)
		}
		fmt.Fprintf(out, "Results written to: %s\n", batchOutputFile)
	}
	return nil
}

func runScenario(logger *slog.Logger, s report.Scenario) report.Outcome {
	o := report.Outcome{Row: s.Row, Name: s.Project.Name}
	if s.Err != nil {
		logger.Warn("scenario skipped", "row", s.Row, "name", o.Name, "error", s.Err)
		o.Err = s.Err
		return o
	}

	in, cfg, err := s.Project.Resolve()
	if err != nil {
		logger.Warn("scenario skipped", "row", s.Row, "name", o.Name, "error", err)
		o.Err = err
		return o
	}

	o.Result = pipeline.Run(in, cfg)
	switch {
	case o.Result.Err != nil && !o.Result.Blocked():
		logger.Error("scenario failed", "row", s.Row, "name", o.Name, "error", o.Result.Err)
	case o.Result.Err == nil:
		logger.Info("scenario run", "row", s.Row, "name", o.Name, "state", o.Result.State.String(), "ratio", o.Result.Capacity.Ratio)
	default:
		logger.Info("scenario blocked", "row", s.Row, "name", o.Name, "ratio", o.Result.Capacity.Ratio)
	}
	return o
}
