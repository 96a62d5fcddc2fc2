package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gorcframe/internal/advisory"
	"github.com/alexiusacademia/gorcframe/internal/capacity"
	"github.com/alexiusacademia/gorcframe/internal/climate"
	"github.com/alexiusacademia/gorcframe/internal/cost"
	"github.com/alexiusacademia/gorcframe/internal/diagram"
	"github.com/alexiusacademia/gorcframe/internal/grid"
	"github.com/alexiusacademia/gorcframe/internal/pipeline"
	"github.com/alexiusacademia/gorcframe/internal/rebar"
	"github.com/alexiusacademia/gorcframe/internal/report"
)

const (
	ruleHeavy = "═══════════════════════════════════════════════════════════════"
	ruleLight = "───────────────────────────────────────────────────────────────"
)

func printBanner(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, ruleHeavy)
	fmt.Fprintf(out, "     %s\n", title)
	fmt.Fprintln(out, ruleHeavy)
	fmt.Fprintln(out)
}

func printSection(out io.Writer, title string) {
	fmt.Fprintf(out, "%s:\n", title)
	fmt.Fprintln(out, ruleLight)
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func printSite(out io.Writer, in pipeline.Input) {
	printSection(out, "SITE")
	w := newTable(out)
	fmt.Fprintf(w, "  Site:\t%.1f × %.1f m (%.1f m²)\n", in.Site.Width, in.Site.Depth, in.Site.Area())
	fmt.Fprintf(w, "  Location:\t%.4f, %.4f\n", in.Latitude, in.Longitude)
	fmt.Fprintf(w, "  Storeys:\t%d above grade, %d below\n", in.Floors.Above, in.Floors.Below)
	w.Flush()
	fmt.Fprintln(out)
}

func printGrid(out io.Writer, g grid.Grid, class grid.SpanClass) {
	printSection(out, "COLUMN GRID")
	w := newTable(out)
	fmt.Fprintf(w, "  Requested spacing:\t%.2f × %.2f m\n", g.SpanX, g.SpanY)
	fmt.Fprintf(w, "  Column lines:\t%d × %d\n", g.NX, g.NY)
	fmt.Fprintf(w, "  Total columns:\t%d\n", g.TotalColumns)
	fmt.Fprintf(w, "  Actual spacing:\t%.2f × %.2f m\n", g.ActualSpanX, g.ActualSpanY)
	fmt.Fprintf(w, "  Span check:\t%s\n", class)
	w.Flush()
	mark := "✓"
	if class != grid.SpanAdequate {
		mark = "⚠"
	}
	fmt.Fprintf(out, "  %s %s\n", mark, class.Advice())
	fmt.Fprintln(out)
}

func printCapacity(out io.Writer, sec capacity.Section, floors int, basis pipeline.Basis, r capacity.Result) {
	printSection(out, "WORST-CASE COLUMN")
	w := newTable(out)
	fmt.Fprintf(w, "  Section:\t%.0f × %.0f cm\n", sec.Width, sec.Depth)
	fmt.Fprintf(w, "  Concrete:\t%s\n", sec.Grade)
	fmt.Fprintf(w, "  Storeys carried:\t%d\n", floors)
	fmt.Fprintf(w, "  Tributary basis:\t%s\n", basis)
	fmt.Fprintf(w, "  Tributary area:\t%.2f m²\n", r.TributaryArea)
	fmt.Fprintf(w, "  Demand (Pu):\t%.2f t\n", r.Demand)
	fmt.Fprintf(w, "  Capacity (φPn):\t%.2f t\n", r.Capacity)
	fmt.Fprintf(w, "  D/C ratio:\t%.4f\n", r.Ratio)
	w.Flush()
	fmt.Fprintln(out)

	if r.IsSafe {
		fmt.Fprintln(out, diagram.DrawSummaryBox("COLUMN CHECK: SAFE", []string{
			fmt.Sprintf("φPn = %.2f t ≥ Pu = %.2f t ✓", r.Capacity, r.Demand),
		}))
		return
	}
	fmt.Fprintln(out, diagram.DrawSummaryBox("COLUMN CHECK: BLOCKED", []string{
		fmt.Sprintf("Pu = %.2f t > φPn = %.2f t ✗", r.Demand, r.Capacity),
		"Rebar sizing and the cost estimate are locked.",
	}))
	fmt.Fprintln(out, "  Suggestions:")
	for _, s := range r.Suggestions() {
		fmt.Fprintf(out, "    • %s\n", s)
	}
	fmt.Fprintln(out)
}

func printRebar(out io.Writer, c rebar.Config) {
	printSection(out, "LONGITUDINAL REINFORCEMENT")
	w := newTable(out)
	fmt.Fprintf(w, "  Bar size:\t%s (%s, %.2f cm²)\n", c.Bar, c.Bar.Metric(), c.Bar.Area())
	fmt.Fprintf(w, "  As,min (1%%):\t%.2f cm²\n", c.MinSteelArea)
	fmt.Fprintf(w, "  Bars:\t%s\n", c.Label())
	fmt.Fprintf(w, "  As provided:\t%.2f cm²\n", c.ProvidedArea)
	fmt.Fprintf(w, "  Steel ratio:\t%.3f %%\n", c.SteelRatio*100)
	w.Flush()
	fmt.Fprintln(out)
}

func printClimate(out io.Writer, s climate.Selection) {
	printSection(out, "CLIMATE AND ENVELOPE")
	w := newTable(out)
	fmt.Fprintf(w, "  Zone:\t%s (%s)\n", s.Profile.Zone, s.Profile.Description)
	fmt.Fprintf(w, "  Strategy:\t%s\n", s.Profile.Strategy)
	fmt.Fprintf(w, "  Recommended:\t%s glazing, %s\n", s.Profile.RecommendedGlass.Name(), s.Profile.RecommendedColor)
	fmt.Fprintf(w, "  Glazing:\t%s (U = %.1f W/m²K)\n", s.Glazing.Name(), s.UValue)
	fmt.Fprintf(w, "  Wall finish:\t%s\n", s.Wall.Name())
	fmt.Fprintf(w, "  Energy score:\t%.0f / 100\n", s.EnergyScore)
	fmt.Fprintf(w, "  Wall area:\t%.1f m²\n", s.Facade.WallArea)
	fmt.Fprintf(w, "  Window area:\t%.1f m²\n", s.Facade.WindowArea)
	fmt.Fprintf(w, "  Facade cost:\t%s\n", money(s.Facade.Cost))
	w.Flush()
	fmt.Fprintln(out)
}

func printCost(out io.Writer, b *cost.Breakdown, p cost.Prices) {
	printSection(out, "COST ESTIMATE")
	w := newTable(out)
	fmt.Fprintln(w, "  Item\tQuantity\tUnit\tRate\tAmount")
	for _, it := range b.Items(p) {
		fmt.Fprintf(w, "  %s\t%.2f\t%s\t%s\t%s\n", it.Description, it.Quantity, it.Unit, money(it.Rate), money(it.Amount))
	}
	fmt.Fprintf(w, "  Total\t\t\t\t%s\n", money(b.TotalCost))
	w.Flush()
	fmt.Fprintln(out)

	w = newTable(out)
	fmt.Fprintf(w, "  Slab volume:\t%.2f m³\n", b.SlabVolume)
	fmt.Fprintf(w, "  Column volume:\t%.2f m³\n", b.ColumnVolume)
	fmt.Fprintf(w, "  Steel weight:\t%.2f t\n", b.SteelWeight)
	fmt.Fprintf(w, "  Floor area:\t%.1f m² (%.1f ping)\n", b.FloorArea, b.FloorArea/cost.M2PerPing)
	fmt.Fprintf(w, "  Unit cost:\t%s per ping\n", money(b.UnitCost))
	w.Flush()
	fmt.Fprintln(out)
}

func printAdvisory(out io.Writer, tags []advisory.Tag, z advisory.ZoningCheck) {
	printSection(out, "DESIGN NOTES")
	for _, t := range tags {
		fmt.Fprintf(out, "  • %s\n", t.Text)
	}
	w := newTable(out)
	fmt.Fprintf(w, "  Max footprint:\t%.1f m²\n", z.MaxFootprint)
	fmt.Fprintf(w, "  Max floor area:\t%.1f m²\n", z.MaxFloorArea)
	fmt.Fprintf(w, "  Proposed floor area:\t%.1f m²\n", z.ProposedFloorArea)
	w.Flush()
	if !z.WithinFloorArea {
		fmt.Fprintln(out, "  ⚠ Proposed floor area exceeds the floor area ratio allowance")
	}
	fmt.Fprintln(out)
}

// printRun prints the full report of one pipeline run.
func printRun(out io.Writer, name string, in pipeline.Input, res *pipeline.Result) {
	printBanner(out, strings.ToUpper(name)+" - PRELIMINARY FRAME DESIGN")
	printSite(out, in)
	printClimate(out, res.Climate)
	printGrid(out, res.Grid, res.SpanClass)
	printCapacity(out, in.Column, in.Floors.Total(), res.Config.Basis, res.Capacity)
	if res.Rebar != nil {
		printRebar(out, *res.Rebar)
	}
	if res.Cost != nil {
		printCost(out, res.Cost, in.Prices)
	}
	printAdvisory(out, res.Tags, res.Zoning)
}

func printOutcomes(out io.Writer, outcomes []report.Outcome) {
	printSection(out, "SCENARIOS")
	w := newTable(out)
	fmt.Fprintln(w, "  Row\tName\tState\tD/C\tBars\tTotal cost\tUnit cost")
	var safe, blocked, invalid int
	for _, o := range outcomes {
		res := o.Result
		switch {
		case res == nil:
			invalid++
			fmt.Fprintf(w, "  %d\t%s\tinvalid\t-\t-\t-\t-\n", o.Row, o.Name)
		case res.Cost == nil:
			blocked++
			fmt.Fprintf(w, "  %d\t%s\t%s\t%.4f\t-\t-\t-\n", o.Row, o.Name, res.State, res.Capacity.Ratio)
		default:
			safe++
			fmt.Fprintf(w, "  %d\t%s\t%s\t%.4f\t%s\t%s\t%s\n", o.Row, o.Name, res.State, res.Capacity.Ratio,
				res.Rebar.Label(), money(res.Cost.TotalCost), money(res.Cost.UnitCost))
		}
	}
	w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %d safe, %d blocked, %d invalid\n", safe, blocked, invalid)
	for _, o := range outcomes {
		if o.Result == nil {
			fmt.Fprintf(out, "  ✗ %v\n", o.Err)
		}
	}
	fmt.Fprintln(out)
}

// money formats an amount with thousands separators and no decimals.
func money(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.0f", v)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
