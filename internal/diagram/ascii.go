package diagram

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alexiusacademia/gorcframe/internal/capacity"
	"github.com/alexiusacademia/gorcframe/internal/grid"
	"github.com/alexiusacademia/gorcframe/internal/rebar"
)

// Plan drawing symbols
const (
	SymbolColumn   = "●"
	SymbolIdle     = "○"
	SymbolOverload = "✗"
)

// bayChars is the drawn length of one bay between column symbols.
const bayChars = 7

// AxisLabel returns the structural grid label of a y line: A, B, ... Z,
// then AA, AB and so on.
func AxisLabel(j int) string {
	if j < 26 {
		return string(rune('A' + j))
	}
	return string(rune('A'+j/26-1)) + string(rune('A'+j%26))
}

// ColumnLabel returns the grid reference of a column, e.g. "C2".
func ColumnLabel(i, j int) string {
	return AxisLabel(j) + strconv.Itoa(i+1)
}

func writeTitle(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString("  " + title + "\n")
	sb.WriteString("  " + strings.Repeat("─", utf8.RuneCountInString(title)) + "\n")
	sb.WriteString("\n")
}

// drawPlan draws the column lines with north up: numbered x lines across
// the top, lettered y lines down the left side.
func drawPlan(sb *strings.Builder, nx, ny int, symbol func(i, j int) string) {
	sb.WriteString("     ")
	for i := 0; i < nx; i++ {
		label := strconv.Itoa(i + 1)
		sb.WriteString(label)
		if i < nx-1 {
			sb.WriteString(strings.Repeat(" ", max(1, bayChars+1-len(label))))
		}
	}
	sb.WriteString("\n")

	beam := strings.Repeat("─", bayChars)
	gap := strings.Repeat(" ", bayChars)

	for j := ny - 1; j >= 0; j-- {
		sb.WriteString(fmt.Sprintf("  %-2s ", AxisLabel(j)))
		for i := 0; i < nx; i++ {
			if i > 0 {
				sb.WriteString(beam)
			}
			sb.WriteString(symbol(i, j))
		}
		sb.WriteString("\n")

		if j > 0 {
			sb.WriteString("     ")
			for i := 0; i < nx; i++ {
				if i > 0 {
					sb.WriteString(gap)
				}
				sb.WriteString("│")
			}
			sb.WriteString("\n")
		}
	}
}

// DrawGridPlan creates an ASCII plan of the column grid
func DrawGridPlan(g grid.Grid) string {
	var sb strings.Builder

	writeTitle(&sb, "GRID PLAN")
	drawPlan(&sb, g.NX, g.NY, func(int, int) string { return SymbolColumn })

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Site %.1f × %.1f m, %d × %d = %d columns\n",
		g.Site.Width, g.Site.Depth, g.NX, g.NY, g.TotalColumns))
	sb.WriteString(fmt.Sprintf("  Bays %.2f × %.2f m (requested %.2f × %.2f m)\n",
		g.ActualSpanX, g.ActualSpanY, g.SpanX, g.SpanY))

	return sb.String()
}

// DrawStressMap marks the worst-case column on the grid plan with its
// verdict. Columns that are not analyzed are drawn hollow.
func DrawStressMap(g grid.Grid, statuses []capacity.ColumnStatus, r capacity.Result) string {
	var sb strings.Builder

	type key struct{ i, j int }
	marks := make(map[key]string, len(statuses))
	critical := ""
	for _, s := range statuses {
		switch {
		case !s.Critical:
			marks[key{s.I, s.J}] = SymbolIdle
		case s.Safe:
			marks[key{s.I, s.J}] = SymbolColumn
			critical = ColumnLabel(s.I, s.J)
		default:
			marks[key{s.I, s.J}] = SymbolOverload
			critical = ColumnLabel(s.I, s.J)
		}
	}

	writeTitle(&sb, "STRESS MAP")
	drawPlan(&sb, g.NX, g.NY, func(i, j int) string {
		if m, ok := marks[key{i, j}]; ok {
			return m
		}
		return SymbolIdle
	})

	sb.WriteString("\n")
	if critical != "" {
		sb.WriteString(fmt.Sprintf("  Column %s: %s\n", critical, r))
	}
	sb.WriteString(fmt.Sprintf("  %s not analyzed  %s safe  %s over capacity\n",
		SymbolIdle, SymbolColumn, SymbolOverload))

	return sb.String()
}

// DrawColumnSection creates an ASCII cross-section of the column with
// its longitudinal bars.
func DrawColumnSection(sec capacity.Section, cfg rebar.Config) string {
	var sb strings.Builder

	// Scale factors for ASCII drawing (characters are about twice as
	// tall as they are wide)
	widthChars := 28
	heightChars := int(math.Round(float64(widthChars) / 2 * sec.Depth / sec.Width))
	heightChars = min(max(heightChars, 6), 24)

	cells := make([][]rune, heightChars)
	for r := range cells {
		cells[r] = []rune(strings.Repeat(" ", widthChars))
	}

	// Cover line
	cx := int(math.Round(rebar.Cover / sec.Width * float64(widthChars-1)))
	cy := int(math.Round(rebar.Cover / sec.Depth * float64(heightChars-1)))
	for c := cx; c < widthChars-cx; c++ {
		cells[cy][c] = '·'
		cells[heightChars-1-cy][c] = '·'
	}
	for r := cy; r < heightChars-cy; r++ {
		cells[r][cx] = '·'
		cells[r][widthChars-1-cx] = '·'
	}

	for _, p := range cfg.Layout(sec.Width, sec.Depth) {
		c := int(math.Round(p.X / sec.Width * float64(widthChars-1)))
		r := heightChars - 1 - int(math.Round(p.Y/sec.Depth*float64(heightChars-1)))
		cells[r][c] = '●'
	}

	writeTitle(&sb, "COLUMN SECTION")

	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", widthChars)))
	for r, row := range cells {
		sb.WriteString(fmt.Sprintf("  │%s│", string(row)))
		if r == heightChars/2 {
			sb.WriteString(fmt.Sprintf("  %.0f cm", sec.Depth))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", widthChars)))
	sb.WriteString(fmt.Sprintf("  %s%.0f cm\n", strings.Repeat(" ", widthChars/2-2), sec.Width))

	// Legend
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  ●●● = %s (%s), As = %.2f cm², ρ = %.2f%%\n",
		cfg.Label(), cfg.Bar.Metric(), cfg.ProvidedArea, cfg.SteelRatio*100))
	sb.WriteString(fmt.Sprintf("  ··· = bar centers at %.1f cm from the faces\n", rebar.Cover))
	sb.WriteString(fmt.Sprintf("  %s\n", sec.Grade))

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	width := utf8.RuneCountInString(title)
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}

	border := strings.Repeat("═", width+4)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", width, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", width, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
