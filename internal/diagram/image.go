package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gorcframe/internal/capacity"
	"github.com/alexiusacademia/gorcframe/internal/grid"
	"github.com/alexiusacademia/gorcframe/internal/rebar"
)

var (
	colorConcrete = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	colorBeam     = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	colorSafe     = color.RGBA{R: 34, G: 139, B: 34, A: 255}
	colorBlocked  = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	colorSteel    = color.RGBA{R: 139, G: 69, B: 19, A: 255}
)

// ExportGridPlan exports the site outline, beam lines and columns to an
// image file. The format follows the file extension.
func ExportGridPlan(g grid.Grid, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Column Grid %d × %d (%.2f × %.2f m bays)",
		g.NX, g.NY, g.ActualSpanX, g.ActualSpanY)
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	if err := addPlanFrame(p, g); err != nil {
		return err
	}

	cols, err := plotter.NewScatter(columnCenters(g, nil))
	if err != nil {
		return err
	}
	cols.GlyphStyle.Color = colorConcrete
	cols.GlyphStyle.Radius = vg.Points(5)
	cols.GlyphStyle.Shape = draw.BoxGlyph{}
	p.Add(cols)
	p.Legend.Add(fmt.Sprintf("columns (%d)", g.TotalColumns), cols)

	return save(p, filename, 6*vg.Inch, planHeight(g, 6*vg.Inch))
}

// ExportStressMap exports the grid plan with the worst-case column drawn
// green when safe and red when over capacity.
func ExportStressMap(g grid.Grid, statuses []capacity.ColumnStatus, r capacity.Result, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Stress Map: %s", r)
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	if err := addPlanFrame(p, g); err != nil {
		return err
	}

	others := columnCenters(g, func(i, j int) bool {
		return !isCritical(statuses, i, j)
	})
	if len(others) > 0 {
		idle, err := plotter.NewScatter(others)
		if err != nil {
			return err
		}
		idle.GlyphStyle.Color = colorConcrete
		idle.GlyphStyle.Radius = vg.Points(5)
		idle.GlyphStyle.Shape = draw.BoxGlyph{}
		p.Add(idle)
		p.Legend.Add("not analyzed", idle)
	}

	crit, err := plotter.NewScatter(columnCenters(g, func(i, j int) bool {
		return isCritical(statuses, i, j)
	}))
	if err != nil {
		return err
	}
	crit.GlyphStyle.Radius = vg.Points(7)
	crit.GlyphStyle.Shape = draw.BoxGlyph{}
	if r.IsSafe {
		crit.GlyphStyle.Color = colorSafe
		p.Legend.Add("worst case: safe", crit)
	} else {
		crit.GlyphStyle.Color = colorBlocked
		p.Legend.Add("worst case: over capacity", crit)
	}
	p.Add(crit)

	return save(p, filename, 6*vg.Inch, planHeight(g, 6*vg.Inch))
}

// ExportColumnSection exports the column cross-section with its bar
// layout to an image file.
func ExportColumnSection(sec capacity.Section, cfg rebar.Config, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Column %.0f × %.0f cm, %s", sec.Width, sec.Depth, cfg.Label())
	p.X.Label.Text = "Width (cm)"
	p.Y.Label.Text = "Depth (cm)"

	outline, err := plotter.NewPolygon(rect(0, 0, sec.Width, sec.Depth))
	if err != nil {
		return err
	}
	outline.Color = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	outline.LineStyle.Width = vg.Points(2)
	outline.LineStyle.Color = color.Black
	p.Add(outline)

	cover, err := plotter.NewLine(closed(rect(rebar.Cover, rebar.Cover, sec.Width-rebar.Cover, sec.Depth-rebar.Cover)))
	if err != nil {
		return err
	}
	cover.LineStyle.Color = color.Gray{Y: 128}
	cover.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(cover)

	layout := cfg.Layout(sec.Width, sec.Depth)
	pts := make(plotter.XYs, len(layout))
	for k, b := range layout {
		pts[k] = plotter.XY{X: b.X, Y: b.Y}
	}
	bars, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	bars.GlyphStyle.Color = colorSteel
	bars.GlyphStyle.Radius = vg.Points(6)
	bars.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(bars)
	p.Legend.Add(fmt.Sprintf("%s %s, ρ = %.2f%%", cfg.Label(), cfg.Bar.Metric(), cfg.SteelRatio*100), bars)

	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: sec.Width / 2, Y: sec.Depth / 2}},
		Labels: []string{sec.Grade.String()},
	})
	if err != nil {
		return err
	}
	p.Add(lbl)

	margin := sec.Width * 0.1
	p.X.Min, p.X.Max = -margin, sec.Width+margin
	p.Y.Min, p.Y.Max = -margin, sec.Depth+margin

	return save(p, filename, 6*vg.Inch, 6*vg.Inch)
}

// addPlanFrame draws the site boundary and a beam along every column line.
func addPlanFrame(p *plot.Plot, g grid.Grid) error {
	site, err := plotter.NewLine(closed(rect(0, 0, g.Site.Width, g.Site.Depth)))
	if err != nil {
		return err
	}
	site.LineStyle.Width = vg.Points(1.5)
	site.LineStyle.Color = color.Black
	site.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	p.Add(site)
	p.Legend.Add("site", site)

	half := grid.Footprint / 2
	if len(g.Xs) == 0 || len(g.Ys) == 0 {
		return nil
	}
	x0, x1 := g.Xs[0]+half, g.Xs[len(g.Xs)-1]+half
	y0, y1 := g.Ys[0]+half, g.Ys[len(g.Ys)-1]+half

	var beams []plotter.XYs
	for _, y := range g.Ys {
		beams = append(beams, plotter.XYs{{X: x0, Y: y + half}, {X: x1, Y: y + half}})
	}
	for _, x := range g.Xs {
		beams = append(beams, plotter.XYs{{X: x + half, Y: y0}, {X: x + half, Y: y1}})
	}
	for k, b := range beams {
		l, err := plotter.NewLine(b)
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(1)
		l.LineStyle.Color = colorBeam
		p.Add(l)
		if k == 0 {
			p.Legend.Add("beams", l)
		}
	}

	margin := 0.05 * max(g.Site.Width, g.Site.Depth)
	p.X.Min, p.X.Max = -margin, g.Site.Width+margin
	p.Y.Min, p.Y.Max = -margin, g.Site.Depth+margin
	return nil
}

// columnCenters returns the footprint centers of the columns accepted by
// keep, or every column when keep is nil.
func columnCenters(g grid.Grid, keep func(i, j int) bool) plotter.XYs {
	half := grid.Footprint / 2
	var pts plotter.XYs
	for _, c := range g.Columns() {
		if keep == nil || keep(c.I, c.J) {
			pts = append(pts, plotter.XY{X: c.X + half, Y: c.Y + half})
		}
	}
	return pts
}

func isCritical(statuses []capacity.ColumnStatus, i, j int) bool {
	for _, s := range statuses {
		if s.I == i && s.J == j {
			return s.Critical
		}
	}
	return false
}

func rect(x0, y0, x1, y1 float64) plotter.XYs {
	return plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func closed(pts plotter.XYs) plotter.XYs {
	return append(pts, pts[0])
}

// planHeight keeps the plan roughly to scale.
func planHeight(g grid.Grid, width vg.Length) vg.Length {
	if g.Site.Width <= 0 {
		return width
	}
	ratio := g.Site.Depth / g.Site.Width
	ratio = min(max(ratio, 0.5), 2.0)
	return vg.Length(float64(width) * ratio)
}

// save writes the plot, choosing the format from the file extension.
// Unknown extensions get ".png" appended.
func save(p *plot.Plot, filename string, width, height vg.Length) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}
	if err := p.Save(width, height, filename); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	return nil
}
