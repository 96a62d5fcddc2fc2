package grid

import "math"

const (
	// Footprint is the plan size of a column as drawn on the grid (m).
	// It only shifts the drawn positions; span math ignores it.
	Footprint = 0.6

	// MinLastBayRatio is the fraction of the site dimension that the
	// nominal bays must cover before an extra column line is added.
	MinLastBayRatio = 0.8

	// Span limits for the advisory classification (m)
	MaxAdequateSpan = 8.0
	MinAdequateSpan = 4.0
)

// Site is the rectangular building lot in plan (m).
type Site struct {
	Width float64 `json:"width" yaml:"width"`
	Depth float64 `json:"depth" yaml:"depth"`
}

// Area returns the lot area in m².
func (s Site) Area() float64 {
	return s.Width * s.Depth
}

// Perimeter returns the lot perimeter in m.
func (s Site) Perimeter() float64 {
	return 2 * (s.Width + s.Depth)
}

// Grid is a rectangular column grid laid over a site.
// A Grid is a value: Plan builds a fresh one on every call and nothing
// in this module modifies it afterwards.
type Grid struct {
	Site Site `json:"site"`

	// Nominal spacing requested by the designer (m)
	SpanX float64 `json:"span_x"`
	SpanY float64 `json:"span_y"`

	// Column lines along each axis
	NX int `json:"nx"`
	NY int `json:"ny"`

	// Drawn column positions (lower-left corner of each footprint, m)
	Xs []float64 `json:"xs"`
	Ys []float64 `json:"ys"`

	// Spacing after the column lines are spread over the full site (m)
	ActualSpanX float64 `json:"actual_span_x"`
	ActualSpanY float64 `json:"actual_span_y"`

	TotalColumns int `json:"total_columns"`
}

// Column is a single grid column, addressed by its line indices.
type Column struct {
	I int     `json:"i"`
	J int     `json:"j"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Plan lays out a column grid for the site from the nominal spacing.
//
// Each axis gets floor(dim/span)+1 column lines. When the nominal bays
// then cover less than 80% of the dimension, one more line is added so
// the last bay is never much shorter than the nominal span.
func Plan(site Site, spanX, spanY float64) Grid {
	nx := columnLines(site.Width, spanX)
	ny := columnLines(site.Depth, spanY)

	return Grid{
		Site:         site,
		SpanX:        spanX,
		SpanY:        spanY,
		NX:           nx,
		NY:           ny,
		Xs:           linspace(0, site.Width-Footprint, nx),
		Ys:           linspace(0, site.Depth-Footprint, ny),
		ActualSpanX:  actualSpan(site.Width, nx),
		ActualSpanY:  actualSpan(site.Depth, ny),
		TotalColumns: nx * ny,
	}
}

func columnLines(dim, span float64) int {
	n := int(math.Floor(dim/span)) + 1
	if float64(n-1)*span < MinLastBayRatio*dim {
		n++
	}
	return n
}

// actualSpan spreads n column lines over dim. With a single line there
// is no bay, so the whole dimension is reported.
func actualSpan(dim float64, n int) float64 {
	if n > 1 {
		return dim / float64(n-1)
	}
	return dim
}

// linspace returns n evenly spaced values over [start, stop].
func linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Center returns the line indices of the worst-case interior column.
func (g Grid) Center() (int, int) {
	return g.NX / 2, g.NY / 2
}

// Columns lists every column, x lines outermost.
func (g Grid) Columns() []Column {
	cols := make([]Column, 0, g.TotalColumns)
	for i, x := range g.Xs {
		for j, y := range g.Ys {
			cols = append(cols, Column{I: i, J: j, X: x, Y: y})
		}
	}
	return cols
}

// MaxActualSpan returns the governing bay length.
func (g Grid) MaxActualSpan() float64 {
	return math.Max(g.ActualSpanX, g.ActualSpanY)
}
