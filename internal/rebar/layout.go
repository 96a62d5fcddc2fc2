package rebar

// Point is a bar center in section coordinates (cm, origin at the
// lower-left corner of the column).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout places the bars around a width × depth section for drawing.
// The four corner bars come first; the remaining bars are added in
// opposite-face pairs, alternating between the horizontal faces (top and
// bottom) and the vertical faces, evenly spaced between the corners.
func (c Config) Layout(width, depth float64) []Point {
	if c.Count < 4 {
		return nil
	}

	x0, x1 := Cover, width-Cover
	y0, y1 := Cover, depth-Cover

	pts := []Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}

	pairs := (c.Count - 4) / 2
	hPairs := (pairs + 1) / 2
	vPairs := pairs / 2

	for k := 1; k <= hPairs; k++ {
		x := x0 + float64(k)*(x1-x0)/float64(hPairs+1)
		pts = append(pts, Point{x, y0}, Point{x, y1})
	}
	for k := 1; k <= vPairs; k++ {
		y := y0 + float64(k)*(y1-y0)/float64(vPairs+1)
		pts = append(pts, Point{x0, y}, Point{x1, y})
	}
	return pts
}
