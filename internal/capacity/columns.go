package capacity

import "github.com/alexiusacademia/gorcframe/internal/grid"

// ColumnStatus is the display status of one grid column.
type ColumnStatus struct {
	grid.Column
	Critical bool `json:"critical"`
	Safe     bool `json:"safe"`
}

// Statuses marks every column of g for the stress map. Only the worst-case
// interior column carries the verdict; the rest are reported safe because
// they are never analyzed individually.
func Statuses(g grid.Grid, r Result) []ColumnStatus {
	ci, cj := g.Center()
	cols := g.Columns()
	out := make([]ColumnStatus, len(cols))
	for k, c := range cols {
		critical := c.I == ci && c.J == cj
		out[k] = ColumnStatus{
			Column:   c,
			Critical: critical,
			Safe:     !critical || r.IsSafe,
		}
	}
	return out
}
