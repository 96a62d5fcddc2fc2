package rebar

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gorcframe/internal/capacity"
	"github.com/alexiusacademia/gorcframe/internal/nscp"
)

// Cover is the distance from the column face to the bar centers (cm),
// used only when laying bars out for drawings.
const Cover = 4.0

// Config is the longitudinal reinforcement of a column.
type Config struct {
	Bar          BarSize `json:"bar"`
	Count        int     `json:"count"`
	MinSteelArea float64 `json:"min_steel_area"` // cm²
	ProvidedArea float64 `json:"provided_area"`  // cm²
	SteelRatio   float64 `json:"steel_ratio"`    // As / Ag
}

// Size selects the number of bars of the given size for the section.
//
// The count meets the 1% minimum steel ratio, is at least four bars and
// is rounded up to an even number so the bars sit symmetrically.
// It refuses to run unless the column verdict is safe and was computed
// for sec.
func Size(verdict capacity.Result, sec capacity.Section, bar BarSize) (Config, error) {
	if err := verdict.RequireFor(sec); err != nil {
		return Config{}, err
	}

	ag := sec.GrossArea()
	asMin := nscp.RhoMinColumn * ag

	count := int(math.Ceil(asMin / bar.Area()))
	if count < nscp.MinBarsTied {
		count = nscp.MinBarsTied
	}
	if count%2 != 0 {
		count++
	}

	provided := float64(count) * bar.Area()
	return Config{
		Bar:          bar,
		Count:        count,
		MinSteelArea: asMin,
		ProvidedArea: provided,
		SteelRatio:   provided / ag,
	}, nil
}

// Label returns the schedule notation, e.g. "8-#8".
func (c Config) Label() string {
	return fmt.Sprintf("%d-%s", c.Count, c.Bar)
}
