package pipeline

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gorcframe/internal/advisory"
	"github.com/alexiusacademia/gorcframe/internal/capacity"
	"github.com/alexiusacademia/gorcframe/internal/climate"
	"github.com/alexiusacademia/gorcframe/internal/cost"
	"github.com/alexiusacademia/gorcframe/internal/grid"
	"github.com/alexiusacademia/gorcframe/internal/nscp"
	"github.com/alexiusacademia/gorcframe/internal/rebar"
)

// Floors splits the storey count at grade.
type Floors struct {
	Above int `json:"above" yaml:"above"`
	Below int `json:"below" yaml:"below"`
}

// Total returns every storey carried by the columns.
func (f Floors) Total() int {
	return f.Above + f.Below
}

// Input is a snapshot of every value the pipeline reads. Inputs are
// expected to be validated by the caller.
type Input struct {
	Site      grid.Site `json:"site"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Floors    Floors    `json:"floors"`

	// Nominal column spacing (m)
	SpanX float64 `json:"span_x"`
	SpanY float64 `json:"span_y"`

	Column capacity.Section `json:"column"`
	Bar    rebar.BarSize    `json:"bar"`

	Glazing climate.Glazing `json:"glazing"`
	Wall    climate.Wall    `json:"wall"`
	Prices  cost.Prices     `json:"prices"`

	Occupants advisory.Occupants `json:"occupants"`
	Zoning    advisory.Zoning    `json:"zoning"`
}

// Basis selects which spacing loads the worst-case column.
type Basis int

const (
	// BasisActual uses the spacing after the grid correction.
	BasisActual Basis = iota
	// BasisNominal uses the spacing requested by the designer.
	BasisNominal
)

func (b Basis) String() string {
	if b == BasisNominal {
		return "nominal"
	}
	return "actual"
}

// ParseBasis parses "actual" or "nominal".
func ParseBasis(s string) (Basis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "actual", "":
		return BasisActual, nil
	case "nominal":
		return BasisNominal, nil
	}
	return 0, fmt.Errorf("unknown tributary basis %q (expected actual or nominal)", s)
}

// MarshalText serializes the basis by name.
func (b Basis) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText parses a basis name.
func (b *Basis) UnmarshalText(text []byte) error {
	v, err := ParseBasis(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Spans returns the tributary spans for the worst-case column.
func (b Basis) Spans(g grid.Grid) (float64, float64) {
	if b == BasisNominal {
		return g.SpanX, g.SpanY
	}
	return g.ActualSpanX, g.ActualSpanY
}

// Config holds the pipeline options that are not design inputs.
type Config struct {
	Basis Basis `json:"basis" yaml:"basis"`
}

// DefaultConfig loads the column from the corrected grid spacing.
func DefaultConfig() Config {
	return Config{Basis: BasisActual}
}

// DefaultInput returns the reference project: a 12 × 20 m lot in Taipei,
// seven storeys on a 6 × 5 m grid with 60 × 60 cm f'c 280 columns.
func DefaultInput() Input {
	const lat = 25.03
	return Input{
		Site:      grid.Site{Width: 12, Depth: 20},
		Latitude:  lat,
		Longitude: 121.56,
		Floors:    Floors{Above: 7},
		SpanX:     6,
		SpanY:     5,
		Column:    capacity.Section{Width: 60, Depth: 60, Grade: nscp.FC280},
		Bar:       rebar.Bar8,
		Glazing:   climate.DefaultGlazing(climate.Classify(lat)),
		Wall:      climate.DefaultWall,
		Prices:    cost.DefaultPrices(),
		Occupants: advisory.Occupants{Adults: 10, Elderly: 2},
		Zoning:    advisory.DefaultZoning(),
	}
}
