package project

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gorcframe/internal/nscp"
)

// Input ranges accepted from users.
const (
	MaxSiteSize    = 500.0
	MinSpan        = 3.0
	MaxSpan        = 12.0
	MinColumnSize  = 50.0
	MaxColumnSize  = 120.0
	MinCoverage    = 30.0
	MaxCoverage    = 100.0
	MinFloorAreaRt = 100.0
	MaxFloorAreaRt = 1000.0
)

// ValidationError lists every problem found in a project.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid project: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) addf(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Validate checks every input against its accepted range. The pipeline
// itself trusts its input, so this is the only range check.
func (p *Project) Validate() error {
	e := &ValidationError{}

	// Range checks below are meaningless for NaN and ±Inf, so those stop here.
	for _, f := range p.floatFields() {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			e.addf("%s must be a finite number, got %v", f.name, f.v)
		}
	}
	if len(e.Problems) > 0 {
		return e
	}

	if p.Site.Width <= 0 || p.Site.Depth <= 0 {
		e.addf("site dimensions must be positive: width=%.2f, depth=%.2f", p.Site.Width, p.Site.Depth)
	}
	if p.Site.Width > MaxSiteSize || p.Site.Depth > MaxSiteSize {
		e.addf("site dimensions cannot exceed %.0f m: width=%.2f, depth=%.2f", MaxSiteSize, p.Site.Width, p.Site.Depth)
	}
	if p.Site.Latitude < -90 || p.Site.Latitude > 90 {
		e.addf("latitude %.4f out of range [-90, 90]", p.Site.Latitude)
	}
	if p.Site.Longitude < -180 || p.Site.Longitude > 180 {
		e.addf("longitude %.4f out of range [-180, 180]", p.Site.Longitude)
	}

	if p.Floors.Above < 1 {
		e.addf("floors above grade must be at least 1, got %d", p.Floors.Above)
	}
	if p.Floors.Below < 0 {
		e.addf("floors below grade cannot be negative, got %d", p.Floors.Below)
	}

	for _, s := range []struct {
		name string
		v    float64
	}{{"span_x", p.Grid.SpanX}, {"span_y", p.Grid.SpanY}} {
		if s.v < MinSpan || s.v > MaxSpan {
			e.addf("%s %.2f m out of range [%.0f, %.0f]", s.name, s.v, MinSpan, MaxSpan)
		}
	}

	for _, s := range []struct {
		name string
		v    float64
	}{{"column width", p.Column.Width}, {"column depth", p.Column.Depth}} {
		if s.v < MinColumnSize || s.v > MaxColumnSize {
			e.addf("%s %.0f cm out of range [%.0f, %.0f]", s.name, s.v, MinColumnSize, MaxColumnSize)
		}
	}
	if _, err := nscp.ParseConcreteGrade(p.Column.Fc); err != nil {
		e.addf("%v", err)
	}
	if p.Column.Bar == 0 {
		e.addf("column bar size is required")
	}

	if p.Prices.Concrete < 0 || p.Prices.Steel < 0 {
		e.addf("unit prices cannot be negative: concrete=%.2f, steel=%.2f", p.Prices.Concrete, p.Prices.Steel)
	}

	o := p.Occupants
	if o.Adults < 0 || o.Elderly < 0 || o.Disabled < 0 || o.Children < 0 {
		e.addf("occupant counts cannot be negative")
	}

	if p.Zoning.CoverageRatio < MinCoverage || p.Zoning.CoverageRatio > MaxCoverage {
		e.addf("coverage ratio %.0f%% out of range [%.0f, %.0f]", p.Zoning.CoverageRatio, MinCoverage, MaxCoverage)
	}
	if p.Zoning.FloorAreaRatio < MinFloorAreaRt || p.Zoning.FloorAreaRatio > MaxFloorAreaRt {
		e.addf("floor area ratio %.0f%% out of range [%.0f, %.0f]", p.Zoning.FloorAreaRatio, MinFloorAreaRt, MaxFloorAreaRt)
	}

	if len(e.Problems) > 0 {
		return e
	}
	return nil
}

type namedFloat struct {
	name string
	v    float64
}

func (p *Project) floatFields() []namedFloat {
	return []namedFloat{
		{"site width", p.Site.Width},
		{"site depth", p.Site.Depth},
		{"latitude", p.Site.Latitude},
		{"longitude", p.Site.Longitude},
		{"span_x", p.Grid.SpanX},
		{"span_y", p.Grid.SpanY},
		{"column width", p.Column.Width},
		{"column depth", p.Column.Depth},
		{"concrete price", p.Prices.Concrete},
		{"steel price", p.Prices.Steel},
		{"coverage ratio", p.Zoning.CoverageRatio},
		{"floor area ratio", p.Zoning.FloorAreaRatio},
	}
}
