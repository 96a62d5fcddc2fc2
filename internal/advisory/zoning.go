package advisory

// Zoning holds the statutory lot limits, both in percent of the lot area.
type Zoning struct {
	CoverageRatio  float64 `json:"coverage_ratio" yaml:"coverage_ratio"`     // building coverage (%)
	FloorAreaRatio float64 `json:"floor_area_ratio" yaml:"floor_area_ratio"` // FAR (%)
}

// DefaultZoning is a typical urban residential lot.
func DefaultZoning() Zoning {
	return Zoning{CoverageRatio: 60, FloorAreaRatio: 240}
}

// ZoningCheck compares a proposed mass against the lot limits.
type ZoningCheck struct {
	MaxFootprint      float64 `json:"max_footprint"`       // m²
	MaxFloorArea      float64 `json:"max_floor_area"`      // m²
	ProposedFloorArea float64 `json:"proposed_floor_area"` // m², above grade
	WithinFloorArea   bool    `json:"within_floor_area"`
}

// CheckZoning evaluates floorsAbove storeys of footprint m² on a lot of
// siteArea m². Below-grade floors do not count towards the FAR.
func CheckZoning(z Zoning, siteArea, footprint float64, floorsAbove int) ZoningCheck {
	c := ZoningCheck{
		MaxFootprint:      siteArea * z.CoverageRatio / 100,
		MaxFloorArea:      siteArea * z.FloorAreaRatio / 100,
		ProposedFloorArea: footprint * float64(floorsAbove),
	}
	c.WithinFloorArea = c.ProposedFloorArea <= c.MaxFloorArea
	return c
}
