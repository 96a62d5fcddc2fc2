// Package advisory produces design notes that sit beside the structural
// pipeline: occupant-driven accessibility and safety tags, and a zoning
// envelope check. Nothing here feeds the structural or cost stages.
package advisory

import (
	"math"

	"github.com/alexiusacademia/gorcframe/internal/climate"
)

// Occupants describes who will use the building.
type Occupants struct {
	Adults   int `json:"adults" yaml:"adults"`
	Elderly  int `json:"elderly" yaml:"elderly"`
	Disabled int `json:"disabled" yaml:"disabled"`
	Children int `json:"children" yaml:"children"`
}

// NeedsAccessibility reports whether barrier-free provisions apply.
func (o Occupants) NeedsAccessibility() bool {
	return o.Elderly > 0 || o.Disabled > 0
}

// NeedsChildSafety reports whether child-safety provisions apply.
func (o Occupants) NeedsChildSafety() bool {
	return o.Children > 0
}

// Tag is a generated design requirement.
type Tag struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// Tags returns the design requirements implied by the occupants and the
// site latitude.
func Tags(o Occupants, latitude float64) []Tag {
	var tags []Tag
	if o.NeedsAccessibility() {
		tags = append(tags, Tag{"accessible-ramp", "Barrier-free access: ramps at 1:12, grab bars in toilets, door clear width > 90 cm"})
	}
	if o.NeedsChildSafety() {
		tags = append(tags, Tag{"fall-protection", "Child safety: railings > 110 cm with gaps < 10 cm, protected outlets"})
	}
	lat := math.Abs(latitude)
	if lat < climate.TropicLatitude {
		tags = append(tags, Tag{"sun-shading", "Sun-shading louvers on exposed facades"})
	}
	if lat > climate.TemperateLatitude {
		tags = append(tags, Tag{"heating", "Indoor heating system"})
	}
	return tags
}
