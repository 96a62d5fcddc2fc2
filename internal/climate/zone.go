package climate

import (
	"fmt"
	"math"
)

// Latitude thresholds (absolute degrees)
const (
	TropicLatitude    = 23.5
	TemperateLatitude = 40.0
)

// Zone is a coarse climate classification of the site.
type Zone int

const (
	Tropical Zone = iota
	Subtropical
	Cold
)

// Profile is the fixed design guidance for a zone.
type Profile struct {
	Zone             Zone    `json:"zone"`
	Description      string  `json:"description"`
	Strategy         string  `json:"strategy"`
	RecommendedGlass Glazing `json:"recommended_glazing"`
	RecommendedColor string  `json:"recommended_color"`
}

var profiles = map[Zone]Profile{
	Tropical: {
		Zone:             Tropical,
		Description:      "Hot and humid",
		Strategy:         "Shading, insulation, cross ventilation",
		RecommendedGlass: LowE,
		RecommendedColor: "Light (reflects heat)",
	},
	Subtropical: {
		Zone:             Subtropical,
		Description:      "Four distinct seasons",
		Strategy:         "Moderate insulation, seasonal shading",
		RecommendedGlass: DoublePane,
		RecommendedColor: "Neutral",
	},
	Cold: {
		Zone:             Cold,
		Description:      "Cold and dry",
		Strategy:         "Airtight envelope, reinforced insulation, solar gain",
		RecommendedGlass: TriplePane,
		RecommendedColor: "Dark (absorbs heat)",
	},
}

// Classify returns the zone for a signed latitude. The tropical and
// subtropical bands are open at their upper bound, so 23.5° is
// subtropical and 40° is cold.
func Classify(latitude float64) Zone {
	lat := math.Abs(latitude)
	switch {
	case lat < TropicLatitude:
		return Tropical
	case lat < TemperateLatitude:
		return Subtropical
	default:
		return Cold
	}
}

// Profile returns the design guidance for the zone.
func (z Zone) Profile() Profile {
	return profiles[z]
}

func (z Zone) String() string {
	switch z {
	case Tropical:
		return "tropical"
	case Subtropical:
		return "subtropical"
	case Cold:
		return "cold"
	}
	return fmt.Sprintf("Zone(%d)", int(z))
}

// MarshalText serializes the zone by name.
func (z Zone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}
