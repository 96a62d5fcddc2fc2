package climate

import "github.com/alexiusacademia/gorcframe/internal/nscp"

// Facade split of the gross envelope area
const (
	WallFraction   = 0.7
	WindowFraction = 0.3
)

// Energy score penalties
const (
	coldPoorGlazingU       = 2.0
	coldPoorGlazingPenalty = 20.0
	tropicNoLowEPenalty    = 10.0
)

// Facade is the envelope quantity and cost takeoff.
type Facade struct {
	WallArea   float64 `json:"wall_area"`   // m²
	WindowArea float64 `json:"window_area"` // m²
	WallCost   float64 `json:"wall_cost"`
	GlassCost  float64 `json:"glass_cost"`
	Cost       float64 `json:"cost"`
}

// Selection is the climate stage output.
type Selection struct {
	Latitude    float64 `json:"latitude"`
	Profile     Profile `json:"profile"`
	Glazing     Glazing `json:"glazing"`
	Wall        Wall    `json:"wall"`
	UValue      float64 `json:"u_value"`
	EnergyScore float64 `json:"energy_score"`
	Facade      Facade  `json:"facade"`
}

// FacadeCost returns the facade cost contribution used by the estimate.
func (s Selection) FacadeCost() float64 {
	return s.Facade.Cost
}

// EnergyScore rates the envelope: 100 − 12·U, less 20 for poor glazing
// in a cold zone and less 10 for anything but Low-E in the tropics.
func EnergyScore(z Zone, g Glazing) float64 {
	u := g.UValue()
	score := 100 - u*12
	if z == Cold && u > coldPoorGlazingU {
		score -= coldPoorGlazingPenalty
	}
	if z == Tropical && g != LowE {
		score -= tropicNoLowEPenalty
	}
	return score
}

// FacadeTakeoff prices the envelope of a perimeter × floors box.
func FacadeTakeoff(perimeter float64, floors int, w Wall, g Glazing) Facade {
	gross := perimeter * nscp.FloorHeight * float64(floors)
	f := Facade{
		WallArea:   gross * WallFraction,
		WindowArea: gross * WindowFraction,
	}
	f.WallCost = f.WallArea * w.UnitCost()
	f.GlassCost = f.WindowArea * g.UnitCost()
	f.Cost = f.WallCost + f.GlassCost
	return f
}

// Advise classifies the site and prices the chosen envelope.
func Advise(latitude, perimeter float64, floors int, g Glazing, w Wall) Selection {
	z := Classify(latitude)
	return Selection{
		Latitude:    latitude,
		Profile:     z.Profile(),
		Glazing:     g,
		Wall:        w,
		UValue:      g.UValue(),
		EnergyScore: EnergyScore(z, g),
		Facade:      FacadeTakeoff(perimeter, floors, w, g),
	}
}
