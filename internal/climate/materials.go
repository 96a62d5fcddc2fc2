package climate

import (
	"fmt"
	"strings"
)

// Glazing is a window glass system.
type Glazing int

const (
	SinglePane Glazing = iota + 1
	DoublePane
	LowE
	TriplePane
)

// Wall is an exterior wall finish.
type Wall int

const (
	Paint Wall = iota + 1
	InsulatingPaint
	DryStone
	MetalPanel
)

// Glazings and Walls list the offered options in display order.
var (
	Glazings = []Glazing{SinglePane, DoublePane, LowE, TriplePane}
	Walls    = []Wall{Paint, InsulatingPaint, DryStone, MetalPanel}
)

type glazingSpec struct {
	key    string
	name   string
	cost   float64 // per m² of window
	uValue float64 // W/m²K
	note   string
}

var glazingTable = map[Glazing]glazingSpec{
	SinglePane: {"single", "Single pane glass", 1500, 5.8, "Cheap but energy hungry"},
	DoublePane: {"double", "Insulated double glazing", 3000, 2.8, "Standard acoustic and thermal"},
	LowE:       {"low-e", "Low-E glazing", 4500, 1.6, "Recommended for tropics (blocks radiation)"},
	TriplePane: {"triple", "Airtight triple glazing", 6500, 0.8, "Recommended for cold climates"},
}

type wallSpec struct {
	key  string
	name string
	cost float64 // per m² of wall
}

var wallTable = map[Wall]wallSpec{
	Paint:           {"paint", "Standard paint", 1000},
	InsulatingPaint: {"insulating-paint", "Insulating paint", 1800},
	DryStone:        {"dry-stone", "Dry-hung stone (insulated)", 8500},
	MetalPanel:      {"metal-panel", "Metal cladding panel", 6500},
}

// UnitCost returns the installed cost per m² of window.
func (g Glazing) UnitCost() float64 { return glazingTable[g].cost }

// UValue returns the thermal transmittance in W/m²K.
func (g Glazing) UValue() float64 { return glazingTable[g].uValue }

// Name returns the display name.
func (g Glazing) Name() string { return glazingTable[g].name }

// Note returns the short selection hint.
func (g Glazing) Note() string { return glazingTable[g].note }

func (g Glazing) String() string {
	if s, ok := glazingTable[g]; ok {
		return s.key
	}
	return fmt.Sprintf("Glazing(%d)", int(g))
}

// MarshalText serializes the glazing by key.
func (g Glazing) MarshalText() ([]byte, error) {
	if _, ok := glazingTable[g]; !ok {
		return nil, fmt.Errorf("invalid glazing %d", int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText parses a glazing key.
func (g *Glazing) UnmarshalText(text []byte) error {
	v, err := ParseGlazing(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ParseGlazing maps a key such as "low-e" onto a Glazing.
func ParseGlazing(s string) (Glazing, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, g := range Glazings {
		if glazingTable[g].key == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown glazing %q (expected single, double, low-e or triple)", s)
}

// UnitCost returns the installed cost per m² of wall.
func (w Wall) UnitCost() float64 { return wallTable[w].cost }

// Name returns the display name.
func (w Wall) Name() string { return wallTable[w].name }

func (w Wall) String() string {
	if s, ok := wallTable[w]; ok {
		return s.key
	}
	return fmt.Sprintf("Wall(%d)", int(w))
}

// MarshalText serializes the wall by key.
func (w Wall) MarshalText() ([]byte, error) {
	if _, ok := wallTable[w]; !ok {
		return nil, fmt.Errorf("invalid wall %d", int(w))
	}
	return []byte(w.String()), nil
}

// UnmarshalText parses a wall key.
func (w *Wall) UnmarshalText(text []byte) error {
	v, err := ParseWall(string(text))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// ParseWall maps a key such as "dry-stone" onto a Wall.
func ParseWall(s string) (Wall, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, w := range Walls {
		if wallTable[w].key == s {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unknown wall %q (expected paint, insulating-paint, dry-stone or metal-panel)", s)
}

// DefaultGlazing is the glazing preselected for a zone.
func DefaultGlazing(z Zone) Glazing {
	switch z {
	case Tropical:
		return LowE
	case Cold:
		return TriplePane
	default:
		return DoublePane
	}
}

// DefaultWall is the wall finish preselected for every zone.
const DefaultWall = InsulatingPaint
