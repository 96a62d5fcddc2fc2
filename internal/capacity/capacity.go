package capacity

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gorcframe/internal/nscp"
)

// ErrBlocked is returned by every stage that requires a safe column
// verdict when the current verdict is not safe.
var ErrBlocked = errors.New("structural check not passed: column demand exceeds capacity")

// ErrStaleVerdict is returned when a verdict is applied to a section or
// storey count other than the one it was computed for.
var ErrStaleVerdict = errors.New("column verdict does not match the section or storeys being designed")

// Section is a rectangular tied column section.
type Section struct {
	Width float64            `json:"width"` // cm
	Depth float64            `json:"depth"` // cm
	Grade nscp.ConcreteGrade `json:"fc"`    // kgf/cm²
}

// GrossArea returns Ag in cm².
func (s Section) GrossArea() float64 {
	return s.Width * s.Depth
}

// Input is everything the worst-case column check needs.
type Input struct {
	// Tributary spans (m); the caller decides between nominal and actual spacing
	SpanX float64
	SpanY float64

	Floors  int
	Section Section
}

// Result holds the worst-case column check.
type Result struct {
	TributaryArea float64 `json:"tributary_area"` // m²
	Demand        float64 `json:"demand"`         // t
	Capacity      float64 `json:"capacity"`       // t
	Ratio         float64 `json:"ratio"`          // demand / capacity
	IsSafe        bool    `json:"is_safe"`

	analyzed bool
	section  Section
	floors   int
}

// Analyze checks the single most heavily loaded interior column.
//
// Every other column in the grid carries a smaller tributary area and is
// taken as safe whenever this one is. Nothing is cached: each call works
// from its input alone.
func Analyze(in Input) Result {
	area := in.SpanX * in.SpanY
	demand := nscp.TypicalFloorLoad.AxialLoad(area, in.Floors)
	capacity := DesignStrength(in.Section)
	ratio := demand / capacity

	return Result{
		TributaryArea: area,
		Demand:        demand,
		Capacity:      capacity,
		Ratio:         ratio,
		IsSafe:        ratio < 1.0,
		analyzed:      true,
		section:       in.Section,
		floors:        in.Floors,
	}
}

// DesignStrength returns φ·0.85·f'c·Ag in tonnes for a tied column.
func DesignStrength(s Section) float64 {
	return nscp.PhiCompression * nscp.TiedReduction * s.Grade.Fc() * s.GrossArea() / 1000.0
}

// State maps the result onto the verdict state machine.
func (r Result) State() State {
	switch {
	case !r.analyzed:
		return Unverified
	case r.IsSafe:
		return Safe
	default:
		return Blocked
	}
}

// Require returns ErrBlocked unless the verdict is safe. Downstream
// stages call it before doing any work.
func (r Result) Require() error {
	if r.State() != Safe {
		return ErrBlocked
	}
	return nil
}

// RequireFor is Require for a verdict about to be applied to sec. A safe
// verdict computed for any other section is stale.
func (r Result) RequireFor(sec Section) error {
	if err := r.Require(); err != nil {
		return err
	}
	if r.section != sec {
		return fmt.Errorf("%w: checked %.0f×%.0f cm %s, got %.0f×%.0f cm %s", ErrStaleVerdict,
			r.section.Width, r.section.Depth, r.section.Grade, sec.Width, sec.Depth, sec.Grade)
	}
	return nil
}

// Section returns the column section the verdict was computed for.
func (r Result) Section() Section {
	return r.section
}

// Floors returns the storey count the verdict was computed for.
func (r Result) Floors() int {
	return r.floors
}

// Suggestions lists remedies for an unsafe column, nil when safe.
func (r Result) Suggestions() []string {
	if r.State() != Blocked {
		return nil
	}
	return []string{
		"Enlarge the column section",
		"Raise the concrete strength f'c",
		"Reduce the column spacing",
	}
}

func (r Result) String() string {
	return fmt.Sprintf("D/C=%.2f (Pu=%.1f t, φPn=%.1f t) %s", r.Ratio, r.Demand, r.Capacity, r.State())
}
