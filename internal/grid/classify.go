package grid

import "fmt"

// SpanClass is the advisory rating of a grid's governing span.
type SpanClass int

const (
	SpanAdequate SpanClass = iota
	SpanTooWide
	SpanTooDense
)

func (c SpanClass) String() string {
	switch c {
	case SpanTooWide:
		return "too-wide"
	case SpanTooDense:
		return "too-dense"
	default:
		return "adequate"
	}
}

// MarshalText lets the class serialize as its name.
func (c SpanClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Classify rates the governing actual span. It is advice only and never
// changes the downstream analysis.
func (g Grid) Classify() SpanClass {
	span := g.MaxActualSpan()
	switch {
	case span > MaxAdequateSpan:
		return SpanTooWide
	case span < MinAdequateSpan:
		return SpanTooDense
	default:
		return SpanAdequate
	}
}

// Advice returns a human readable note for the span class.
func (c SpanClass) Advice() string {
	switch c {
	case SpanTooWide:
		return fmt.Sprintf("Span too wide (>%.0fm). Add column lines or consider a steel-concrete (SC) frame.", MaxAdequateSpan)
	case SpanTooDense:
		return fmt.Sprintf("Span too dense (<%.0fm). Columns will crowd the usable floor space.", MinAdequateSpan)
	default:
		return "Span adequate for a reinforced concrete frame."
	}
}
