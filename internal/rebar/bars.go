package rebar

import (
	"fmt"
	"strings"
)

// BarSize is a deformed bar designation.
type BarSize int

const (
	Bar6 BarSize = iota + 1
	Bar7
	Bar8
	Bar10
)

// BarSizes lists the bars offered for column longitudinal steel.
var BarSizes = []BarSize{Bar6, Bar7, Bar8, Bar10}

var barTable = map[BarSize]struct {
	name     string
	metric   string
	area     float64 // cm²
	diameter float64 // mm
}{
	Bar6:  {"#6", "D19", 2.87, 19.1},
	Bar7:  {"#7", "D22", 3.87, 22.2},
	Bar8:  {"#8", "D25", 5.07, 25.4},
	Bar10: {"#10", "D32", 7.94, 32.3},
}

// Area returns the nominal cross-sectional area in cm².
func (b BarSize) Area() float64 {
	return barTable[b].area
}

// Diameter returns the nominal diameter in mm.
func (b BarSize) Diameter() float64 {
	return barTable[b].diameter
}

// Metric returns the metric designation, e.g. D25.
func (b BarSize) Metric() string {
	return barTable[b].metric
}

func (b BarSize) String() string {
	if e, ok := barTable[b]; ok {
		return e.name
	}
	return fmt.Sprintf("BarSize(%d)", int(b))
}

// ParseBarSize accepts either designation: "#8", "8" or "D25".
func ParseBarSize(s string) (BarSize, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, b := range BarSizes {
		e := barTable[b]
		if s == e.name || s == strings.TrimPrefix(e.name, "#") || s == e.metric {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown bar size %q (expected #6, #7, #8 or #10)", s)
}

// MarshalText serializes the bar by its imperial designation.
func (b BarSize) MarshalText() ([]byte, error) {
	if _, ok := barTable[b]; !ok {
		return nil, fmt.Errorf("invalid bar size %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText parses any accepted designation.
func (b *BarSize) UnmarshalText(text []byte) error {
	v, err := ParseBarSize(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
