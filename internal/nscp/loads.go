package nscp

// FloorLoad is an unfactored area load on a typical floor (kgf/m²).
// The column check uses the plain sum of its components as the design
// floor pressure; the split is kept for reporting.
type FloorLoad struct {
	Description string
	Dead        float64 // D - slab, beams, finishes, partitions
	Live        float64 // L - occupancy live load
}

// Total returns the floor pressure carried down to the columns.
func (fl FloorLoad) Total() float64 {
	return fl.Dead + fl.Live
}

// TypicalFloorLoad is the combined dead + live pressure assumed for every
// storey of a residential or office building (900 kgf/m²).
var TypicalFloorLoad = FloorLoad{
	Description: "Typical floor (slab, beams, finishes + occupancy)",
	Dead:        700,
	Live:        200,
}

// AxialLoad returns the load in tonnes collected by a column supporting
// tributaryArea (m²) on each of floors storeys.
func (fl FloorLoad) AxialLoad(tributaryArea float64, floors int) float64 {
	return tributaryArea * fl.Total() * float64(floors) / 1000.0
}
