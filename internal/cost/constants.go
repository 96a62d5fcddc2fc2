package cost

// Quantity factors for the preliminary structural takeoff.
const (
	SlabThickness       = 0.25   // m, equivalent slab + beam thickness per floor
	SteelPerConcrete    = 0.18   // t of rebar per m³ of structural concrete
	M2PerPing           = 3.3058 // 1 ping (坪) in m²
	DefaultConcreteCost = 2500.0 // per m³
	DefaultSteelCost    = 28000.0
)
