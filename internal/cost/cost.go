package cost

import (
	"fmt"

	"github.com/alexiusacademia/gorcframe/internal/capacity"
	"github.com/alexiusacademia/gorcframe/internal/nscp"
)

// Prices are the unit rates of the structural materials.
type Prices struct {
	Concrete float64 `json:"concrete" yaml:"concrete"` // per m³
	Steel    float64 `json:"steel" yaml:"steel"`       // per t
}

// DefaultPrices returns the baseline unit rates.
func DefaultPrices() Prices {
	return Prices{Concrete: DefaultConcreteCost, Steel: DefaultSteelCost}
}

// Input is everything the estimate consumes.
type Input struct {
	SiteArea     float64 // m²
	Floors       int
	TotalColumns int
	Section      capacity.Section
	Prices       Prices
	FacadeCost   float64
}

// Breakdown itemizes the project cost.
type Breakdown struct {
	SlabVolume     float64 `json:"slab_volume"`     // m³
	ColumnVolume   float64 `json:"column_volume"`   // m³
	ConcreteVolume float64 `json:"concrete_volume"` // m³
	SteelWeight    float64 `json:"steel_weight"`    // t

	ConcreteCost  float64 `json:"concrete_cost"`
	SteelCost     float64 `json:"steel_cost"`
	StructureCost float64 `json:"structure_cost"`
	FacadeCost    float64 `json:"facade_cost"`
	TotalCost     float64 `json:"total_cost"`

	FloorArea float64 `json:"floor_area"` // m²
	UnitCost  float64 `json:"unit_cost"`  // per ping of floor area
}

// Estimate computes the structural takeoff and rolls in the facade cost.
// No breakdown is produced unless the column verdict is safe and was
// computed for the same section and storey count.
func Estimate(verdict capacity.Result, in Input) (*Breakdown, error) {
	if err := verdict.RequireFor(in.Section); err != nil {
		return nil, err
	}
	if verdict.Floors() != in.Floors {
		return nil, fmt.Errorf("%w: checked %d storeys, got %d", capacity.ErrStaleVerdict, verdict.Floors(), in.Floors)
	}

	floors := float64(in.Floors)
	b := &Breakdown{}

	b.SlabVolume = in.SiteArea * floors * SlabThickness
	b.ColumnVolume = (in.Section.Width / 100 * in.Section.Depth / 100) *
		nscp.FloorHeight * float64(in.TotalColumns) * floors
	b.ConcreteVolume = b.SlabVolume + b.ColumnVolume
	b.SteelWeight = b.ConcreteVolume * SteelPerConcrete

	b.ConcreteCost = b.ConcreteVolume * in.Prices.Concrete
	b.SteelCost = b.SteelWeight * in.Prices.Steel
	b.StructureCost = b.ConcreteCost + b.SteelCost
	b.FacadeCost = in.FacadeCost
	b.TotalCost = b.StructureCost + b.FacadeCost

	b.FloorArea = in.SiteArea * floors
	b.UnitCost = b.TotalCost / (b.FloorArea / M2PerPing)

	return b, nil
}

// LineItem is one row of the bill of quantities.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Items lists the breakdown as bill of quantities rows.
func (b *Breakdown) Items(p Prices) []LineItem {
	return []LineItem{
		{Description: "Structural concrete (slabs, beams, columns)", Quantity: b.ConcreteVolume, Unit: "m³", Rate: p.Concrete, Amount: b.ConcreteCost},
		{Description: "Reinforcing steel", Quantity: b.SteelWeight, Unit: "t", Rate: p.Steel, Amount: b.SteelCost},
		{Description: "Facade (walls and windows)", Quantity: 1, Unit: "lot", Rate: b.FacadeCost, Amount: b.FacadeCost},
	}
}
