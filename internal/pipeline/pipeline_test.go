package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcframe/internal/capacity"
	"github.com/alexiusacademia/gorcframe/internal/climate"
	"github.com/alexiusacademia/gorcframe/internal/grid"
	"github.com/alexiusacademia/gorcframe/internal/nscp"
)

func TestRunDefaultProject(t *testing.T) {
	res := Run(DefaultInput(), DefaultConfig())

	require.NoError(t, res.Err)
	assert.Equal(t, capacity.Safe, res.State)
	assert.False(t, res.Blocked())

	assert.Equal(t, climate.Subtropical, res.Climate.Profile.Zone)
	assert.Equal(t, climate.DoublePane, res.Climate.Glazing)
	assert.Equal(t, 15, res.Grid.TotalColumns)
	assert.Equal(t, grid.SpanAdequate, res.SpanClass)

	assert.InDelta(t, 189.0, res.Capacity.Demand, 1e-9)
	assert.InDelta(t, 556.92, res.Capacity.Capacity, 1e-9)

	require.NotNil(t, res.Rebar)
	assert.Equal(t, 8, res.Rebar.Count)

	require.NotNil(t, res.Cost)
	assert.InDelta(t, 3096576.0, res.Cost.FacadeCost, 1e-6)
	assert.InDelta(t, 7175414.4, res.Cost.TotalCost, 1e-6)

	assert.Len(t, res.Columns, 15)
	assert.NotEmpty(t, res.Tags)
	assert.False(t, res.Zoning.WithinFloorArea)
}

func TestRunBlocked(t *testing.T) {
	in := DefaultInput()
	in.Column = capacity.Section{Width: 50, Depth: 50, Grade: nscp.FC210}
	in.Floors = Floors{Above: 20, Below: 3}

	res := Run(in, DefaultConfig())

	assert.Equal(t, capacity.Blocked, res.State)
	assert.True(t, res.Blocked())
	assert.ErrorIs(t, res.Err, capacity.ErrBlocked)
	assert.Nil(t, res.Rebar)
	assert.Nil(t, res.Cost)

	// upstream stages still report
	assert.Equal(t, 15, res.Grid.TotalColumns)
	assert.Greater(t, res.Climate.FacadeCost(), 0.0)
	assert.NotEmpty(t, res.Capacity.Suggestions())
}

func TestRunBlockedForEveryUnsafeInput(t *testing.T) {
	for floors := 1; floors <= 60; floors++ {
		in := DefaultInput()
		in.Column = capacity.Section{Width: 50, Depth: 50, Grade: nscp.FC210}
		in.Floors = Floors{Above: floors}

		res := Run(in, DefaultConfig())
		if res.Capacity.IsSafe {
			assert.NotNil(t, res.Rebar, "floors=%d", floors)
			assert.NotNil(t, res.Cost, "floors=%d", floors)
			continue
		}
		assert.Nil(t, res.Rebar, "floors=%d", floors)
		assert.Nil(t, res.Cost, "floors=%d", floors)
		assert.ErrorIs(t, res.Err, capacity.ErrBlocked)
	}
}

func TestRunTributaryBasis(t *testing.T) {
	in := DefaultInput()
	in.Site = grid.Site{Width: 10, Depth: 10}
	in.SpanX, in.SpanY = 6, 6

	actual := Run(in, Config{Basis: BasisActual})
	nominal := Run(in, Config{Basis: BasisNominal})

	assert.InDelta(t, 25.0, actual.Capacity.TributaryArea, 1e-9)
	assert.InDelta(t, 36.0, nominal.Capacity.TributaryArea, 1e-9)
	// the grid itself does not depend on the basis
	assert.Equal(t, actual.Grid, nominal.Grid)
}

func TestCheckMatchesRun(t *testing.T) {
	in := DefaultInput()
	in.Site = grid.Site{Width: 10, Depth: 10}
	in.SpanX, in.SpanY = 6, 6
	in.Floors = Floors{Above: 5, Below: 1}

	for _, basis := range []Basis{BasisActual, BasisNominal} {
		t.Run(basis.String(), func(t *testing.T) {
			cfg := Config{Basis: basis}
			g, verdict := Check(in, cfg)
			res := Run(in, cfg)

			assert.Equal(t, res.Grid, g)
			assert.Equal(t, res.Capacity, verdict)
			assert.Equal(t, in.Column, verdict.Section())
			assert.Equal(t, 6, verdict.Floors())
		})
	}
}

func TestRunFloorSplit(t *testing.T) {
	in := DefaultInput()
	in.Floors = Floors{Above: 7, Below: 2}

	res := Run(in, DefaultConfig())
	require.NoError(t, res.Err)

	// columns carry all nine storeys
	assert.InDelta(t, 30*0.9*9, res.Capacity.Demand, 1e-9)
	assert.InDelta(t, 240*9*0.25, res.Cost.SlabVolume, 1e-9)
	// only the seven storeys above grade have a facade
	assert.InDelta(t, 3096576.0, res.Cost.FacadeCost, 1e-6)
}

func TestRunIsIdempotent(t *testing.T) {
	in := DefaultInput()

	a := Run(in, DefaultConfig())
	b := Run(in, DefaultConfig())
	assert.Equal(t, a, b)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, ja, jb)
}

func TestRunDoesNotShareState(t *testing.T) {
	in := DefaultInput()
	a := Run(in, DefaultConfig())
	a.Grid.Xs[0] = 42
	a.Rebar.Count = 99

	b := Run(in, DefaultConfig())
	assert.Equal(t, 0.0, b.Grid.Xs[0])
	assert.Equal(t, 8, b.Rebar.Count)
}

func TestParseBasis(t *testing.T) {
	b, err := ParseBasis("Nominal")
	require.NoError(t, err)
	assert.Equal(t, BasisNominal, b)

	b, err = ParseBasis("")
	require.NoError(t, err)
	assert.Equal(t, BasisActual, b)

	_, err = ParseBasis("average")
	assert.Error(t, err)

	var back Basis
	require.NoError(t, back.UnmarshalText([]byte("nominal")))
	assert.Equal(t, BasisNominal, back)
}

func TestResultJSON(t *testing.T) {
	res := Run(DefaultInput(), DefaultConfig())
	data, err := json.Marshal(res)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "safe", doc["state"])
	assert.Equal(t, "adequate", doc["span_class"])
	assert.Contains(t, doc, "cost")
	assert.Equal(t, "actual", doc["config"].(map[string]any)["basis"])
}
