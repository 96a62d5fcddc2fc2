package project

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcframe/internal/climate"
	"github.com/alexiusacademia/gorcframe/internal/nscp"
	"github.com/alexiusacademia/gorcframe/internal/pipeline"
	"github.com/alexiusacademia/gorcframe/internal/rebar"
)

const sampleYAML = `
name: Riverside walk-up
site:
  width: 15
  depth: 24
  latitude: 14.6
  longitude: 121.0
floors:
  above: 5
  below: 1
grid:
  span_x: 7.5
  span_y: 6
  basis: nominal
column:
  width: 70
  depth: 70
  fc: 350
  bar: "#10"
envelope:
  glazing: low-e
  wall: dry-stone
prices:
  concrete: 2600
  steel: 29000
occupants:
  adults: 20
  children: 4
zoning:
  coverage_ratio: 50
  floor_area_ratio: 300
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "Riverside walk-up", p.Name)
	assert.Equal(t, 15.0, p.Site.Width)
	assert.Equal(t, 14.6, p.Site.Latitude)
	assert.Equal(t, pipeline.Floors{Above: 5, Below: 1}, p.Floors)
	assert.Equal(t, pipeline.BasisNominal, p.Grid.Basis)
	assert.Equal(t, 350, p.Column.Fc)
	assert.Equal(t, rebar.Bar10, p.Column.Bar)
	assert.Equal(t, climate.LowE, p.Envelope.Glazing)
	assert.Equal(t, climate.DryStone, p.Envelope.Wall)
	assert.Equal(t, 29000.0, p.Prices.Steel)
	assert.Equal(t, 4, p.Occupants.Children)
	assert.Equal(t, 300.0, p.Zoning.FloorAreaRatio)
}

func TestParseKeepsDefaults(t *testing.T) {
	p, err := Parse([]byte("name: Minimal\nfloors:\n  above: 3\n"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, "Minimal", p.Name)
	assert.Equal(t, 3, p.Floors.Above)
	assert.Equal(t, def.Site, p.Site)
	assert.Equal(t, def.Column, p.Column)
	assert.Equal(t, def.Prices, p.Prices)
}

func TestParseRejectsBadValues(t *testing.T) {
	_, err := Parse([]byte("column:\n  bar: \"#9\"\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("grid:\n  basis: average\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("site: [1, 2"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	p, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 70.0, p.Column.Width)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveRoundTrip(t *testing.T) {
	p, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, p.Save(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestValidateDefault(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	p := Default()
	p.Site.Width = 0
	p.Floors.Above = 0
	p.Grid.SpanX = 15
	p.Column.Depth = 40
	p.Column.Fc = 300
	p.Zoning.CoverageRatio = 10

	err := p.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 6)
	assert.Contains(t, err.Error(), "span_x")
	assert.Contains(t, err.Error(), "column depth")
}

func TestResolve(t *testing.T) {
	p, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	in, cfg, err := p.Resolve()
	require.NoError(t, err)

	assert.Equal(t, pipeline.BasisNominal, cfg.Basis)
	assert.Equal(t, 360.0, in.Site.Area())
	assert.Equal(t, nscp.FC350, in.Column.Grade)
	assert.Equal(t, 7.5, in.SpanX)
	assert.Equal(t, climate.LowE, in.Glazing)
}

func TestResolveZoneDefaultGlazing(t *testing.T) {
	p := Default()
	p.Site.Latitude = 52

	in, _, err := p.Resolve()
	require.NoError(t, err)
	assert.Equal(t, climate.DefaultGlazing(climate.Cold), in.Glazing)
	assert.Equal(t, climate.DefaultWall, in.Wall)
}

func TestResolveMatchesDefaultInput(t *testing.T) {
	in, cfg, err := Default().Resolve()
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultInput(), in)
	assert.Equal(t, pipeline.DefaultConfig(), cfg)
}

func TestResolveInvalid(t *testing.T) {
	p := Default()
	p.Floors.Below = -1

	_, _, err := p.Resolve()
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidateRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"infinite width", "site:\n  width: .inf\n", "site width"},
		{"nan span", "grid:\n  span_x: .nan\n", "span_x"},
		{"negative infinite price", "prices:\n  steel: -.inf\n", "steel price"},
		{"nan latitude", "site:\n  latitude: .nan\n", "latitude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			_, _, err = p.Resolve()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Problems, 1)
			assert.Contains(t, verr.Problems[0], tt.want)
			assert.Contains(t, verr.Problems[0], "finite")
		})
	}
}

func TestValidateSiteSize(t *testing.T) {
	p := Default()
	p.Site.Width, p.Site.Depth = 1e7, 1e7
	p.Grid.SpanX, p.Grid.SpanY = MinSpan, MinSpan

	err := p.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "cannot exceed")

	p.Column.Width = math.NaN()
	require.ErrorAs(t, p.Validate(), &verr)
	assert.Len(t, verr.Problems, 1, "non-finite values are reported alone")
}

func TestLargestSiteRuns(t *testing.T) {
	p := Default()
	p.Site.Width, p.Site.Depth = MaxSiteSize, MaxSiteSize
	p.Grid.SpanX, p.Grid.SpanY = MinSpan, MinSpan

	in, cfg, err := p.Resolve()
	require.NoError(t, err)

	var res *pipeline.Result
	require.NotPanics(t, func() { res = pipeline.Run(in, cfg) })
	assert.Equal(t, res.Grid.NX*res.Grid.NY, len(res.Columns))
}
