package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gorcframe/internal/advisory"
	"github.com/alexiusacademia/gorcframe/internal/capacity"
	"github.com/alexiusacademia/gorcframe/internal/climate"
	"github.com/alexiusacademia/gorcframe/internal/cost"
	"github.com/alexiusacademia/gorcframe/internal/grid"
	"github.com/alexiusacademia/gorcframe/internal/nscp"
	"github.com/alexiusacademia/gorcframe/internal/pipeline"
	"github.com/alexiusacademia/gorcframe/internal/rebar"
)

// FileName is the project file looked up inside a project directory.
const FileName = "project.yaml"

// Project is the on-disk (and over-the-wire) description of a design.
type Project struct {
	Name string `json:"name" yaml:"name"`

	Site      SiteDef            `json:"site" yaml:"site"`
	Floors    pipeline.Floors    `json:"floors" yaml:"floors"`
	Grid      GridDef            `json:"grid" yaml:"grid"`
	Column    ColumnDef          `json:"column" yaml:"column"`
	Envelope  EnvelopeDef        `json:"envelope" yaml:"envelope"`
	Prices    cost.Prices        `json:"prices" yaml:"prices"`
	Occupants advisory.Occupants `json:"occupants" yaml:"occupants"`
	Zoning    advisory.Zoning    `json:"zoning" yaml:"zoning"`
}

// SiteDef locates and sizes the lot.
type SiteDef struct {
	Width     float64 `json:"width" yaml:"width"`         // m
	Depth     float64 `json:"depth" yaml:"depth"`         // m
	Latitude  float64 `json:"latitude" yaml:"latitude"`   // degrees, north positive
	Longitude float64 `json:"longitude" yaml:"longitude"` // degrees, east positive
}

// GridDef is the nominal column spacing.
type GridDef struct {
	SpanX float64        `json:"span_x" yaml:"span_x"` // m
	SpanY float64        `json:"span_y" yaml:"span_y"` // m
	Basis pipeline.Basis `json:"basis" yaml:"basis"`
}

// ColumnDef is the typical column section and its bars.
type ColumnDef struct {
	Width float64       `json:"width" yaml:"width"` // cm
	Depth float64       `json:"depth" yaml:"depth"` // cm
	Fc    int           `json:"fc" yaml:"fc"`       // kgf/cm²
	Bar   rebar.BarSize `json:"bar" yaml:"bar"`
}

// EnvelopeDef selects the facade materials. A zero glazing takes the
// climate zone's default.
type EnvelopeDef struct {
	Glazing climate.Glazing `json:"glazing,omitempty" yaml:"glazing,omitempty"`
	Wall    climate.Wall    `json:"wall,omitempty" yaml:"wall,omitempty"`
}

// Default returns the reference project.
func Default() *Project {
	in := pipeline.DefaultInput()
	return &Project{
		Name: "Untitled",
		Site: SiteDef{
			Width:     in.Site.Width,
			Depth:     in.Site.Depth,
			Latitude:  in.Latitude,
			Longitude: in.Longitude,
		},
		Floors: in.Floors,
		Grid:   GridDef{SpanX: in.SpanX, SpanY: in.SpanY, Basis: pipeline.BasisActual},
		Column: ColumnDef{
			Width: in.Column.Width,
			Depth: in.Column.Depth,
			Fc:    int(in.Column.Grade),
			Bar:   in.Bar,
		},
		Envelope:  EnvelopeDef{Wall: in.Wall},
		Prices:    in.Prices,
		Occupants: in.Occupants,
		Zoning:    in.Zoning,
	}
}

// Parse reads a YAML project. Fields missing from data keep their
// default values.
func Parse(data []byte) (*Project, error) {
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing project YAML: %w", err)
	}
	return p, nil
}

// Load reads a project from a YAML file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	return Parse(data)
}

// LoadDir loads project.yaml from a project directory.
func LoadDir(dir string) (*Project, error) {
	return Load(filepath.Join(dir, FileName))
}

// Save writes the project as YAML.
func (p *Project) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding project YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	return nil
}

// Resolve validates the project and converts it into a pipeline input.
func (p *Project) Resolve() (pipeline.Input, pipeline.Config, error) {
	if err := p.Validate(); err != nil {
		return pipeline.Input{}, pipeline.Config{}, err
	}

	grade, err := nscp.ParseConcreteGrade(p.Column.Fc)
	if err != nil {
		return pipeline.Input{}, pipeline.Config{}, err
	}

	glazing := p.Envelope.Glazing
	if glazing == 0 {
		glazing = climate.DefaultGlazing(climate.Classify(p.Site.Latitude))
	}
	wall := p.Envelope.Wall
	if wall == 0 {
		wall = climate.DefaultWall
	}

	in := pipeline.Input{
		Site:      grid.Site{Width: p.Site.Width, Depth: p.Site.Depth},
		Latitude:  p.Site.Latitude,
		Longitude: p.Site.Longitude,
		Floors:    p.Floors,
		SpanX:     p.Grid.SpanX,
		SpanY:     p.Grid.SpanY,
		Column:    capacity.Section{Width: p.Column.Width, Depth: p.Column.Depth, Grade: grade},
		Bar:       p.Column.Bar,
		Glazing:   glazing,
		Wall:      wall,
		Prices:    p.Prices,
		Occupants: p.Occupants,
		Zoning:    p.Zoning,
	}
	return in, pipeline.Config{Basis: p.Grid.Basis}, nil
}
