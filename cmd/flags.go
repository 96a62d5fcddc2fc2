package cmd

import (
	"github.com/alexiusacademia/gorcframe/internal/climate"
	"github.com/alexiusacademia/gorcframe/internal/pipeline"
	"github.com/alexiusacademia/gorcframe/internal/project"
	"github.com/alexiusacademia/gorcframe/internal/rebar"
	"github.com/spf13/cobra"
)

// Flag groups a command can register.
type flagGroup int

const (
	withSite flagGroup = 1 << iota
	withFloors
	withGrid
	withColumn
	withEnvelope
	withPrices
)

const allGroups = withSite | withFloors | withGrid | withColumn | withEnvelope | withPrices

// projectFlags holds the design inputs that can be given on the command
// line. Only flags the user actually sets override the project file or
// the defaults.
type projectFlags struct {
	file string

	siteWidth float64
	siteDepth float64
	latitude  float64
	longitude float64

	floors int
	below  int

	spanX float64
	spanY float64
	basis string

	colWidth float64
	colDepth float64
	fc       int
	bar      string

	glazing string
	wall    string

	concreteCost float64
	steelCost    float64
}

func (f *projectFlags) register(cmd *cobra.Command, groups flagGroup) {
	def := project.Default()
	fs := cmd.Flags()

	fs.StringVarP(&f.file, "project", "p", "", "Project file (YAML); flags override its values")

	if groups&withSite != 0 {
		fs.Float64VarP(&f.siteWidth, "width", "W", def.Site.Width, "Site width (m)")
		fs.Float64VarP(&f.siteDepth, "depth", "D", def.Site.Depth, "Site depth (m)")
		fs.Float64Var(&f.latitude, "lat", def.Site.Latitude, "Site latitude (degrees, north positive)")
		fs.Float64Var(&f.longitude, "lon", def.Site.Longitude, "Site longitude (degrees, east positive)")
	}
	if groups&withFloors != 0 {
		fs.IntVarP(&f.floors, "floors", "n", def.Floors.Above, "Storeys above grade")
		fs.IntVar(&f.below, "below", def.Floors.Below, "Storeys below grade")
	}
	if groups&withGrid != 0 {
		fs.Float64VarP(&f.spanX, "span-x", "x", def.Grid.SpanX, "Nominal column spacing along the width (m)")
		fs.Float64VarP(&f.spanY, "span-y", "y", def.Grid.SpanY, "Nominal column spacing along the depth (m)")
		fs.StringVar(&f.basis, "basis", def.Grid.Basis.String(), "Tributary spans for the column check (actual|nominal)")
	}
	if groups&withColumn != 0 {
		fs.Float64VarP(&f.colWidth, "col-width", "b", def.Column.Width, "Column width (cm)")
		fs.Float64VarP(&f.colDepth, "col-depth", "t", def.Column.Depth, "Column depth (cm)")
		fs.IntVar(&f.fc, "fc", def.Column.Fc, "Concrete strength f'c (kgf/cm²: 210, 280, 350, 420)")
		fs.StringVar(&f.bar, "bar", def.Column.Bar.String(), "Longitudinal bar size (#6, #7, #8, #10)")
	}
	if groups&withEnvelope != 0 {
		fs.StringVar(&f.glazing, "glazing", "", "Glazing (single, double, low-e, triple); default follows the climate zone")
		fs.StringVar(&f.wall, "wall", def.Envelope.Wall.String(), "Wall finish (paint, insulating-paint, dry-stone, metal-panel)")
	}
	if groups&withPrices != 0 {
		fs.Float64Var(&f.concreteCost, "concrete-cost", def.Prices.Concrete, "Concrete unit price (per m³)")
		fs.Float64Var(&f.steelCost, "steel-cost", def.Prices.Steel, "Steel unit price (per t)")
	}
}

// project loads the project file (or the defaults) and applies every flag
// the user set. The result is not validated.
func (f *projectFlags) project(cmd *cobra.Command) (*project.Project, error) {
	p := project.Default()
	if f.file != "" {
		loaded, err := project.Load(f.file)
		if err != nil {
			return nil, err
		}
		p = loaded
	}

	changed := cmd.Flags().Changed
	setFloat := func(name string, dst *float64, v float64) {
		if changed(name) {
			*dst = v
		}
	}
	setInt := func(name string, dst *int, v int) {
		if changed(name) {
			*dst = v
		}
	}

	setFloat("width", &p.Site.Width, f.siteWidth)
	setFloat("depth", &p.Site.Depth, f.siteDepth)
	setFloat("lat", &p.Site.Latitude, f.latitude)
	setFloat("lon", &p.Site.Longitude, f.longitude)
	setInt("floors", &p.Floors.Above, f.floors)
	setInt("below", &p.Floors.Below, f.below)
	setFloat("span-x", &p.Grid.SpanX, f.spanX)
	setFloat("span-y", &p.Grid.SpanY, f.spanY)
	setFloat("col-width", &p.Column.Width, f.colWidth)
	setFloat("col-depth", &p.Column.Depth, f.colDepth)
	setInt("fc", &p.Column.Fc, f.fc)
	setFloat("concrete-cost", &p.Prices.Concrete, f.concreteCost)
	setFloat("steel-cost", &p.Prices.Steel, f.steelCost)

	if changed("basis") {
		b, err := pipeline.ParseBasis(f.basis)
		if err != nil {
			return nil, err
		}
		p.Grid.Basis = b
	}
	if changed("bar") {
		b, err := rebar.ParseBarSize(f.bar)
		if err != nil {
			return nil, err
		}
		p.Column.Bar = b
	}
	if changed("glazing") {
		g, err := climate.ParseGlazing(f.glazing)
		if err != nil {
			return nil, err
		}
		p.Envelope.Glazing = g
	}
	if changed("wall") {
		w, err := climate.ParseWall(f.wall)
		if err != nil {
			return nil, err
		}
		p.Envelope.Wall = w
	}
	return p, nil
}

// resolve builds a validated pipeline input from the flags.
func (f *projectFlags) resolve(cmd *cobra.Command) (*project.Project, pipeline.Input, pipeline.Config, error) {
	p, err := f.project(cmd)
	if err != nil {
		return nil, pipeline.Input{}, pipeline.Config{}, WrapExitError(ExitFailure, "reading inputs", err)
	}
	in, cfg, err := p.Resolve()
	if err != nil {
		return nil, pipeline.Input{}, pipeline.Config{}, WrapExitError(ExitFailure, "invalid inputs", err)
	}
	return p, in, cfg, nil
}
