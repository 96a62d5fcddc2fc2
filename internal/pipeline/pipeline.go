package pipeline

import (
	"errors"

	"github.com/alexiusacademia/gorcframe/internal/advisory"
	"github.com/alexiusacademia/gorcframe/internal/capacity"
	"github.com/alexiusacademia/gorcframe/internal/climate"
	"github.com/alexiusacademia/gorcframe/internal/cost"
	"github.com/alexiusacademia/gorcframe/internal/grid"
	"github.com/alexiusacademia/gorcframe/internal/rebar"
)

// Result carries the output of every stage of one run. Rebar and Cost
// are nil unless State is Safe.
type Result struct {
	Config Config         `json:"config"`
	State  capacity.State `json:"state"`

	Climate   climate.Selection       `json:"climate"`
	Grid      grid.Grid               `json:"grid"`
	SpanClass grid.SpanClass          `json:"span_class"`
	Capacity  capacity.Result         `json:"capacity"`
	Columns   []capacity.ColumnStatus `json:"columns"`

	Rebar *rebar.Config   `json:"rebar,omitempty"`
	Cost  *cost.Breakdown `json:"cost,omitempty"`

	Tags   []advisory.Tag       `json:"tags"`
	Zoning advisory.ZoningCheck `json:"zoning"`

	// Err is capacity.ErrBlocked when the column check failed.
	Err error `json:"-"`
}

// Blocked reports whether the run stopped at the column check.
func (r *Result) Blocked() bool {
	return errors.Is(r.Err, capacity.ErrBlocked)
}

// Check lays out the grid and checks its worst-case column, the stages
// every downstream consumer depends on.
func Check(in Input, cfg Config) (grid.Grid, capacity.Result) {
	g := grid.Plan(in.Site, in.SpanX, in.SpanY)
	spanX, spanY := cfg.Basis.Spans(g)
	return g, capacity.Analyze(capacity.Input{
		SpanX:   spanX,
		SpanY:   spanY,
		Floors:  in.Floors.Total(),
		Section: in.Column,
	})
}

// Run recomputes every stage from in. Climate and grid are independent;
// the column verdict from the grid gates rebar sizing and the estimate.
func Run(in Input, cfg Config) *Result {
	res := &Result{Config: cfg, State: capacity.Unverified}

	res.Climate = climate.Advise(in.Latitude, in.Site.Perimeter(), in.Floors.Above, in.Glazing, in.Wall)
	res.Tags = advisory.Tags(in.Occupants, in.Latitude)
	res.Zoning = advisory.CheckZoning(in.Zoning, in.Site.Area(), in.Site.Area(), in.Floors.Above)

	res.Grid, res.Capacity = Check(in, cfg)
	res.SpanClass = res.Grid.Classify()
	res.State = res.Capacity.State()
	res.Columns = capacity.Statuses(res.Grid, res.Capacity)

	if res.State != capacity.Safe {
		res.Err = capacity.ErrBlocked
		return res
	}

	rb, err := rebar.Size(res.Capacity, in.Column, in.Bar)
	if err != nil {
		res.Err = err
		return res
	}
	res.Rebar = &rb

	res.Cost, err = cost.Estimate(res.Capacity, cost.Input{
		SiteArea:     in.Site.Area(),
		Floors:       in.Floors.Total(),
		TotalColumns: res.Grid.TotalColumns,
		Section:      in.Column,
		Prices:       in.Prices,
		FacadeCost:   res.Climate.FacadeCost(),
	})
	if err != nil {
		res.Rebar = nil
		res.Err = err
	}
	return res
}
