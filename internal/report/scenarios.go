package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gorcframe/internal/climate"
	"github.com/alexiusacademia/gorcframe/internal/pipeline"
	"github.com/alexiusacademia/gorcframe/internal/project"
	"github.com/alexiusacademia/gorcframe/internal/rebar"
)

// ErrEmptySheet is returned when a scenario sheet has no data rows.
var ErrEmptySheet = errors.New("scenario sheet has no data rows")

// Scenario is one row of a scenario sheet applied over a base project.
type Scenario struct {
	Row     int
	Project *project.Project
	Err     error
}

// scenarioColumns maps header names to the project field they set.
var scenarioColumns = map[string]func(p *project.Project, v string) error{
	"name":          func(p *project.Project, v string) error { p.Name = v; return nil },
	"site_width":    floatField(func(p *project.Project) *float64 { return &p.Site.Width }),
	"site_depth":    floatField(func(p *project.Project) *float64 { return &p.Site.Depth }),
	"latitude":      floatField(func(p *project.Project) *float64 { return &p.Site.Latitude }),
	"longitude":     floatField(func(p *project.Project) *float64 { return &p.Site.Longitude }),
	"floors_above":  intField(func(p *project.Project) *int { return &p.Floors.Above }),
	"floors_below":  intField(func(p *project.Project) *int { return &p.Floors.Below }),
	"span_x":        floatField(func(p *project.Project) *float64 { return &p.Grid.SpanX }),
	"span_y":        floatField(func(p *project.Project) *float64 { return &p.Grid.SpanY }),
	"column_width":  floatField(func(p *project.Project) *float64 { return &p.Column.Width }),
	"column_depth":  floatField(func(p *project.Project) *float64 { return &p.Column.Depth }),
	"fc":            intField(func(p *project.Project) *int { return &p.Column.Fc }),
	"concrete_cost": floatField(func(p *project.Project) *float64 { return &p.Prices.Concrete }),
	"steel_cost":    floatField(func(p *project.Project) *float64 { return &p.Prices.Steel }),
	"bar": func(p *project.Project, v string) error {
		b, err := rebar.ParseBarSize(v)
		p.Column.Bar = b
		return err
	},
	"glazing": func(p *project.Project, v string) error {
		g, err := climate.ParseGlazing(v)
		p.Envelope.Glazing = g
		return err
	},
	"wall": func(p *project.Project, v string) error {
		w, err := climate.ParseWall(v)
		p.Envelope.Wall = w
		return err
	},
	"basis": func(p *project.Project, v string) error {
		b, err := pipeline.ParseBasis(v)
		p.Grid.Basis = b
		return err
	},
}

func floatField(field func(*project.Project) *float64) func(*project.Project, string) error {
	return func(p *project.Project, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(p) = f
		return nil
	}
}

func intField(field func(*project.Project) *int) func(*project.Project, string) error {
	return func(p *project.Project, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(p) = n
		return nil
	}
}

// ReadScenarios reads the first sheet of a workbook. The first row names
// the columns; every later row is one scenario. Blank cells and unknown
// columns leave the base project's value in place. A row that fails to
// parse or validate is returned with Err set rather than dropped.
func ReadScenarios(r io.Reader, base *project.Project) ([]Scenario, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading scenario sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var out []Scenario
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}

		p := *base
		s := Scenario{Row: i + 1, Project: &p}
		for c, v := range row {
			v = strings.TrimSpace(v)
			if c >= len(header) || v == "" {
				continue
			}
			set, ok := scenarioColumns[header[c]]
			if !ok {
				continue
			}
			if err := set(&p, v); err != nil {
				s.Err = fmt.Errorf("row %d, column %s: %w", s.Row, header[c], err)
				break
			}
		}
		if s.Err == nil {
			if err := p.Validate(); err != nil {
				s.Err = fmt.Errorf("row %d: %w", s.Row, err)
			}
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, ErrEmptySheet
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Outcome is the result of running one scenario.
type Outcome struct {
	Row    int
	Name   string
	Result *pipeline.Result
	Err    error
}

// WriteOutcomes writes one result row per scenario.
func WriteOutcomes(w io.Writer, outcomes []Outcome) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetResults); err != nil {
		return err
	}
	rows := [][]any{{"Row", "Name", "State", "D/C", "Bars", "Total cost", "Unit cost", "Error"}}
	for _, o := range outcomes {
		row := []any{o.Row, o.Name}
		switch {
		case o.Result == nil:
			row = append(row, "invalid", nil, nil, nil, nil, errText(o.Err))
		case o.Result.Cost == nil:
			row = append(row, o.Result.State.String(), o.Result.Capacity.Ratio, nil, nil, nil, errText(o.Result.Err))
		default:
			res := o.Result
			row = append(row, res.State.String(), res.Capacity.Ratio, res.Rebar.Label(), res.Cost.TotalCost, res.Cost.UnitCost, "")
		}
		rows = append(rows, row)
	}
	if err := setRows(f, SheetResults, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetResults, "B", "B", 28); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
