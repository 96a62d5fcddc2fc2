package report

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gorcframe/internal/capacity"
)

// Sheet names used in exported workbooks.
const (
	SheetBOQ     = "BOQ"
	SheetSummary = "Summary"
	SheetResults = "Results"
)

// WriteBOQ writes the bill of quantities workbook. It needs a cost
// breakdown, so a blocked run returns capacity.ErrBlocked.
func WriteBOQ(w io.Writer, d Document) error {
	res := d.Result
	if res == nil || res.Cost == nil {
		return capacity.ErrBlocked
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetBOQ); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rows := [][]any{
		{d.title()},
		{"Date", d.date()},
		{},
		{"Item", "Quantity", "Unit", "Rate", "Amount"},
	}
	for _, it := range res.Cost.Items(d.Input.Prices) {
		rows = append(rows, []any{it.Description, it.Quantity, it.Unit, it.Rate, it.Amount})
	}
	totalRow := len(rows) + 1
	rows = append(rows, []any{"Total", nil, nil, nil, res.Cost.TotalCost})

	if err := setRows(f, SheetBOQ, rows); err != nil {
		return err
	}
	for _, cell := range [][2]string{{"A1", "A1"}, {"A4", "E4"}, {fmt.Sprintf("A%d", totalRow), fmt.Sprintf("E%d", totalRow)}} {
		if err := f.SetCellStyle(SheetBOQ, cell[0], cell[1], bold); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetBOQ, "A", "A", 45); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetBOQ, "B", "E", 16); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	in := d.Input
	summary := [][]any{
		{"Parameter", "Value", "Unit"},
		{"Site width", in.Site.Width, "m"},
		{"Site depth", in.Site.Depth, "m"},
		{"Floors above grade", in.Floors.Above, ""},
		{"Floors below grade", in.Floors.Below, ""},
		{"Columns", res.Grid.TotalColumns, ""},
		{"Actual span x", res.Grid.ActualSpanX, "m"},
		{"Actual span y", res.Grid.ActualSpanY, "m"},
		{"Column section", fmt.Sprintf("%.0f x %.0f", in.Column.Width, in.Column.Depth), "cm"},
		{"D/C ratio", res.Capacity.Ratio, ""},
		{"Slab volume", res.Cost.SlabVolume, "m³"},
		{"Column volume", res.Cost.ColumnVolume, "m³"},
		{"Concrete volume", res.Cost.ConcreteVolume, "m³"},
		{"Steel weight", res.Cost.SteelWeight, "t"},
		{"Structure cost", res.Cost.StructureCost, ""},
		{"Facade cost", res.Cost.FacadeCost, ""},
		{"Total cost", res.Cost.TotalCost, ""},
		{"Unit cost", res.Cost.UnitCost, "per ping"},
	}
	if res.Rebar != nil {
		summary = append(summary, []any{"Longitudinal bars", res.Rebar.Label(), ""})
	}
	if err := setRows(f, SheetSummary, summary); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "C1", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 24); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveBOQ writes the bill of quantities workbook to path.
func SaveBOQ(path string, d Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating workbook file: %w", err)
	}
	defer f.Close()
	return WriteBOQ(f, d)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
