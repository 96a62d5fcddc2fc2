package report

import (
	"fmt"
	"io"
	"os"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gorcframe/internal/capacity"
	"github.com/alexiusacademia/gorcframe/internal/cost"
)

const (
	pdfFont     = "Helvetica"
	pdfLineH    = 6.0
	pdfLabelW   = 70.0
	pdfSectionH = 9.0
)

// WritePDF writes the calculation report. A blocked run still reports
// every upstream stage together with the remedies for the column.
func WritePDF(w io.Writer, d Document) error {
	res := d.Result
	if res == nil {
		return fmt.Errorf("report: no result to render")
	}
	in := d.Input

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(d.title(), true)
	pdf.SetAuthor(d.Author, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 16)
	pdf.Cell(0, 10, tr("Structural Calculation Report"))
	pdf.Ln(12)
	pdf.SetFont(pdfFont, "", 11)
	pdf.Cell(0, pdfLineH, tr(fmt.Sprintf("Project: %s", d.title())))
	pdf.Ln(pdfLineH)
	if d.Author != "" {
		pdf.Cell(0, pdfLineH, tr(fmt.Sprintf("Author: %s", d.Author)))
		pdf.Ln(pdfLineH)
	}
	pdf.Cell(0, pdfLineH, fmt.Sprintf("Date: %s", d.date()))
	pdf.Ln(pdfLineH)

	row := func(label, value string) {
		pdf.SetFont(pdfFont, "", 10)
		pdf.CellFormat(pdfLabelW, pdfLineH, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, pdfLineH, tr(value), "", 1, "L", false, 0, "")
	}
	n := 0
	section := func(title string) {
		n++
		pdf.Ln(3)
		pdf.SetFont(pdfFont, "B", 12)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(0, pdfSectionH, tr(fmt.Sprintf("%d. %s", n, title)), "", 1, "L", true, 0, "")
	}

	section("Site and climate")
	row("Site", fmt.Sprintf("%.1f × %.1f m (%.1f m²)", in.Site.Width, in.Site.Depth, in.Site.Area()))
	row("Location", fmt.Sprintf("%.4f, %.4f", in.Latitude, in.Longitude))
	row("Floors", fmt.Sprintf("%d above grade, %d below", in.Floors.Above, in.Floors.Below))
	row("Climate zone", res.Climate.Profile.Zone.String())
	row("Strategy", res.Climate.Profile.Strategy)
	row("Glazing", fmt.Sprintf("%s (U = %.1f W/m²K)", res.Climate.Glazing.Name(), res.Climate.UValue))
	row("Wall finish", res.Climate.Wall.Name())
	row("Energy score", fmt.Sprintf("%.0f / 100", res.Climate.EnergyScore))

	section("Column grid")
	row("Column lines", fmt.Sprintf("%d × %d = %d columns", res.Grid.NX, res.Grid.NY, res.Grid.TotalColumns))
	row("Requested spacing", fmt.Sprintf("%.2f × %.2f m", res.Grid.SpanX, res.Grid.SpanY))
	row("Actual spacing", fmt.Sprintf("%.2f × %.2f m", res.Grid.ActualSpanX, res.Grid.ActualSpanY))
	row("Span check", res.SpanClass.Advice())

	section("Worst-case column")
	c := res.Capacity
	row("Section", fmt.Sprintf("%.0f × %.0f cm, %s", in.Column.Width, in.Column.Depth, in.Column.Grade))
	row("Tributary basis", res.Config.Basis.String())
	row("Tributary area", fmt.Sprintf("%.2f m²", c.TributaryArea))
	row("Demand Pu", fmt.Sprintf("%.2f t", c.Demand))
	row("Capacity phiPn", fmt.Sprintf("%.2f t", c.Capacity))
	row("D/C ratio", fmt.Sprintf("%.4f", c.Ratio))

	pdf.SetFont(pdfFont, "B", 11)
	if res.State == capacity.Safe {
		pdf.SetTextColor(0, 128, 0)
		pdf.CellFormat(0, pdfSectionH, "SAFE", "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	} else {
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(0, pdfSectionH, "BLOCKED: demand exceeds capacity", "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(pdfFont, "", 10)
		for _, s := range c.Suggestions() {
			pdf.CellFormat(0, pdfLineH, tr("- "+s), "", 1, "L", false, 0, "")
		}
	}

	if res.Rebar != nil {
		section("Longitudinal reinforcement")
		rb := res.Rebar
		row("Bars", fmt.Sprintf("%s (%s)", rb.Label(), rb.Bar.Metric()))
		row("Minimum As (1%)", fmt.Sprintf("%.2f cm²", rb.MinSteelArea))
		row("Provided As", fmt.Sprintf("%.2f cm²", rb.ProvidedArea))
		row("Steel ratio", fmt.Sprintf("%.3f %%", rb.SteelRatio*100))
	}

	if res.Cost != nil {
		section("Cost estimate")
		pdf.SetFont(pdfFont, "B", 10)
		header := []struct {
			text  string
			width float64
			align string
		}{{"Item", 80, "L"}, {"Quantity", 30, "R"}, {"Unit", 15, "C"}, {"Rate", 30, "R"}, {"Amount", 35, "R"}}
		for _, h := range header {
			pdf.CellFormat(h.width, pdfLineH, h.text, "B", 0, h.align, false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(pdfFont, "", 10)
		for _, it := range res.Cost.Items(in.Prices) {
			pdf.CellFormat(80, pdfLineH, tr(it.Description), "", 0, "L", false, 0, "")
			pdf.CellFormat(30, pdfLineH, fmt.Sprintf("%.2f", it.Quantity), "", 0, "R", false, 0, "")
			pdf.CellFormat(15, pdfLineH, tr(it.Unit), "", 0, "C", false, 0, "")
			pdf.CellFormat(30, pdfLineH, fmt.Sprintf("%.0f", it.Rate), "", 0, "R", false, 0, "")
			pdf.CellFormat(35, pdfLineH, fmt.Sprintf("%.0f", it.Amount), "", 1, "R", false, 0, "")
		}
		pdf.SetFont(pdfFont, "B", 10)
		pdf.CellFormat(155, pdfLineH, "Total", "T", 0, "L", false, 0, "")
		pdf.CellFormat(35, pdfLineH, fmt.Sprintf("%.0f", res.Cost.TotalCost), "T", 1, "R", false, 0, "")
		row("Floor area", fmt.Sprintf("%.1f m² (%.1f ping)", res.Cost.FloorArea, res.Cost.FloorArea/cost.M2PerPing))
		row("Unit cost", fmt.Sprintf("%.0f per ping", res.Cost.UnitCost))
	}

	section("Design notes")
	for _, t := range res.Tags {
		pdf.SetFont(pdfFont, "", 10)
		pdf.MultiCell(0, pdfLineH, tr("- "+t.Text), "", "L", false)
	}
	z := res.Zoning
	zoning := fmt.Sprintf("Floor area %.1f m² against an allowance of %.1f m²", z.ProposedFloorArea, z.MaxFloorArea)
	if !z.WithinFloorArea {
		zoning += " (exceeds the allowed floor area ratio)"
	}
	pdf.MultiCell(0, pdfLineH, tr(zoning), "", "L", false)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building PDF: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

// SavePDF writes the calculation report to path.
func SavePDF(path string, d Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()
	return WritePDF(f, d)
}
