package report

import (
	"bytes"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gorcframe/internal/capacity"
	"github.com/alexiusacademia/gorcframe/internal/climate"
	"github.com/alexiusacademia/gorcframe/internal/nscp"
	"github.com/alexiusacademia/gorcframe/internal/pipeline"
	"github.com/alexiusacademia/gorcframe/internal/project"
	"github.com/alexiusacademia/gorcframe/internal/rebar"
)

func safeDocument() Document {
	in := pipeline.DefaultInput()
	return Document{
		Project: "Reference tower",
		Author:  "QA",
		Date:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Input:   in,
		Result:  pipeline.Run(in, pipeline.DefaultConfig()),
	}
}

func blockedDocument() Document {
	in := pipeline.DefaultInput()
	in.Column = capacity.Section{Width: 50, Depth: 50, Grade: nscp.FC210}
	in.Floors = pipeline.Floors{Above: 25}
	return Document{Project: "Too tall", Input: in, Result: pipeline.Run(in, pipeline.DefaultConfig())}
}

func rawFloat(t *testing.T, f *excelize.File, sheet, cell string) float64 {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	n, err := strconv.ParseFloat(v, 64)
	require.NoError(t, err, "cell %s!%s = %q", sheet, cell, v)
	return n
}

func TestWritePDF(t *testing.T) {
	for name, d := range map[string]Document{"safe": safeDocument(), "blocked": blockedDocument()} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WritePDF(&buf, d))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
		})
	}
}

func TestWritePDFNeedsResult(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WritePDF(&buf, Document{}))
}

func TestSavePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, SavePDF(path, safeDocument()))
	assert.FileExists(t, path)
}

func TestWriteBOQ(t *testing.T) {
	d := safeDocument()
	var buf bytes.Buffer
	require.NoError(t, WriteBOQ(&buf, d))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetBOQ, SheetSummary}, f.GetSheetList())

	title, err := f.GetCellValue(SheetBOQ, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Reference tower", title)

	head, err := f.GetCellValue(SheetBOQ, "E4")
	require.NoError(t, err)
	assert.Equal(t, "Amount", head)

	assert.InDelta(t, d.Result.Cost.ConcreteVolume, rawFloat(t, f, SheetBOQ, "B5"), 1e-9)
	assert.InDelta(t, d.Result.Cost.SteelCost, rawFloat(t, f, SheetBOQ, "E6"), 1e-6)
	assert.InDelta(t, 7175414.4, rawFloat(t, f, SheetBOQ, "E8"), 1e-6)

	label, err := f.GetCellValue(SheetBOQ, "A8")
	require.NoError(t, err)
	assert.Equal(t, "Total", label)
}

func TestWriteBOQBlocked(t *testing.T) {
	var buf bytes.Buffer
	err := WriteBOQ(&buf, blockedDocument())
	assert.ErrorIs(t, err, capacity.ErrBlocked)
	assert.Zero(t, buf.Len())
}

func scenarioWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, setRows(f, "Sheet1", rows))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadScenarios(t *testing.T) {
	buf := scenarioWorkbook(t, [][]any{
		{"Name", "Floors_Above", "Column_Width", "Column_Depth", "fc", "bar", "glazing", "notes"},
		{"Base", 7, nil, nil, nil, nil, nil, "ignored"},
		{"Tall", 30, 100, 100, 420, "#10", "low-e", nil},
		{"Bad bar", 7, 60, 60, 280, "#9", nil, nil},
		{},
		{"Out of range", 7, 20, 60, 280, nil, nil, nil},
	})

	got, err := ReadScenarios(buf, project.Default())
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, 2, got[0].Row)
	assert.NoError(t, got[0].Err)
	assert.Equal(t, "Base", got[0].Project.Name)
	assert.Equal(t, 60.0, got[0].Project.Column.Width)

	tall := got[1].Project
	assert.NoError(t, got[1].Err)
	assert.Equal(t, 30, tall.Floors.Above)
	assert.Equal(t, 100.0, tall.Column.Depth)
	assert.Equal(t, 420, tall.Column.Fc)
	assert.Equal(t, rebar.Bar10, tall.Column.Bar)
	assert.Equal(t, climate.LowE, tall.Envelope.Glazing)

	assert.Error(t, got[2].Err)
	assert.Contains(t, got[2].Err.Error(), "column bar")

	assert.Equal(t, 6, got[3].Row)
	var verr *project.ValidationError
	assert.ErrorAs(t, got[3].Err, &verr)
}

func TestReadScenariosLeavesBaseUntouched(t *testing.T) {
	base := project.Default()
	buf := scenarioWorkbook(t, [][]any{{"floors_above"}, {12}})

	got, err := ReadScenarios(buf, base)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 12, got[0].Project.Floors.Above)
	assert.Equal(t, 7, base.Floors.Above)
}

func TestReadScenariosEmpty(t *testing.T) {
	buf := scenarioWorkbook(t, [][]any{{"name", "floors_above"}})
	_, err := ReadScenarios(buf, project.Default())
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, err = ReadScenarios(bytes.NewReader([]byte("not a workbook")), project.Default())
	assert.Error(t, err)
}

func TestWriteOutcomes(t *testing.T) {
	safe := safeDocument()
	blocked := blockedDocument()
	outcomes := []Outcome{
		{Row: 2, Name: "safe", Result: safe.Result},
		{Row: 3, Name: "blocked", Result: blocked.Result},
		{Row: 4, Name: "invalid", Err: assert.AnError},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOutcomes(&buf, outcomes))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetResults)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "safe", rows[1][2])
	assert.Equal(t, "8-#8", rows[1][4])
	assert.Equal(t, "blocked", rows[2][2])
	assert.Contains(t, rows[2][len(rows[2])-1], "column demand exceeds capacity")
	assert.Equal(t, "invalid", rows[3][2])
	assert.Equal(t, assert.AnError.Error(), rows[3][len(rows[3])-1])
}
