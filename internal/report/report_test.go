package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/payroll-must-balance/internal/engine"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/testutil/rosters"
)

var generatedAt = time.Date(2026, time.January, 15, 9, 30, 0, 0, time.UTC)

func seedDocument(t *testing.T, tuition float64) Document {
	t.Helper()
	eng := engine.MustNew(model.DefaultPolicy())
	return Build(eng, rosters.Seed(), tuition, generatedAt, Options{School: "Test Kindergarten"})
}

func TestBuild_Unsustainable(t *testing.T) {
	doc := seedDocument(t, 6)

	assert.Equal(t, "Salary Strategy 2026", doc.Title)
	assert.Equal(t, VerdictDeficit, doc.Verdict)
	assert.False(t, doc.Stats.IsSustainable)
	assert.Len(t, doc.Employees, rosters.SeedSize)
	assert.Equal(t, 1, doc.Employees[0].Employee.ID)
	assert.InDelta(t, 104953.09/12, doc.MonthlyBrutoBurden, 0.01)
	assert.InDelta(t, 8746.09, doc.Totals.BrutoCost, 0.01)
	assert.Equal(t, DefaultSignatories(), doc.Signatories)
	assert.Len(t, doc.Sweep, 11)
	assert.Len(t, doc.Waterfall, 5)
	assert.Equal(t, 2025, doc.Gross.CurrentYear)

	assert.Contains(t, doc.Narrative, "unsustainability")
	assert.Contains(t, doc.Narrative, "urgent revision")
	assert.Contains(t, doc.Narrative, "to break even")
}

func TestBuild_Sustainable(t *testing.T) {
	doc := seedDocument(t, 12)

	assert.Equal(t, VerdictSurplus, doc.Verdict)
	assert.Contains(t, doc.Narrative, "confirms full financial sustainability")
	assert.NotContains(t, doc.Narrative, "urgent")
}

func TestBuild_Options(t *testing.T) {
	eng := engine.MustNew(model.DefaultPolicy())
	doc := Build(eng, rosters.Seed(), 6, generatedAt, Options{
		Title:       "Strategija 2026",
		Signatories: []string{"Direktor ustanove"},
		SweepFrom:   4,
		SweepTo:     8,
		SweepStep:   2,
	})
	assert.Equal(t, "Strategija 2026", doc.Title)
	assert.Equal(t, []string{"Direktor ustanove"}, doc.Signatories)
	require.Len(t, doc.Sweep, 3)
	assert.InDelta(t, 8, doc.Sweep[2].TuitionIncrease, 1e-9)
}

func TestBuild_EmptyRoster(t *testing.T) {
	eng := engine.MustNew(model.DefaultPolicy())
	doc := Build(eng, nil, 6, generatedAt, Options{})

	assert.Equal(t, VerdictSurplus, doc.Verdict)
	assert.Empty(t, doc.Employees)
	assert.Zero(t, doc.MonthlyBrutoBurden)

	var buf bytes.Buffer
	for _, f := range Formats() {
		buf.Reset()
		assert.NoError(t, Write(&buf, f, doc), f)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "txt", want: FormatText},
		{in: "PDF", want: FormatPDF},
		{in: " xlsx ", want: FormatXLSX},
		{in: "json", want: FormatJSON},
		{in: "docx", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatPDF, FormatForPath("/tmp/report.pdf"))
	assert.Equal(t, FormatXLSX, FormatForPath("report.XLSX"))
	assert.Equal(t, FormatText, FormatForPath("report"))
	assert.Equal(t, FormatText, FormatForPath("report.docx"))
	assert.Equal(t, ".txt", FormatText.Extension())
	assert.Equal(t, ".pdf", FormatPDF.Extension())
}

func TestRenderText(t *testing.T) {
	out := RenderText(seedDocument(t, 6))

	for _, want := range []string{
		"Salary Strategy 2026",
		"Test Kindergarten",
		"DEFICIT",
		"MULALIĆ DAVOR",
		"8.746,09 KM",
		"Bruto factor",
		"1.63",
		"DIRECTOR",
		"CHAIR OF THE GOVERNING BOARD",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, seedDocument(t, 6)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	// embedded TrueType rather than a cp1252 core font
	assert.Contains(t, buf.String(), "/Type0")
	assert.NotContains(t, buf.String(), "/Helvetica")
}

func TestPDFText_KeepsDiacritics(t *testing.T) {
	assert.Equal(t, "MULALIĆ DAVOR", pdfText("MULALIĆ DAVOR"))
	assert.Equal(t, "DŽIDIĆ NIZAMA ≤ 2020", pdfText("DŽIDIĆ NIZAMA ≤ 2020"))
	assert.Equal(t, "MA yes", pdfText("MA ✓"))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, seedDocument(t, 6)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetSummary, SheetEmployees, SheetSweep}, f.GetSheetList())

	rows, err := f.GetRows(SheetEmployees, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 1+rosters.SeedSize+1)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "MULALIĆ DAVOR", rows[1][1])
	assert.Equal(t, "DŽIDIĆ NIZAMA", rows[rosters.SeedSize][1])
	assert.Equal(t, "Total", rows[rosters.SeedSize+1][1])

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, "Salary Strategy 2026", summary[0][0])

	verdict, err := f.GetCellValue(SheetSummary, "B4")
	require.NoError(t, err)
	assert.Equal(t, VerdictDeficit, verdict)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, seedDocument(t, 6)))

	var decoded struct {
		Title     string `json:"title"`
		Verdict   string `json:"verdict"`
		Employees []struct {
			FinalNet float64 `json:"final_net"`
		} `json:"employees"`
		Stats struct {
			IsSustainable bool    `json:"is_sustainable"`
			GrossIncrease float64 `json:"gross_increase"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Salary Strategy 2026", decoded.Title)
	assert.Equal(t, VerdictDeficit, decoded.Verdict)
	assert.Len(t, decoded.Employees, rosters.SeedSize)
	assert.False(t, decoded.Stats.IsSustainable)
	assert.InDelta(t, 104953.09, decoded.Stats.GrossIncrease, 0.01)
}

func TestWriteFile(t *testing.T) {
	doc := seedDocument(t, 6)
	dir := t.TempDir()

	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			path := filepath.Join(dir, "nested", "report"+f.Extension())
			require.NoError(t, WriteFile(path, f, doc))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}

	assert.Error(t, WriteFile("  ", FormatText, doc))
	assert.Error(t, WriteFile(filepath.Join(dir, "x.bin"), Format("bin"), doc))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "KRATKO", truncate("KRATKO", 10))
	assert.Equal(t, "ČČČČ...", truncate(strings.Repeat("Č", 12), 7))
}
