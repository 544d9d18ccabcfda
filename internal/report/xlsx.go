package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/payroll-must-balance/internal/model"
)

// Sheet names of the XLSX report.
const (
	SheetSummary   = "Summary"
	SheetEmployees = "Employees"
	SheetSweep     = "Sweep"
)

// MoneyFormat is the number format used for money cells.
const MoneyFormat = `#,##0.00 "KM"`

type xlsxStyles struct {
	header int
	money  int
	bold   int
}

// WriteXLSX writes doc as a workbook with a summary, an employee and a sweep sheet.
func WriteXLSX(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	styles, err := newXLSXStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeSummarySheet(f, styles, doc); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetEmployees); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeEmployeeSheet(f, styles, doc); err != nil {
		return err
	}

	if len(doc.Sweep) > 0 {
		if _, err := f.NewSheet(SheetSweep); err != nil {
			return fmt.Errorf("failed to create sheet: %w", err)
		}
		if err := writeSweepSheet(f, styles, doc.Sweep); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	var s xlsxStyles
	var err error
	moneyFmt := MoneyFormat

	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"003366"}, Pattern: 1},
	}); err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}
	if s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt}); err != nil {
		return s, fmt.Errorf("failed to create money style: %w", err)
	}
	if s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, fmt.Errorf("failed to create bold style: %w", err)
	}
	return s, nil
}

// sheetWriter appends rows to one sheet and remembers the first error.
type sheetWriter struct {
	f      *excelize.File
	err    error
	sheet  string
	styles xlsxStyles
	row    int
}

func (sw *sheetWriter) add(values ...any) {
	if sw.err != nil {
		return
	}
	sw.row++
	cell, err := excelize.CoordinatesToCellName(1, sw.row)
	if err != nil {
		sw.err = err
		return
	}
	sw.err = sw.f.SetSheetRow(sw.sheet, cell, &values)
}

// style applies styleID to columns fromCol..toCol of the last row.
func (sw *sheetWriter) style(fromCol, toCol, styleID int) {
	if sw.err != nil {
		return
	}
	from, err := excelize.CoordinatesToCellName(fromCol, sw.row)
	if err != nil {
		sw.err = err
		return
	}
	to, err := excelize.CoordinatesToCellName(toCol, sw.row)
	if err != nil {
		sw.err = err
		return
	}
	sw.err = sw.f.SetCellStyle(sw.sheet, from, to, styleID)
}

func (sw *sheetWriter) header(values ...any) {
	sw.add(values...)
	sw.style(1, len(values), sw.styles.header)
}

func (sw *sheetWriter) blank() {
	sw.row++
}

func (sw *sheetWriter) widths(widths ...float64) {
	for i, wd := range widths {
		if sw.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			sw.err = err
			return
		}
		sw.err = sw.f.SetColWidth(sw.sheet, col, col, wd)
	}
}

func (sw *sheetWriter) done() error {
	if sw.err != nil {
		return fmt.Errorf("failed to write sheet %s: %w", sw.sheet, sw.err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, styles xlsxStyles, doc Document) error {
	sw := &sheetWriter{f: f, sheet: SheetSummary, styles: styles}
	s := doc.Stats

	sw.add(doc.Title)
	sw.style(1, 1, styles.bold)
	if doc.School != "" {
		sw.add(doc.School)
	}
	sw.add("Generated", doc.GeneratedAt.Format("2006-01-02 15:04"))
	sw.add("Verdict", doc.Verdict)
	sw.style(2, 2, styles.bold)
	sw.add(doc.Narrative)
	sw.blank()

	sw.header("Parameter", "Value")
	for _, p := range doc.Parameters() {
		sw.add(p[0], p[1])
	}
	sw.blank()

	sw.header("Figure", "Amount")
	for _, kv := range []struct {
		label string
		value float64
	}{
		{"Revenue growth", s.RevenueGrowth},
		{"Current annual net", s.TotalCurrentNet},
		{"New annual net", s.TotalNewNet},
		{"Current annual gross", s.TotalCurrentGross},
		{"New annual gross", s.TotalNewGross},
		{"Gross increase", s.GrossIncrease},
		{"Operational buffer", s.OperationalBuffer},
		{"Monthly bruto burden", doc.MonthlyBrutoBurden},
	} {
		sw.add(kv.label, kv.value)
		sw.style(2, 2, styles.money)
	}
	sw.blank()

	sw.header("Category", "Employees", "Current net", "Final net", "Raise cost")
	for _, cs := range s.CategorySummaries {
		sw.add(fmt.Sprintf("%s %s", cs.Category, cs.Category.Label()), cs.Count, cs.CurrentNet, cs.FinalNet, cs.RaiseCost)
		sw.style(3, 5, styles.money)
	}
	sw.blank()

	sw.header("Loyalty group", "Bonus", "Employees", "Monthly bruto cost")
	for _, b := range doc.Buckets {
		sw.add(b.Label, b.Bonus, b.Count, b.BrutoCost)
		sw.style(4, 4, styles.money)
	}
	sw.blank()

	sw.header("Waterfall", "Amount")
	for _, step := range doc.Waterfall {
		sw.add(step.Label, step.Value)
		sw.style(2, 2, styles.money)
	}

	sw.widths(32, 20, 18, 18, 18)
	return sw.done()
}

func writeEmployeeSheet(f *excelize.File, styles xlsxStyles, doc Document) error {
	sw := &sheetWriter{f: f, sheet: SheetEmployees, styles: styles}

	sw.header("ID", "Name", "Role", "Category", "Start year", "Tenure", "Advanced degree",
		"Loyalty bonus", "Expertise bonus", "Current net", "Target net", "Final net", "Net raise", "Bruto raise")
	for _, p := range doc.Employees {
		e := p.Employee
		sw.add(e.ID, e.Name, e.Role, string(e.Category), e.StartYear, p.TenureYears, yesNo(e.AdvancedDegree),
			p.LoyaltyBonus, p.ExpertiseBonus, e.CurrentNet, e.TargetNet, p.FinalNet, p.NetRaise, p.BrutoRaise)
		sw.style(10, 14, styles.money)
	}
	t := doc.Totals
	sw.add("", "Total", "", "", "", "", "", "", "", t.CurrentNet, "", t.FinalNet, t.NetIncrease, t.BrutoCost)
	sw.style(1, 14, styles.bold)
	sw.style(10, 14, styles.money)

	sw.widths(6, 28, 24, 10, 10, 8, 10, 10, 10, 16, 16, 16, 14, 14)
	return sw.done()
}

func writeSweepSheet(f *excelize.File, styles xlsxStyles, sweep []model.SweepPoint) error {
	sw := &sheetWriter{f: f, sheet: SheetSweep, styles: styles}
	sw.header("Tuition increase %", "Revenue growth", "Gross increase", "Operational buffer", "Sustainable")
	for _, p := range sweep {
		sw.add(p.TuitionIncrease, p.RevenueGrowth, p.GrossIncrease, p.OperationalBuffer, yesNo(p.IsSustainable))
		sw.style(2, 4, styles.money)
	}
	sw.widths(18, 18, 18, 18, 12)
	return sw.done()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
