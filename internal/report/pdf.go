package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Veraticus/payroll-must-balance/internal/common"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// fontFamily is the embedded Go font, which covers the Bosnian diacritics in
// employee names.
const fontFamily = "Go"

// pdfText replaces the terminal symbols the Go font has no glyph for.
var pdfText = strings.NewReplacer(
	"✓", "yes", "✗", "no",
).Replace

type pdfReport struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	doc Document
}

// WritePDF renders doc as an A4 PDF.
func WritePDF(w io.Writer, doc Document) error {
	r := &pdfReport{
		pdf: fpdf.New("P", "mm", "A4", ""),
		doc: doc,
	}
	r.pdf.AddUTF8FontFromBytes(fontFamily, "", goregular.TTF)
	r.pdf.AddUTF8FontFromBytes(fontFamily, "B", gobold.TTF)
	r.pdf.AddUTF8FontFromBytes(fontFamily, "I", goitalic.TTF)
	r.tr = pdfText

	r.pdf.SetTitle(doc.Title, true)
	r.pdf.SetCreator("payroll", true)
	r.pdf.SetCreationDate(doc.GeneratedAt)
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)

	r.addSummaryPage()
	r.addEmployeePage()
	r.addSweepPage()
	r.addSignatures()

	if err := r.pdf.Error(); err != nil {
		return fmt.Errorf("failed to build PDF: %w", err)
	}
	return r.pdf.Output(w)
}

func (r *pdfReport) addSummaryPage() {
	r.pdf.AddPage()
	d := r.doc

	r.pdf.SetFont(fontFamily, "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, r.tr(d.Title), "", 1, "C", false, 0, "")
	if d.School != "" {
		r.pdf.SetFont(fontFamily, "", 12)
		r.pdf.SetTextColor(80, 80, 80)
		r.pdf.CellFormat(contentWidth, 7, r.tr(d.School), "", 1, "C", false, 0, "")
	}
	r.pdf.SetFont(fontFamily, "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.CellFormat(contentWidth, 6, "Generated "+d.GeneratedAt.Format("02.01.2006"), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)

	r.pdf.SetFont(fontFamily, "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.MultiCell(contentWidth, 5, r.tr(d.Narrative), "", "J", false)
	r.pdf.Ln(6)

	r.drawCards()
	r.pdf.Ln(6)

	r.drawSectionHeader("Parameter verification")
	widths := []float64{90, 90}
	r.drawTableHeader([]string{"Parameter", "Value"}, widths)
	for _, p := range d.Parameters() {
		r.drawTableRow([]string{p[0], p[1]}, widths, false)
	}
	r.pdf.Ln(6)

	r.drawSectionHeader("Categories (annual)")
	widths = []float64{50, 25, 35, 35, 35}
	r.drawTableHeader([]string{"Category", "Employees", "Current net", "Final net", "Raise cost"}, widths)
	rows := categoryRows(d)
	for i, row := range rows {
		r.drawTableRow(row, widths, i == len(rows)-1)
	}
	r.pdf.Ln(6)

	r.drawSectionHeader("Loyalty groups (monthly)")
	widths = []float64{75, 30, 30, 45}
	r.drawTableHeader([]string{"Group", "Bonus", "Employees", "Bruto cost"}, widths)
	for _, row := range bucketRows(d) {
		r.drawTableRow(row, widths, false)
	}
	r.pdf.Ln(6)

	r.drawSectionHeader("Budget waterfall (annual)")
	widths = []float64{110, 70}
	r.drawTableHeader([]string{"Step", "Amount"}, widths)
	for i, row := range waterfallRows(d) {
		r.drawTableRow(row, widths, i == len(d.Waterfall)-1)
	}
}

func (r *pdfReport) drawCards() {
	d := r.doc
	half := contentWidth/2 - 2
	y := r.pdf.GetY()

	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.Rect(marginLeft, y, half, 24, "FD")
	r.pdf.Rect(marginLeft+half+4, y, half, 24, "FD")

	r.pdf.SetXY(marginLeft, y+3)
	r.pdf.SetFont(fontFamily, "", 9)
	r.pdf.SetTextColor(100, 100, 100)
	r.pdf.CellFormat(half, 5, "Monthly bruto burden", "", 2, "C", false, 0, "")
	r.pdf.SetFont(fontFamily, "B", 14)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(half, 9, r.tr(common.FormatMoney(d.MonthlyBrutoBurden)), "", 0, "C", false, 0, "")

	r.pdf.SetXY(marginLeft+half+4, y+3)
	r.pdf.SetFont(fontFamily, "", 9)
	r.pdf.SetTextColor(100, 100, 100)
	r.pdf.CellFormat(half, 5, "Operating result", "", 2, "C", false, 0, "")
	r.pdf.SetFont(fontFamily, "B", 14)
	if d.Verdict == VerdictSurplus {
		r.pdf.SetTextColor(0, 128, 0)
	} else {
		r.pdf.SetTextColor(180, 0, 0)
	}
	r.pdf.CellFormat(half, 9, r.tr(d.Verdict+"  "+common.FormatSignedMoney(d.Stats.OperationalBuffer)), "", 0, "C", false, 0, "")

	r.pdf.SetXY(marginLeft, y+24)
}

func (r *pdfReport) addEmployeePage() {
	r.pdf.AddPage()
	r.drawSectionHeader("Employees (monthly net)")

	widths := []float64{48, 40, 10, 14, 18, 25, 25}
	r.drawTableHeader([]string{"Name", "Role", "Cat", "Start", "Bonus", "Current", "Target"}, widths)
	for _, row := range r.doc.EmployeeRows() {
		r.drawTableRow([]string{
			truncate(row.Name, 28), truncate(row.Role, 24), row.Category, row.StartYear,
			row.Bonus, row.CurrentNet, row.FinalNet,
		}, widths, false)
	}
	t := r.doc.Totals
	r.drawTableRow([]string{
		fmt.Sprintf("Total (%d)", t.Count), "", "", "", "",
		common.FormatMoney(t.CurrentNet), common.FormatMoney(t.FinalNet),
	}, widths, true)
}

func (r *pdfReport) addSweepPage() {
	if len(r.doc.Sweep) == 0 {
		return
	}
	r.pdf.Ln(8)
	r.drawSectionHeader("Tuition sweep (annual)")
	widths := []float64{25, 45, 45, 45, 20}
	r.drawTableHeader([]string{"Tuition", "Revenue growth", "Gross increase", "Buffer", "OK"}, widths)
	for _, row := range sweepRows(r.doc) {
		r.drawTableRow(row, widths, false)
	}
}

func (r *pdfReport) addSignatures() {
	sigs := r.doc.Signatories
	if len(sigs) == 0 {
		return
	}
	r.pdf.Ln(20)
	width := contentWidth / float64(len(sigs))
	y := r.pdf.GetY()
	r.pdf.SetDrawColor(80, 80, 80)
	for i := range sigs {
		x := marginLeft + float64(i)*width
		r.pdf.Line(x+8, y, x+width-8, y)
	}
	r.pdf.Ln(2)
	r.pdf.SetFont(fontFamily, "B", 9)
	r.pdf.SetTextColor(50, 50, 50)
	for i, s := range sigs {
		ln := 0
		if i == len(sigs)-1 {
			ln = 1
		}
		r.pdf.CellFormat(width, 5, r.tr(strings.ToUpper(s)), "", ln, "C", false, 0, "")
	}
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont(fontFamily, "B", 13)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, r.tr(title), "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont(fontFamily, "B", 8)
	for i, h := range headers {
		r.pdf.CellFormat(widths[i], 6, r.tr(h), "1", 0, cellAlign(i), true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, bold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)
	if bold {
		r.pdf.SetFont(fontFamily, "B", 8)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont(fontFamily, "", 8)
	}
	for i, c := range cells {
		r.pdf.CellFormat(widths[i], 5, r.tr(c), "1", 0, cellAlign(i), true, 0, "")
	}
	r.pdf.Ln(-1)
}

func cellAlign(col int) string {
	if col == 0 {
		return "L"
	}
	return "R"
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes-3]) + "..."
}
