package sheets

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/payroll-must-balance/internal/report"
)

// Tab names written by the exporter.
const (
	TabSummary   = "Summary"
	TabEmployees = "Employees"
	TabSweep     = "Sweep"
)

// Tabs lists every tab in display order.
func Tabs() []string {
	return []string{TabSummary, TabEmployees, TabSweep}
}

// MoneyPattern is the Sheets number format for money cells.
const MoneyPattern = `#,##0.00 "KM"`

// FigureRow is one labelled amount in the Summary tab.
type FigureRow struct {
	Label  string
	Amount decimal.Decimal
}

// CategoryRow summarises one category for a year.
type CategoryRow struct {
	Category   string
	CurrentNet decimal.Decimal
	FinalNet   decimal.Decimal
	RaiseCost  decimal.Decimal
	Count      int
}

// EmployeeRow is one employee in the Employees tab. Amounts are monthly.
type EmployeeRow struct {
	Name       string
	Role       string
	Category   string
	CurrentNet decimal.Decimal
	TargetNet  decimal.Decimal
	FinalNet   decimal.Decimal
	NetRaise   decimal.Decimal
	BrutoRaise decimal.Decimal
	BonusPct   decimal.Decimal
	ID         int
	StartYear  int
	Tenure     int
}

// SweepRow is one tuition step.
type SweepRow struct {
	TuitionPct    decimal.Decimal
	RevenueGrowth decimal.Decimal
	GrossIncrease decimal.Decimal
	Buffer        decimal.Decimal
	Sustainable   bool
}

// TabData holds everything written to the spreadsheet.
type TabData struct {
	GeneratedAt time.Time
	Title       string
	Verdict     string
	Narrative   string
	Parameters  [][2]string
	Figures     []FigureRow
	Categories  []CategoryRow
	Employees   []EmployeeRow
	Sweep       []SweepRow
	Totals      EmployeeRow
}

// money rounds to cents.
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// NewTabData converts a report into spreadsheet rows.
func NewTabData(doc report.Document) TabData {
	s := doc.Stats
	td := TabData{
		GeneratedAt: doc.GeneratedAt,
		Title:       doc.Title,
		Verdict:     doc.Verdict,
		Narrative:   doc.Narrative,
		Parameters:  doc.Parameters(),
		Figures: []FigureRow{
			{Label: "Revenue growth", Amount: money(s.RevenueGrowth)},
			{Label: "Current annual net", Amount: money(s.TotalCurrentNet)},
			{Label: "New annual net", Amount: money(s.TotalNewNet)},
			{Label: "Current annual gross", Amount: money(s.TotalCurrentGross)},
			{Label: "New annual gross", Amount: money(s.TotalNewGross)},
			{Label: "Gross increase", Amount: money(s.GrossIncrease)},
			{Label: "Operational buffer", Amount: money(s.OperationalBuffer)},
			{Label: "Monthly bruto burden", Amount: money(doc.MonthlyBrutoBurden)},
		},
	}

	for _, cs := range s.CategorySummaries {
		td.Categories = append(td.Categories, CategoryRow{
			Category:   fmt.Sprintf("%s %s", cs.Category, cs.Category.Label()),
			Count:      cs.Count,
			CurrentNet: money(cs.CurrentNet),
			FinalNet:   money(cs.FinalNet),
			RaiseCost:  money(cs.RaiseCost),
		})
	}

	hundred := decimal.NewFromInt(100)
	for _, p := range doc.Employees {
		e := p.Employee
		td.Employees = append(td.Employees, EmployeeRow{
			ID:         e.ID,
			Name:       e.Name,
			Role:       e.Role,
			Category:   string(e.Category),
			StartYear:  e.StartYear,
			Tenure:     p.TenureYears,
			BonusPct:   decimal.NewFromFloat(p.TotalBonus()).Mul(hundred).Round(1),
			CurrentNet: money(e.CurrentNet),
			TargetNet:  money(e.TargetNet),
			FinalNet:   money(p.FinalNet),
			NetRaise:   money(p.NetRaise),
			BrutoRaise: money(p.BrutoRaise),
		})
	}
	td.Totals = EmployeeRow{
		Name:       "Total",
		CurrentNet: money(doc.Totals.CurrentNet),
		FinalNet:   money(doc.Totals.FinalNet),
		NetRaise:   money(doc.Totals.NetIncrease),
		BrutoRaise: money(doc.Totals.BrutoCost),
	}

	for _, pt := range doc.Sweep {
		td.Sweep = append(td.Sweep, SweepRow{
			TuitionPct:    decimal.NewFromFloat(pt.TuitionIncrease).Round(2),
			RevenueGrowth: money(pt.RevenueGrowth),
			GrossIncrease: money(pt.GrossIncrease),
			Buffer:        money(pt.OperationalBuffer),
			Sustainable:   pt.IsSustainable,
		})
	}
	return td
}
