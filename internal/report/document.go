// Package report assembles the printable salary strategy report and renders it
// as console text, PDF, XLSX or JSON.
package report

import (
	"fmt"
	"time"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/engine"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/viewmodel"
)

// Verdict labels for the operating result card.
const (
	VerdictSurplus = "SURPLUS"
	VerdictDeficit = "DEFICIT"
)

// Options customise the printed report. Zero values fall back to defaults.
type Options struct {
	Title       string
	School      string
	Signatories []string
	SweepFrom   float64
	SweepTo     float64
	SweepStep   float64
}

// DefaultSignatories are printed under the signature lines.
func DefaultSignatories() []string {
	return []string{"Director", "Chair of the Governing Board"}
}

// Document is everything a writer needs. Money in Stats is annual; Totals,
// Buckets and MonthlyBrutoBurden are monthly.
type Document struct {
	GeneratedAt        time.Time                  `json:"generated_at"`
	Title              string                     `json:"title"`
	School             string                     `json:"school,omitempty"`
	Mode               model.BonusMode            `json:"bonus_mode"`
	Verdict            string                     `json:"verdict"`
	Narrative          string                     `json:"narrative"`
	Signatories        []string                   `json:"signatories"`
	Employees          []model.EmployeeProjection `json:"employees"`
	Buckets            []viewmodel.TenureBucket   `json:"tenure_buckets"`
	Waterfall          []viewmodel.WaterfallStep  `json:"waterfall"`
	Sweep              []model.SweepPoint         `json:"sweep"`
	Stats              model.FinancialStats       `json:"stats"`
	Totals             viewmodel.Totals           `json:"monthly_totals"`
	Gross              viewmodel.GrossComparison  `json:"gross_comparison"`
	ReferenceYear      int                        `json:"reference_year"`
	TuitionIncrease    float64                    `json:"tuition_increase"`
	BrutoFactor        float64                    `json:"bruto_factor"`
	MonthlyBrutoBurden float64                    `json:"monthly_bruto_burden"`
}

// Build runs the engine for roster at the given tuition increase and
// assembles the report around the result.
func Build(eng *engine.Engine, roster model.Roster, tuitionIncrease float64, generatedAt time.Time, opts Options) Document {
	policy := eng.Policy()
	opts = withDefaults(opts, policy.ReferenceYear)

	projections := eng.Project(roster)
	viewmodel.Sort(projections, viewmodel.SortByID, false)
	stats := eng.CalculateProjections(projections, tuitionIncrease)

	doc := Document{
		GeneratedAt:     generatedAt,
		Title:           opts.Title,
		School:          opts.School,
		Mode:            policy.Mode,
		Signatories:     opts.Signatories,
		Employees:       projections,
		Buckets:         viewmodel.TenureBuckets(eng.Table(), policy.ReferenceYear, projections),
		Waterfall:       viewmodel.Waterfall(stats),
		Sweep:           eng.Sweep(roster, opts.SweepFrom, opts.SweepTo, opts.SweepStep),
		Stats:           stats,
		Totals:          viewmodel.FilteredTotals(projections),
		Gross:           viewmodel.CompareGross(stats, policy.ReferenceYear),
		ReferenceYear:   policy.ReferenceYear,
		TuitionIncrease: tuitionIncrease,
		BrutoFactor:     policy.BrutoFactor,
	}
	doc.MonthlyBrutoBurden = stats.GrossIncrease / float64(policy.MonthsPerYear)
	doc.Verdict = VerdictDeficit
	if stats.IsSustainable {
		doc.Verdict = VerdictSurplus
	}
	doc.Narrative = narrative(doc)
	return doc
}

func withDefaults(opts Options, referenceYear int) Options {
	if opts.Title == "" {
		opts.Title = fmt.Sprintf("Salary Strategy %d", referenceYear)
	}
	if len(opts.Signatories) == 0 {
		opts.Signatories = DefaultSignatories()
	}
	if opts.SweepStep <= 0 {
		opts.SweepFrom, opts.SweepTo, opts.SweepStep = viewmodel.SliderMin, viewmodel.SliderMax, 1
	}
	return opts
}

func narrative(d Document) string {
	s := d.Stats
	if s.IsSustainable {
		return fmt.Sprintf(
			"The analysis of the %d salary strategy confirms full financial sustainability. "+
				"A tuition increase of %s brings %s of additional annual revenue, which absorbs "+
				"the bruto burden of %s per month and leaves a stable operating surplus of %s.",
			d.ReferenceYear,
			common.FormatPercent(d.TuitionIncrease),
			common.FormatMoney(s.RevenueGrowth),
			common.FormatMoney(d.MonthlyBrutoBurden),
			common.FormatMoney(s.OperationalBuffer),
		)
	}
	text := fmt.Sprintf(
		"The analysis of the %d salary strategy indicates financial unsustainability. "+
			"With a tuition increase of %s the bruto burden of %s per month exceeds the revenue "+
			"growth of %s per year, leaving a deficit of %s. The policy requires urgent revision",
		d.ReferenceYear,
		common.FormatPercent(d.TuitionIncrease),
		common.FormatMoney(d.MonthlyBrutoBurden),
		common.FormatMoney(s.RevenueGrowth),
		common.FormatMoney(-s.OperationalBuffer),
	)
	if s.BreakEvenTuition > 0 {
		text += fmt.Sprintf("; tuition would have to rise by at least %s to break even", common.FormatPercent(s.BreakEvenTuition))
	}
	return text + "."
}

// Row is the printable form of one employee line.
type Row struct {
	Name       string
	Role       string
	Category   string
	StartYear  string
	Bonus      string
	CurrentNet string
	FinalNet   string
}

// EmployeeRows formats the employee table shared by the text and PDF writers.
func (d Document) EmployeeRows() []Row {
	rows := make([]Row, 0, len(d.Employees))
	for _, p := range d.Employees {
		rows = append(rows, Row{
			Name:       p.Employee.Name,
			Role:       p.Employee.Role,
			Category:   string(p.Employee.Category),
			StartYear:  fmt.Sprintf("%d", p.Employee.StartYear),
			Bonus:      common.FormatFraction(p.TotalBonus()),
			CurrentNet: common.FormatMoney(p.Employee.CurrentNet),
			FinalNet:   common.FormatMoney(p.FinalNet),
		})
	}
	return rows
}

// Parameters returns the label/value pairs of the parameter verification table.
func (d Document) Parameters() [][2]string {
	return [][2]string{
		{"Reference year", fmt.Sprintf("%d", d.ReferenceYear)},
		{"Bruto factor", fmt.Sprintf("%.2f", d.BrutoFactor)},
		{"Tuition increase", "+" + common.FormatPercent(d.TuitionIncrease)},
		{"Bonus mode", string(d.Mode)},
		{"Total employees", fmt.Sprintf("%d", d.Stats.EmployeeCount)},
		{"Break-even tuition", common.FormatPercent(d.Stats.BreakEvenTuition)},
	}
}
