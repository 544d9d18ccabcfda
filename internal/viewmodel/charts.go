package viewmodel

import (
	"fmt"
	"math"

	"github.com/Veraticus/payroll-must-balance/internal/engine"
	"github.com/Veraticus/payroll-must-balance/internal/model"
)

// TenureBucket groups employees that fall under the same loyalty rule.
// BrutoCost is the monthly bruto raise cost of the group.
type TenureBucket struct {
	Label          string  `json:"label"`
	MinTenure      int     `json:"min_tenure"`
	MaxTenure      int     `json:"max_tenure"`       // exclusive; 0 when open-ended
	FirstStartYear int     `json:"first_start_year"` // 0 when open-ended
	LastStartYear  int     `json:"last_start_year"`
	Bonus          float64 `json:"bonus"`
	Count          int     `json:"count"`
	BrutoCost      float64 `json:"bruto_cost"`
}

// TenureBuckets returns one bucket per loyalty rule, longest tenure first.
// Employees below every threshold land in a trailing "no bonus" bucket, which
// is only present when someone falls into it.
func TenureBuckets(table engine.BonusTable, referenceYear int, projections []model.EmployeeProjection) []TenureBucket {
	rules := table.Rules()
	buckets := make([]TenureBucket, 0, len(rules)+1)
	for i, r := range rules {
		b := TenureBucket{
			MinTenure:     r.MinTenureYears,
			Bonus:         r.Bonus,
			LastStartYear: referenceYear - r.MinTenureYears,
		}
		if i > 0 {
			b.MaxTenure = rules[i-1].MinTenureYears
			b.FirstStartYear = referenceYear - b.MaxTenure + 1
		}
		b.Label = bucketLabel(b)
		buckets = append(buckets, b)
	}

	var below TenureBucket
	for _, p := range projections {
		idx := bucketIndex(rules, p.TenureYears)
		if idx < 0 {
			below.Count++
			below.BrutoCost += p.BrutoRaise
			continue
		}
		buckets[idx].Count++
		buckets[idx].BrutoCost += p.BrutoRaise
	}

	if below.Count > 0 {
		below.Label = "No loyalty bonus"
		if len(rules) > 0 {
			below.MaxTenure = rules[len(rules)-1].MinTenureYears
			below.FirstStartYear = referenceYear - below.MaxTenure + 1
		}
		buckets = append(buckets, below)
	}
	return buckets
}

func bucketIndex(rules []model.BonusRule, tenure int) int {
	for i, r := range rules {
		if tenure >= r.MinTenureYears {
			return i
		}
	}
	return -1
}

func bucketLabel(b TenureBucket) string {
	switch {
	case b.MaxTenure == 0:
		return fmt.Sprintf("≤ %d (%d+ yrs)", b.LastStartYear, b.MinTenure)
	case b.MinTenure <= 0:
		return fmt.Sprintf("%d+ (< %d yrs)", b.FirstStartYear, b.MaxTenure)
	default:
		return fmt.Sprintf("%d-%d (%d-%d yrs)", b.FirstStartYear, b.LastStartYear, b.MinTenure, b.MaxTenure)
	}
}

// WaterfallKind distinguishes the bars of the waterfall chart.
type WaterfallKind int

const (
	// WaterfallRevenue is the starting bar.
	WaterfallRevenue WaterfallKind = iota
	// WaterfallCost is a deduction.
	WaterfallCost
	// WaterfallResult is the closing surplus or deficit.
	WaterfallResult
)

// WaterfallStep is one bar. Costs are negative.
type WaterfallStep struct {
	Label string        `json:"label"`
	Value float64       `json:"value"`
	Kind  WaterfallKind `json:"kind"`
}

// Waterfall returns revenue growth, the annual raise cost of A, B and C+D,
// and the resulting buffer.
func Waterfall(stats model.FinancialStats) []WaterfallStep {
	a := stats.Summary(model.CategoryManagement).RaiseCost
	b := stats.Summary(model.CategoryEducators).RaiseCost
	cd := stats.Summary(model.CategoryAssistants).RaiseCost + stats.Summary(model.CategorySupport).RaiseCost

	result := "Surplus"
	if !stats.IsSustainable {
		result = "Deficit"
	}
	return []WaterfallStep{
		{Label: "Revenue", Value: stats.RevenueGrowth, Kind: WaterfallRevenue},
		{Label: "Management (A)", Value: -a, Kind: WaterfallCost},
		{Label: "Educators (B)", Value: -b, Kind: WaterfallCost},
		{Label: "Support (C+D)", Value: -cd, Kind: WaterfallCost},
		{Label: result, Value: stats.OperationalBuffer, Kind: WaterfallResult},
	}
}

// GrossComparison holds the annual gross fund before and after the policy.
type GrossComparison struct {
	CurrentYear  int     `json:"current_year"`
	NextYear     int     `json:"next_year"`
	CurrentGross float64 `json:"current_gross"`
	NewGross     float64 `json:"new_gross"`
}

// Increase is NewGross - CurrentGross.
func (g GrossComparison) Increase() float64 {
	return g.NewGross - g.CurrentGross
}

// IncreasePercent is the relative increase, 0 when there is no current fund.
func (g GrossComparison) IncreasePercent() float64 {
	if g.CurrentGross == 0 {
		return 0
	}
	return g.Increase() / g.CurrentGross * 100
}

// CompareGross builds the comparison for the policy's reference year.
func CompareGross(stats model.FinancialStats, referenceYear int) GrossComparison {
	return GrossComparison{
		CurrentYear:  referenceYear - 1,
		NextYear:     referenceYear,
		CurrentGross: stats.TotalCurrentGross,
		NewGross:     stats.TotalNewGross,
	}
}

// Slider bounds for the tuition increase control.
const (
	SliderMin     = 0.0
	SliderMax     = 10.0
	SliderStep    = 0.5
	SliderDefault = 6.0
)

// GaugeFill maps a tuition increase to the gauge position in [0, 1].
func GaugeFill(pct float64) float64 {
	if math.IsNaN(pct) {
		return 0
	}
	return math.Max(0, math.Min(pct, SliderMax)) / SliderMax
}

// ClampTuition keeps a slider value within the UI bounds and on the step grid.
func ClampTuition(pct float64) float64 {
	if math.IsNaN(pct) {
		return SliderDefault
	}
	pct = math.Round(pct/SliderStep) * SliderStep
	return math.Max(SliderMin, math.Min(pct, SliderMax))
}

// BarWidth scales value against max into at most width cells.
func BarWidth(value, max float64, width int) int {
	if max <= 0 || width <= 0 || value <= 0 || math.IsNaN(value) {
		return 0
	}
	w := int(math.Round(value / max * float64(width)))
	if w > width {
		return width
	}
	return w
}
