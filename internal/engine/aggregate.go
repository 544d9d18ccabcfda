package engine

import (
	"math"

	"github.com/Veraticus/payroll-must-balance/internal/model"
)

type monthlyTotals struct {
	currentNet float64
	finalNet   float64
	count      int
}

// aggregate folds projections into annual totals and per-category summaries.
// Categories with no employees are still present with zero values.
func (e *Engine) aggregate(projections []model.EmployeeProjection) model.FinancialStats {
	months := float64(e.policy.MonthsPerYear)
	cats := model.AllCategories()
	perCat := make([]monthlyTotals, len(cats))

	var total monthlyTotals
	for _, p := range projections {
		total.currentNet += p.Employee.CurrentNet
		total.finalNet += p.FinalNet
		total.count++
		if idx := p.Employee.Category.Index(); idx >= 0 {
			perCat[idx].currentNet += p.Employee.CurrentNet
			perCat[idx].finalNet += p.FinalNet
			perCat[idx].count++
		}
	}

	summaries := make([]model.CategorySummary, len(cats))
	for i, c := range cats {
		t := perCat[i]
		summaries[i] = model.CategorySummary{
			Category:   c,
			Count:      t.count,
			CurrentNet: finite(t.currentNet * months),
			FinalNet:   finite(t.finalNet * months),
			RaiseCost:  finite((t.finalNet - t.currentNet) * months * e.policy.BrutoFactor),
		}
	}

	currentGross := finite(total.currentNet * months * e.policy.BrutoFactor)
	newGross := finite(total.finalNet * months * e.policy.BrutoFactor)
	return model.FinancialStats{
		CategorySummaries: summaries,
		EmployeeCount:     total.count,
		TotalCurrentNet:   finite(total.currentNet * months),
		TotalNewNet:       finite(total.finalNet * months),
		TotalCurrentGross: currentGross,
		TotalNewGross:     newGross,
		GrossIncrease:     finite(newGross - currentGross),
	}
}

// finite maps NaN and infinities to 0 so reports never show them.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
