package engine

import (
	"math"
	"sort"

	"github.com/Veraticus/payroll-must-balance/internal/model"
)

// BonusTable evaluates tenure thresholds. The largest threshold met wins.
type BonusTable struct {
	rules []model.BonusRule
}

// NewBonusTable copies rules and orders them by descending threshold.
func NewBonusTable(rules []model.BonusRule) BonusTable {
	sorted := make([]model.BonusRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinTenureYears > sorted[j].MinTenureYears
	})
	return BonusTable{rules: sorted}
}

// Rules returns the rules in evaluation order.
func (t BonusTable) Rules() []model.BonusRule {
	out := make([]model.BonusRule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Loyalty returns the bonus fraction for the given tenure. Tenure below every
// threshold, including negative tenure from future start years, yields 0.
func (t BonusTable) Loyalty(tenureYears int) float64 {
	for _, r := range t.rules {
		if tenureYears >= r.MinTenureYears {
			return r.Bonus
		}
	}
	return 0
}

// TenureYears returns referenceYear - startYear. It may be negative and
// saturates at the int bounds instead of wrapping.
func TenureYears(referenceYear, startYear int) int {
	return subSaturating(referenceYear, startYear)
}

func subSaturating(a, b int) int {
	d := a - b
	// overflow is only possible when the operands differ in sign
	if (a >= 0) != (b >= 0) && (d >= 0) != (a >= 0) {
		if a >= 0 {
			return math.MaxInt
		}
		return math.MinInt
	}
	return d
}

// ExpertiseBonus returns pct when the employee holds an advanced degree.
func ExpertiseBonus(advancedDegree bool, pct float64) float64 {
	if advancedDegree {
		return pct
	}
	return 0
}

// BandsToRules converts start-year bands ("started in 2016 or earlier") into
// tenure rules relative to referenceYear.
func BandsToRules(referenceYear int, bands []model.StartYearBand) []model.BonusRule {
	rules := make([]model.BonusRule, 0, len(bands))
	for _, b := range bands {
		rules = append(rules, model.BonusRule{
			MinTenureYears: subSaturating(referenceYear, b.MaxStartYear),
			Bonus:          b.Bonus,
		})
	}
	return rules
}
