package model

// EmployeeProjection is the post-policy view of one employee. Money fields are monthly.
type EmployeeProjection struct {
	Employee       Employee `json:"employee"`
	TenureYears    int      `json:"tenure_years"`
	LoyaltyBonus   float64  `json:"loyalty_bonus"`
	ExpertiseBonus float64  `json:"expertise_bonus"`
	FinalNet       float64  `json:"final_net"`
	NetRaise       float64  `json:"net_raise"`
	BrutoRaise     float64  `json:"bruto_raise"`
}

// TotalBonus returns the combined bonus fraction.
func (p EmployeeProjection) TotalBonus() float64 {
	return p.LoyaltyBonus + p.ExpertiseBonus
}

// CategorySummary aggregates one category. Money fields are annual.
type CategorySummary struct {
	Category   Category `json:"category"`
	Count      int      `json:"count"`
	CurrentNet float64  `json:"current_net"`
	FinalNet   float64  `json:"final_net"`
	RaiseCost  float64  `json:"raise_cost"`
}

// FinancialStats is the engine output for one (roster, tuition increase) pair.
// Every money field is annual.
type FinancialStats struct {
	CategorySummaries []CategorySummary `json:"category_summaries"`
	TuitionIncrease   float64           `json:"tuition_increase"`
	TotalCurrentNet   float64           `json:"total_current_net"`
	TotalNewNet       float64           `json:"total_new_net"`
	TotalCurrentGross float64           `json:"total_current_gross"`
	TotalNewGross     float64           `json:"total_new_gross"`
	GrossIncrease     float64           `json:"gross_increase"`
	RevenueGrowth     float64           `json:"revenue_growth"`
	OperationalBuffer float64           `json:"operational_buffer"`
	BreakEvenTuition  float64           `json:"break_even_tuition"`
	EmployeeCount     int               `json:"employee_count"`
	IsSustainable     bool              `json:"is_sustainable"`
}

// Summary returns the summary for c. Every category is always present in
// stats produced by the engine; a zero summary is returned otherwise.
func (s FinancialStats) Summary(c Category) CategorySummary {
	for _, cs := range s.CategorySummaries {
		if cs.Category == c {
			return cs
		}
	}
	return CategorySummary{Category: c}
}

// SweepPoint is one step of a tuition sweep.
type SweepPoint struct {
	TuitionIncrease   float64 `json:"tuition_increase"`
	RevenueGrowth     float64 `json:"revenue_growth"`
	GrossIncrease     float64 `json:"gross_increase"`
	OperationalBuffer float64 `json:"operational_buffer"`
	IsSustainable     bool    `json:"is_sustainable"`
}
