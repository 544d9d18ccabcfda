package engine

// RevenueGrowth returns the extra annual revenue a tuition increase of pct
// percent brings on top of baseline. pct is not clamped.
func RevenueGrowth(baseline, pct float64) float64 {
	return finite(baseline * pct / 100)
}

// OperationalBuffer is revenue growth minus payroll growth.
func OperationalBuffer(revenueGrowth, payrollGrowth float64) float64 {
	return finite(revenueGrowth - payrollGrowth)
}

// IsSustainable reports whether revenue growth covers payroll growth. Ties count.
func IsSustainable(revenueGrowth, payrollGrowth float64) bool {
	return revenueGrowth >= payrollGrowth
}

// BreakEvenTuition returns the smallest tuition increase, in percent, for which
// payrollGrowth is covered. It is 0 when payroll does not grow or baseline is not positive.
func BreakEvenTuition(baseline, payrollGrowth float64) float64 {
	if payrollGrowth <= 0 || baseline <= 0 {
		return 0
	}
	return finite(payrollGrowth / baseline * 100)
}
