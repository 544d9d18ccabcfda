// Package engine implements the payroll sustainability engine: it projects the
// salary policy onto a roster and compares the resulting payroll growth with
// the revenue a tuition increase brings.
package engine

import (
	"fmt"
	"math"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/model"
)

// Engine holds an immutable policy. It is safe for concurrent use.
type Engine struct {
	table  BonusTable
	policy model.Policy
}

// New validates the policy and returns an engine for it.
func New(policy model.Policy) (*Engine, error) {
	if err := ValidatePolicy(policy); err != nil {
		return nil, err
	}
	policy.LoyaltyRules = append([]model.BonusRule(nil), policy.LoyaltyRules...)
	return &Engine{
		table:  NewBonusTable(policy.LoyaltyRules),
		policy: policy,
	}, nil
}

// MustNew is New for policies known to be valid, such as model.DefaultPolicy.
func MustNew(policy model.Policy) *Engine {
	e, err := New(policy)
	if err != nil {
		panic(err)
	}
	return e
}

// ValidatePolicy rejects policies that would produce meaningless numbers.
func ValidatePolicy(p model.Policy) error {
	switch {
	case !isFinite(p.BrutoFactor) || p.BrutoFactor <= 0:
		return fmt.Errorf("%w: bruto factor must be positive, got %v", common.ErrInvalidPolicy, p.BrutoFactor)
	case p.MonthsPerYear <= 0:
		return fmt.Errorf("%w: months per year must be positive, got %d", common.ErrInvalidPolicy, p.MonthsPerYear)
	case !isFinite(p.BaselineRevenue) || p.BaselineRevenue < 0:
		return fmt.Errorf("%w: baseline revenue must be a non-negative number, got %v", common.ErrInvalidPolicy, p.BaselineRevenue)
	case !isFinite(p.ExpertiseBonus) || p.ExpertiseBonus < 0:
		return fmt.Errorf("%w: expertise bonus must be a non-negative number, got %v", common.ErrInvalidPolicy, p.ExpertiseBonus)
	}
	switch p.Mode {
	case model.BonusModeMultiplicative, model.BonusModeTargetOnly:
	default:
		return fmt.Errorf("%w: unknown bonus mode %q", common.ErrInvalidPolicy, p.Mode)
	}
	for _, r := range p.LoyaltyRules {
		if !isFinite(r.Bonus) || r.Bonus < 0 {
			return fmt.Errorf("%w: loyalty bonus for %d years must be a non-negative number, got %v",
				common.ErrInvalidPolicy, r.MinTenureYears, r.Bonus)
		}
	}
	return nil
}

// Policy returns a copy of the engine's policy.
func (e *Engine) Policy() model.Policy {
	p := e.policy
	p.LoyaltyRules = e.table.Rules()
	return p
}

// Table returns the engine's bonus table.
func (e *Engine) Table() BonusTable {
	return e.table
}

// Calculate evaluates the roster at the given tuition increase (percent).
// The same inputs always produce the same output.
func (e *Engine) Calculate(roster model.Roster, tuitionIncrease float64) model.FinancialStats {
	return e.CalculateProjections(e.Project(roster), tuitionIncrease)
}

// CalculateProjections is Calculate for callers that already hold projections.
func (e *Engine) CalculateProjections(projections []model.EmployeeProjection, tuitionIncrease float64) model.FinancialStats {
	stats := e.aggregate(projections)
	stats.TuitionIncrease = tuitionIncrease
	stats.RevenueGrowth = RevenueGrowth(e.policy.BaselineRevenue, tuitionIncrease)
	stats.OperationalBuffer = OperationalBuffer(stats.RevenueGrowth, stats.GrossIncrease)
	stats.IsSustainable = IsSustainable(stats.RevenueGrowth, stats.GrossIncrease)
	stats.BreakEvenTuition = BreakEvenTuition(e.policy.BaselineRevenue, stats.GrossIncrease)
	return stats
}

// MaxSweepPoints bounds the number of points a single sweep may produce.
const MaxSweepPoints = 10_000

// SweepSize returns how many points Sweep produces for the range, or 0 when
// the range is invalid or would exceed MaxSweepPoints.
func SweepSize(from, to, step float64) int {
	if step <= 0 || from > to || !isFinite(from) || !isFinite(to) || !isFinite(step) {
		return 0
	}
	span := math.Floor((to-from)/step + 1e-9)
	if !isFinite(span) || span >= MaxSweepPoints {
		return 0
	}
	return int(span) + 1
}

// Sweep evaluates the roster for every tuition increase from..to in step
// increments, both ends included. Ranges SweepSize rejects yield nil.
func (e *Engine) Sweep(roster model.Roster, from, to, step float64) []model.SweepPoint {
	n := SweepSize(from, to, step)
	if n == 0 {
		return nil
	}

	// Payroll growth does not depend on tuition, so aggregate once.
	base := e.aggregate(e.Project(roster))

	points := make([]model.SweepPoint, 0, n)
	for i := 0; i < n; i++ {
		pct := from + float64(i)*step
		revenue := RevenueGrowth(e.policy.BaselineRevenue, pct)
		points = append(points, model.SweepPoint{
			TuitionIncrease:   pct,
			RevenueGrowth:     revenue,
			GrossIncrease:     base.GrossIncrease,
			OperationalBuffer: OperationalBuffer(revenue, base.GrossIncrease),
			IsSustainable:     IsSustainable(revenue, base.GrossIncrease),
		})
	}
	return points
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
