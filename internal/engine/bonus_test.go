package engine

import (
	"math"
	"testing"

	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestBonusTable_Loyalty(t *testing.T) {
	table := NewBonusTable(model.DefaultLoyaltyRules())

	tests := []struct {
		tenure int
		want   float64
	}{
		{tenure: -3, want: 0},
		{tenure: 0, want: 0},
		{tenure: 1, want: 0},
		{tenure: 2, want: 0.04},
		{tenure: 4, want: 0.04},
		{tenure: 5, want: 0.10},
		{tenure: 9, want: 0.10},
		{tenure: 10, want: 0.15},
		{tenure: 40, want: 0.15},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, table.Loyalty(tt.tenure), 1e-9, "tenure %d", tt.tenure)
	}
}

func TestBonusTable_UnsortedRules(t *testing.T) {
	table := NewBonusTable([]model.BonusRule{
		{MinTenureYears: 2, Bonus: 0.04},
		{MinTenureYears: 10, Bonus: 0.15},
		{MinTenureYears: 5, Bonus: 0.10},
	})

	assert.InDelta(t, 0.15, table.Loyalty(12), 1e-9)
	assert.InDelta(t, 0.10, table.Loyalty(7), 1e-9)
	assert.Equal(t, 10, table.Rules()[0].MinTenureYears)
}

func TestBonusTable_NoRules(t *testing.T) {
	assert.Zero(t, NewBonusTable(nil).Loyalty(25))
}

func TestBandsToRules_MatchesTenureTable(t *testing.T) {
	bands := []model.StartYearBand{
		{MaxStartYear: 2016, Bonus: 0.15},
		{MaxStartYear: 2021, Bonus: 0.10},
		{MaxStartYear: 2024, Bonus: 0.04},
	}
	fromBands := NewBonusTable(BandsToRules(2026, bands))
	fromTenure := NewBonusTable(model.DefaultLoyaltyRules())

	for start := 2000; start <= 2030; start++ {
		tenure := TenureYears(2026, start)
		assert.InDelta(t, fromTenure.Loyalty(tenure), fromBands.Loyalty(tenure), 1e-9, "start %d", start)
	}
}

func TestTenureYears_Saturates(t *testing.T) {
	tests := []struct {
		name      string
		reference int
		start     int
		want      int
	}{
		{name: "ordinary", reference: 2026, start: 2020, want: 6},
		{name: "future start", reference: 2026, start: 2030, want: -4},
		{name: "start at min int", reference: 2026, start: math.MinInt, want: math.MaxInt},
		{name: "start at max int", reference: 2026, start: math.MaxInt, want: 2026 - math.MaxInt},
		{name: "negative reference", reference: -10, start: math.MaxInt, want: math.MinInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TenureYears(tt.reference, tt.start))
		})
	}

	table := NewBonusTable(model.DefaultLoyaltyRules())
	assert.InDelta(t, 0.15, table.Loyalty(TenureYears(2026, math.MinInt)), 1e-9)
	assert.Zero(t, table.Loyalty(TenureYears(2026, math.MaxInt)))
}

func TestBandsToRules_ExtremeStartYear(t *testing.T) {
	rules := BandsToRules(2026, []model.StartYearBand{{MaxStartYear: math.MinInt, Bonus: 0.2}})
	assert.Equal(t, math.MaxInt, rules[0].MinTenureYears)
}

func TestExpertiseBonus(t *testing.T) {
	assert.InDelta(t, 0.05, ExpertiseBonus(true, 0.05), 1e-9)
	assert.Zero(t, ExpertiseBonus(false, 0.05))
}

func TestComparator(t *testing.T) {
	assert.InDelta(t, 52593.79, RevenueGrowth(model.DefaultBaselineRevenue, 6), 0.005)
	assert.InDelta(t, -8765.6323, RevenueGrowth(model.DefaultBaselineRevenue, -1), 1e-6)
	assert.InDelta(t, 175312.646, RevenueGrowth(model.DefaultBaselineRevenue, 20), 1e-6)

	assert.True(t, IsSustainable(100, 100))
	assert.False(t, IsSustainable(99.99, 100))
	assert.InDelta(t, -0.01, OperationalBuffer(99.99, 100), 1e-9)

	assert.Zero(t, BreakEvenTuition(model.DefaultBaselineRevenue, 0))
	assert.Zero(t, BreakEvenTuition(model.DefaultBaselineRevenue, -500))
	assert.Zero(t, BreakEvenTuition(0, 500))
	assert.InDelta(t, 6, BreakEvenTuition(model.DefaultBaselineRevenue, RevenueGrowth(model.DefaultBaselineRevenue, 6)), 1e-9)
}
