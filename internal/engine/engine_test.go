package engine

import (
	"math"
	"sync"
	"testing"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/testutil/rosters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 0.005

func newDefaultEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(model.DefaultPolicy())
	require.NoError(t, err)
	return e
}

func TestNew_RejectsInvalidPolicy(t *testing.T) {
	tests := []struct {
		mutate func(*model.Policy)
		name   string
	}{
		{name: "zero bruto factor", mutate: func(p *model.Policy) { p.BrutoFactor = 0 }},
		{name: "NaN bruto factor", mutate: func(p *model.Policy) { p.BrutoFactor = math.NaN() }},
		{name: "zero months", mutate: func(p *model.Policy) { p.MonthsPerYear = 0 }},
		{name: "infinite baseline", mutate: func(p *model.Policy) { p.BaselineRevenue = math.Inf(1) }},
		{name: "negative expertise", mutate: func(p *model.Policy) { p.ExpertiseBonus = -0.05 }},
		{name: "unknown mode", mutate: func(p *model.Policy) { p.Mode = "additive" }},
		{name: "NaN loyalty", mutate: func(p *model.Policy) { p.LoyaltyRules[0].Bonus = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.DefaultPolicy()
			tt.mutate(&p)
			_, err := New(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidPolicy)
		})
	}
}

func TestEngine_PolicyIsCopied(t *testing.T) {
	p := model.DefaultPolicy()
	e, err := New(p)
	require.NoError(t, err)

	p.LoyaltyRules[0].Bonus = 0.99
	assert.InDelta(t, 0.15, e.Table().Loyalty(10), 1e-9)
}

func TestProject_Scenarios(t *testing.T) {
	e := newDefaultEngine(t)

	tests := []struct {
		name          string
		employee      model.Employee
		wantTenure    int
		wantLoyalty   float64
		wantExpertise float64
		wantFinal     float64
	}{
		{
			name:        "tenure six without degree",
			employee:    rosters.Educator(1, 2020, 1000, 1000),
			wantTenure:  6,
			wantLoyalty: 0.10,
			wantFinal:   1100,
		},
		{
			name:        "tenure four",
			employee:    rosters.Educator(2, 2022, 1000, 1000),
			wantTenure:  4,
			wantLoyalty: 0.04,
			wantFinal:   1040,
		},
		{
			name: "long tenure with advanced degree",
			employee: func() model.Employee {
				emp := rosters.Educator(3, 2012, 1601.38, 1800)
				emp.AdvancedDegree = true
				return emp
			}(),
			wantTenure:    14,
			wantLoyalty:   0.15,
			wantExpertise: 0.05,
			wantFinal:     2160,
		},
		{
			name:        "new hire",
			employee:    rosters.Educator(4, 2025, 1411.12, 1480),
			wantTenure:  1,
			wantLoyalty: 0,
			wantFinal:   1480,
		},
		{
			name:        "future start year",
			employee:    rosters.Educator(5, 2030, 1000, 1200),
			wantTenure:  -4,
			wantLoyalty: 0,
			wantFinal:   1200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := e.ProjectEmployee(tt.employee)
			assert.Equal(t, tt.wantTenure, p.TenureYears)
			assert.InDelta(t, tt.wantLoyalty, p.LoyaltyBonus, 1e-9)
			assert.InDelta(t, tt.wantExpertise, p.ExpertiseBonus, 1e-9)
			assert.InDelta(t, tt.wantFinal, p.FinalNet, delta)
			assert.InDelta(t, p.FinalNet-tt.employee.CurrentNet, p.NetRaise, 1e-9)
			assert.InDelta(t, p.NetRaise*model.DefaultBrutoFactor, p.BrutoRaise, 1e-9)
		})
	}
}

func TestProject_BrutoRaiseOfOneHundred(t *testing.T) {
	e := newDefaultEngine(t)
	p := e.ProjectEmployee(rosters.Educator(1, 2025, 1000, 1100))
	assert.InDelta(t, 100, p.NetRaise, 1e-9)
	assert.InDelta(t, 163, p.BrutoRaise, 1e-9)
}

func TestProject_NegativeRaisePropagates(t *testing.T) {
	e := newDefaultEngine(t)
	p := e.ProjectEmployee(rosters.Educator(1, 2025, 1500, 1400))
	assert.InDelta(t, -100, p.NetRaise, 1e-9)
	assert.InDelta(t, -163, p.BrutoRaise, 1e-9)
}

func TestProject_TargetOnlyMode(t *testing.T) {
	p := model.DefaultPolicy()
	p.Mode = model.BonusModeTargetOnly
	e, err := New(p)
	require.NoError(t, err)

	emp := rosters.Educator(1, 2012, 1601.38, 1800)
	emp.AdvancedDegree = true
	proj := e.ProjectEmployee(emp)

	assert.InDelta(t, 0.15, proj.LoyaltyBonus, 1e-9)
	assert.InDelta(t, 0.05, proj.ExpertiseBonus, 1e-9)
	assert.InDelta(t, 1800, proj.FinalNet, 1e-9)
}

func TestProject_TogglingDegreeOnlyMovesThatEmployee(t *testing.T) {
	e := newDefaultEngine(t)
	roster := rosters.Seed()
	toggled := roster.WithAdvancedDegreeToggled(4)

	before := e.Project(roster)
	after := e.Project(toggled)
	require.Len(t, after, len(before))

	for i := range before {
		if before[i].Employee.ID == 4 {
			assert.InDelta(t, before[i].FinalNet+1900*0.05, after[i].FinalNet, delta)
			continue
		}
		assert.Equal(t, before[i], after[i])
	}
	assert.False(t, roster[3].AdvancedDegree, "original roster must not change")
}

func TestCalculate_SeedRoster(t *testing.T) {
	e := newDefaultEngine(t)
	stats := e.Calculate(rosters.Seed(), 6)

	assert.Equal(t, rosters.SeedSize, stats.EmployeeCount)
	assert.InDelta(t, 327624.00, stats.TotalCurrentNet, delta)
	assert.InDelta(t, 392012.40, stats.TotalNewNet, delta)
	assert.InDelta(t, 534027.12, stats.TotalCurrentGross, delta)
	assert.InDelta(t, 638980.21, stats.TotalNewGross, delta)
	assert.InDelta(t, 104953.09, stats.GrossIncrease, delta)
	assert.InDelta(t, 52593.79, stats.RevenueGrowth, delta)
	assert.InDelta(t, stats.RevenueGrowth-stats.GrossIncrease, stats.OperationalBuffer, 1e-9)
	assert.False(t, stats.IsSustainable)
	assert.InDelta(t, 11.97, stats.BreakEvenTuition, 0.01)
	assert.InDelta(t, 6.0, stats.TuitionIncrease, 1e-9)

	require.Len(t, stats.CategorySummaries, 4)
	a := stats.Summary(model.CategoryManagement)
	assert.Equal(t, 4, a.Count)
	assert.InDelta(t, 7082.31*12, a.CurrentNet, delta)
	assert.InDelta(t, 8813.5*12, a.FinalNet, delta)
	assert.InDelta(t, 33862.08, a.RaiseCost, delta)

	var sum float64
	for _, cs := range stats.CategorySummaries {
		sum += cs.RaiseCost
	}
	assert.InDelta(t, stats.GrossIncrease, sum, delta)
}

func TestCalculate_SeedRosterTargetOnly(t *testing.T) {
	p := model.DefaultPolicy()
	p.Mode = model.BonusModeTargetOnly
	e, err := New(p)
	require.NoError(t, err)

	stats := e.Calculate(rosters.Seed(), 6)
	assert.InDelta(t, 48078.48, stats.GrossIncrease, delta)
	assert.True(t, stats.IsSustainable)
}

func TestCalculate_EmptyCategoriesArePresent(t *testing.T) {
	e := newDefaultEngine(t)
	stats := e.Calculate(rosters.FixtureEducatorsOnly.Employees(), 6)

	require.Len(t, stats.CategorySummaries, 4)
	for _, c := range []model.Category{model.CategoryManagement, model.CategoryAssistants, model.CategorySupport} {
		cs := stats.Summary(c)
		assert.Equal(t, 0, cs.Count, c)
		assert.Zero(t, cs.CurrentNet, c)
		assert.Zero(t, cs.FinalNet, c)
		assert.Zero(t, cs.RaiseCost, c)
	}
	assert.Equal(t, 5, stats.Summary(model.CategoryEducators).Count)
}

func TestCalculate_EmptyRoster(t *testing.T) {
	e := newDefaultEngine(t)
	stats := e.Calculate(nil, 6)

	assert.Zero(t, stats.EmployeeCount)
	assert.Zero(t, stats.GrossIncrease)
	assert.Zero(t, stats.BreakEvenTuition)
	assert.True(t, stats.IsSustainable)
	assert.Len(t, stats.CategorySummaries, 4)
}

func TestCalculate_NonFiniteInputsResolveToZero(t *testing.T) {
	e := newDefaultEngine(t)
	roster := model.Roster{rosters.Educator(1, 2020, math.Inf(1), 1000)}
	stats := e.Calculate(roster, 6)

	assert.Zero(t, stats.TotalCurrentNet)
	assert.Zero(t, stats.TotalCurrentGross)
	assert.False(t, math.IsNaN(stats.GrossIncrease))
	assert.False(t, math.IsInf(stats.OperationalBuffer, 0))
}

func TestCalculate_Idempotent(t *testing.T) {
	e := newDefaultEngine(t)
	roster := rosters.Seed()
	assert.Equal(t, e.Calculate(roster, 4.5), e.Calculate(roster, 4.5))
}

func TestCalculate_MonotonicInTuition(t *testing.T) {
	e := newDefaultEngine(t)
	roster := rosters.Seed()

	prev := e.Calculate(roster, 0)
	for pct := 0.5; pct <= 20; pct += 0.5 {
		cur := e.Calculate(roster, pct)
		assert.GreaterOrEqual(t, cur.RevenueGrowth, prev.RevenueGrowth)
		assert.GreaterOrEqual(t, cur.OperationalBuffer, prev.OperationalBuffer)
		assert.InDelta(t, prev.GrossIncrease, cur.GrossIncrease, 1e-9)
		if prev.IsSustainable {
			assert.True(t, cur.IsSustainable, "sustainability must not flip back at %v%%", pct)
		}
		prev = cur
	}
}

func TestCalculate_BreakEvenIsSustainable(t *testing.T) {
	e := newDefaultEngine(t)
	roster := rosters.Seed()
	be := e.Calculate(roster, 0).BreakEvenTuition

	assert.True(t, e.Calculate(roster, be+1e-6).IsSustainable)
	assert.False(t, e.Calculate(roster, be-0.01).IsSustainable)
}

func TestCalculate_ConcurrentUse(t *testing.T) {
	e := newDefaultEngine(t)
	roster := rosters.Seed()
	want := e.Calculate(roster, 6)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, e.Calculate(roster, 6))
		}()
	}
	wg.Wait()
}

func TestSweep(t *testing.T) {
	e := newDefaultEngine(t)
	roster := rosters.Seed()

	points := e.Sweep(roster, 0, 10, 0.5)
	require.Len(t, points, 21)
	assert.InDelta(t, 0, points[0].TuitionIncrease, 1e-9)
	assert.InDelta(t, 10, points[20].TuitionIncrease, 1e-9)

	for _, p := range points {
		stats := e.Calculate(roster, p.TuitionIncrease)
		assert.InDelta(t, stats.RevenueGrowth, p.RevenueGrowth, 1e-6)
		assert.InDelta(t, stats.OperationalBuffer, p.OperationalBuffer, 1e-6)
		assert.Equal(t, stats.IsSustainable, p.IsSustainable)
	}

	assert.Nil(t, e.Sweep(roster, 0, 10, 0))
	assert.Nil(t, e.Sweep(roster, 5, 1, 1))
	assert.Len(t, e.Sweep(roster, 3, 3, 1), 1)
}

func TestSweep_RangeLimit(t *testing.T) {
	e := newDefaultEngine(t)
	roster := rosters.Seed()

	tests := []struct {
		name           string
		from, to, step float64
		want           int
	}{
		{name: "slider range", from: 0, to: 10, step: 0.5, want: 21},
		{name: "at the limit", from: 0, to: MaxSweepPoints - 1, step: 1, want: MaxSweepPoints},
		{name: "one past the limit", from: 0, to: MaxSweepPoints, step: 1, want: 0},
		{name: "huge range", from: 0, to: 1e12, step: 1e-9, want: 0},
		{name: "infinite bound", from: 0, to: math.Inf(1), step: 1, want: 0},
		{name: "tiny step", from: 0, to: math.MaxFloat64, step: math.SmallestNonzeroFloat64, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SweepSize(tt.from, tt.to, tt.step))

			var points []model.SweepPoint
			require.NotPanics(t, func() { points = e.Sweep(roster, tt.from, tt.to, tt.step) })
			assert.Len(t, points, tt.want)
		})
	}
}
