package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "A", want: CategoryManagement},
		{input: "b", want: CategoryEducators},
		{input: " c ", want: CategoryAssistants},
		{input: "D", want: CategorySupport},
		{input: "E", wantErr: true},
		{input: "", wantErr: true},
		{input: "AB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllCategories_Order(t *testing.T) {
	cats := AllCategories()
	assert.Equal(t, []Category{"A", "B", "C", "D"}, cats)

	cats[0] = "Z"
	assert.Equal(t, CategoryManagement, AllCategories()[0])

	for i, c := range AllCategories() {
		assert.Equal(t, i, c.Index())
	}
	assert.Equal(t, -1, Category("Z").Index())
}

func TestRoster_WithAdvancedDegreeToggled(t *testing.T) {
	roster := Roster{
		{ID: 1, Name: "ONE", Category: CategoryEducators},
		{ID: 2, Name: "TWO", Category: CategorySupport, AdvancedDegree: true},
	}

	toggled := roster.WithAdvancedDegreeToggled(1)
	assert.True(t, toggled[0].AdvancedDegree)
	assert.False(t, roster[0].AdvancedDegree)

	back := toggled.WithAdvancedDegreeToggled(1)
	assert.Equal(t, roster, back)

	unchanged := roster.WithAdvancedDegreeToggled(99)
	assert.Equal(t, roster, unchanged)
}

func TestRoster_FindAndByCategory(t *testing.T) {
	roster := Roster{
		{ID: 1, Category: CategoryEducators},
		{ID: 2, Category: CategorySupport},
		{ID: 3, Category: CategoryEducators},
	}

	e, ok := roster.Find(2)
	require.True(t, ok)
	assert.Equal(t, CategorySupport, e.Category)

	_, ok = roster.Find(7)
	assert.False(t, ok)

	educators := roster.ByCategory(CategoryEducators)
	require.Len(t, educators, 2)
	assert.Equal(t, 3, educators[1].ID)
	assert.Empty(t, roster.ByCategory(CategoryManagement))
}

func TestParseBonusMode(t *testing.T) {
	mode, err := ParseBonusMode("")
	require.NoError(t, err)
	assert.Equal(t, BonusModeMultiplicative, mode)

	mode, err = ParseBonusMode("Target_Only")
	require.NoError(t, err)
	assert.Equal(t, BonusModeTargetOnly, mode)

	_, err = ParseBonusMode("additive")
	assert.Error(t, err)
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 2026, p.ReferenceYear)
	assert.InDelta(t, 1.63, p.BrutoFactor, 1e-9)
	assert.InDelta(t, 876563.23, p.BaselineRevenue, 1e-9)
	assert.Len(t, p.LoyaltyRules, 4)

	p.LoyaltyRules[0].Bonus = 1
	assert.InDelta(t, 0.15, DefaultPolicy().LoyaltyRules[0].Bonus, 1e-9)
}
