package storage

import (
	"context"
	"math"
	"testing"

	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/testutil/rosters"
	"github.com/stretchr/testify/assert"
)

func TestValidateEmployee(t *testing.T) {
	valid := rosters.Educator(1, 2020, 1000, 1100)

	tests := []struct {
		mutate  func(*model.Employee)
		name    string
		wantErr bool
	}{
		{name: "valid", mutate: func(*model.Employee) {}},
		{name: "zero id", mutate: func(e *model.Employee) { e.ID = 0 }, wantErr: true},
		{name: "blank name", mutate: func(e *model.Employee) { e.Name = "   " }, wantErr: true},
		{name: "unknown category", mutate: func(e *model.Employee) { e.Category = "E" }, wantErr: true},
		{name: "missing start year", mutate: func(e *model.Employee) { e.StartYear = 0 }, wantErr: true},
		{name: "negative current", mutate: func(e *model.Employee) { e.CurrentNet = -1 }, wantErr: true},
		{name: "NaN target", mutate: func(e *model.Employee) { e.TargetNet = math.NaN() }, wantErr: true},
		{name: "target below current is allowed", mutate: func(e *model.Employee) { e.TargetNet = 900 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := ValidateEmployee(e)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEmployee)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateRoster(t *testing.T) {
	assert.ErrorIs(t, ValidateRoster(nil), ErrNilParameter)
	assert.ErrorIs(t, ValidateRoster(model.Roster{}), ErrEmptySlice)
	assert.NoError(t, ValidateRoster(rosters.Seed()))

	dup := model.Roster{rosters.Educator(1, 2020, 1, 1), rosters.Educator(1, 2021, 1, 1)}
	assert.ErrorIs(t, ValidateRoster(dup), ErrInvalidEmployee)
}

func TestValidateContext(t *testing.T) {
	//nolint:staticcheck // nil context is the case under test
	assert.ErrorIs(t, validateContext(nil), ErrNilContext)
	assert.NoError(t, validateContext(context.Background()))
}
