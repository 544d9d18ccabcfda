package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/testutil"
	"github.com/Veraticus/payroll-must-balance/internal/testutil/rosters"
)

func TestSeedDB_GetEmployee(t *testing.T) {
	db := testutil.SetupSeedDB(t)

	e := db.MustEmployee(3)
	assert.Equal(t, "HUREMOVIĆ ARMINA", e.Name)
	assert.True(t, e.AdvancedDegree)
	assert.Equal(t, db.Roster[2], e)

	_, err := db.Storage.GetEmployee(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSeedDB_RecordsImport(t *testing.T) {
	db := testutil.SetupSeedDB(t)
	ctx := context.Background()

	last, err := db.Storage.LastImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "testutil", last.Source)
	assert.Equal(t, rosters.SeedSize, last.EmployeeCount)

	require.NoError(t, db.Storage.ImportRoster(ctx, db.Roster[:2], "two.yaml", nil))

	last, err = db.Storage.LastImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "two.yaml", last.Source)
	assert.Equal(t, 2, last.EmployeeCount)

	n, err := db.Storage.CountEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSetupTestDB_CustomRoster(t *testing.T) {
	roster := model.Roster{
		rosters.Educator(7, 2015, 1200, 1300),
		rosters.Educator(4, 2022, 1000, 1050),
	}
	db := testutil.SetupTestDB(t, roster)

	got, err := db.Storage.GetRoster(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 4, got[0].ID)
	assert.Equal(t, 7, got[1].ID)

	empty := testutil.SetupTestDB(t, nil)
	n, err := empty.Storage.CountEmployees(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
