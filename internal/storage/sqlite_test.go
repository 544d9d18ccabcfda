package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/testutil/rosters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrate(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	v, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, v)

	// Running again is a no-op.
	require.NoError(t, store.Migrate(ctx))

	var tables int
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('employees', 'roster_imports')`,
	).Scan(&tables))
	assert.Equal(t, 2, tables)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestSaveAndGetRoster(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	seed := rosters.Seed()

	require.NoError(t, store.SaveRoster(ctx, seed))

	got, err := store.GetRoster(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed, got)

	n, err := store.CountEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, rosters.SeedSize, n)

	emp, err := store.GetEmployee(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "ŽUTIĆ MAJDA", emp.Name)
	assert.True(t, emp.AdvancedDegree)
	assert.Equal(t, model.CategoryEducators, emp.Category)

	_, err = store.GetEmployee(ctx, 99)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveRoster_ReplacesPreviousRoster(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRoster(ctx, rosters.Seed()))
	small := rosters.NewBuilder(t).
		WithEmployee(rosters.Educator(100, 2019, 1200, 1300)).
		Build()
	require.NoError(t, store.ImportRoster(ctx, small, "small.yaml", nil))

	got, err := store.GetRoster(ctx)
	require.NoError(t, err)
	assert.Equal(t, small, got)

	rec, err := store.LastImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "small.yaml", rec.Source)
	assert.Equal(t, 1, rec.EmployeeCount)
}

func TestImportRoster_InvalidRosterLeavesStoreUntouched(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	require.NoError(t, store.SaveRoster(ctx, rosters.Seed()))

	bad := rosters.Seed()
	bad[3].CurrentNet = 0
	err := store.ImportRoster(ctx, bad, "bad.xlsx", nil)
	assert.ErrorIs(t, err, ErrInvalidEmployee)

	n, err := store.CountEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, rosters.SeedSize, n)
}

func TestImportRoster_Progress(t *testing.T) {
	store := createTestStorage(t)
	var seen []int
	err := store.ImportRoster(context.Background(), rosters.Seed(), "embedded", func(e model.Employee) {
		seen = append(seen, e.ID)
	})
	require.NoError(t, err)
	assert.Len(t, seen, rosters.SeedSize)
}

func TestLastImport_Empty(t *testing.T) {
	store := createTestStorage(t)
	_, err := store.LastImport(context.Background())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetRoster_Empty(t *testing.T) {
	store := createTestStorage(t)
	roster, err := store.GetRoster(context.Background())
	require.NoError(t, err)
	assert.Empty(t, roster)
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSQLiteStorage(filepath.Join(dir, "payroll.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SaveRoster(ctx, rosters.Seed()))

	dest := store.BackupPath("pre-import")
	require.NoError(t, store.Backup(ctx, dest))
	_, err = os.Stat(dest)
	require.NoError(t, err)

	copyStore, err := NewSQLiteStorage(dest)
	require.NoError(t, err)
	t.Cleanup(func() { _ = copyStore.Close() })
	n, err := copyStore.CountEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, rosters.SeedSize, n)

	assert.ErrorIs(t, store.Backup(ctx, dest), ErrBackupExists)
	assert.Error(t, store.Backup(ctx, "relative.db"))
	assert.Error(t, store.Backup(ctx, filepath.Join(dir, "bad';.db")))
}

func TestBackup_InMemory(t *testing.T) {
	store := createTestStorage(t)
	assert.Error(t, store.Backup(context.Background(), "/tmp/x.db"))
}
