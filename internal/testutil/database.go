// Package testutil provides test helpers shared across the payroll packages.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/storage"
	"github.com/Veraticus/payroll-must-balance/internal/testutil/rosters"
)

// TestDB is a migrated in-memory roster store.
type TestDB struct {
	Storage *storage.SQLiteStorage
	Roster  model.Roster
	t       *testing.T
}

// SetupTestDB creates an in-memory store seeded with roster. A nil roster
// leaves the store empty. Cleanup is registered on t.
//
// Example:
//
//	db := testutil.SetupTestDB(t, rosters.Seed())
func SetupTestDB(t *testing.T, roster model.Roster) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(roster) > 0 {
		if err := store.ImportRoster(ctx, roster, "testutil", nil); err != nil {
			t.Fatalf("failed to seed roster: %v", err)
		}
	}

	return &TestDB{
		Storage: store,
		Roster:  roster,
		t:       t,
	}
}

// SetupSeedDB is SetupTestDB with the school's seed roster.
func SetupSeedDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDB(t, rosters.Seed())
}

// MustEmployee returns a stored employee or fails the test.
func (db *TestDB) MustEmployee(id int) model.Employee {
	db.t.Helper()
	e, err := db.Storage.GetEmployee(context.Background(), id)
	if err != nil {
		db.t.Fatalf("employee %d: %v", id, err)
	}
	return *e
}
