package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/payroll-must-balance/internal/config"
	"github.com/Veraticus/payroll-must-balance/internal/engine"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/Veraticus/payroll-must-balance/internal/report"
	"github.com/Veraticus/payroll-must-balance/internal/service"
	"github.com/Veraticus/payroll-must-balance/internal/storage"
)

// Report option keys.
const (
	keyReportTitle       = "report.title"
	keyReportSchool      = "report.school"
	keyReportSignatories = "report.signatories"
)

// openStorage opens the roster database as it is.
func openStorage() (*storage.SQLiteStorage, error) {
	return storage.NewSQLiteStorage(config.ExpandPath(viper.GetString(config.KeyDatabasePath)))
}

// initStorage opens the roster database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := openStorage()
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadEngine builds the engine from the configured policy.
func loadEngine() (*engine.Engine, error) {
	policy, err := config.PolicyFromViper(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return engine.New(policy)
}

// loadRoster reads the roster from the configured source. The database is
// only opened when the source is "store".
func loadRoster(ctx context.Context) (model.Roster, error) {
	spec := viper.GetString(config.KeyRosterSource)

	var store service.RosterStore
	if strings.EqualFold(strings.TrimSpace(spec), config.SourceStore) {
		db, err := initStorage(ctx)
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()
		store = db
	}

	src, err := config.ResolveSource(spec, store)
	if err != nil {
		return nil, err
	}

	roster, err := src.LoadRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster from %s: %w", src.Name(), err)
	}

	slog.Debug("Loaded roster", "source", src.Name(), "employees", len(roster))
	return roster, nil
}

// loadScenario loads the engine and the roster together.
func loadScenario(ctx context.Context) (*engine.Engine, model.Roster, error) {
	eng, err := loadEngine()
	if err != nil {
		return nil, nil, err
	}
	roster, err := loadRoster(ctx)
	if err != nil {
		return nil, nil, err
	}
	return eng, roster, nil
}

// tuitionIncrease returns --tuition when set, otherwise the configured default.
func tuitionIncrease(cmd *cobra.Command) float64 {
	if f := cmd.Flags().Lookup("tuition"); f != nil && f.Changed {
		v, err := cmd.Flags().GetFloat64("tuition")
		if err == nil {
			return v
		}
	}
	return viper.GetFloat64(config.KeyTuitionIncrease)
}

func addTuitionFlag(cmd *cobra.Command) {
	cmd.Flags().Float64P("tuition", "t", 0, "tuition increase in percent (default: dashboard.tuition_increase)")
}

// reportOptions reads the report.* keys.
func reportOptions() report.Options {
	return report.Options{
		Title:       viper.GetString(keyReportTitle),
		School:      viper.GetString(keyReportSchool),
		Signatories: viper.GetStringSlice(keyReportSignatories),
	}
}
