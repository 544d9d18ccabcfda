package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/payroll-must-balance/internal/cli"
	"github.com/Veraticus/payroll-must-balance/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the roster database schema to the latest version.

Every command that touches the database migrates it on open; this command
is useful after an upgrade or to check the schema version.`,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")
	out := cmd.OutOrStdout()

	if status {
		// open without migrating so the current version is visible
		store, err := openStorage()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		current, err := store.SchemaVersion(ctx)
		if err != nil {
			return err
		}

		msg := fmt.Sprintf("Database  %s\nCurrent   v%d\nLatest    v%d", store.Path(), current, storage.ExpectedSchemaVersion)
		if _, err := fmt.Fprintln(out, cli.RenderBox(cli.FolderIcon+" Migration status", msg)); err != nil {
			return err
		}
		if current < storage.ExpectedSchemaVersion {
			_, err = fmt.Fprintln(out, cli.FormatWarning("Run 'payroll migrate' to upgrade."))
		}
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer func() { _ = store.Close() }()

	slog.Info("Database migrated", "path", store.Path(), "version", storage.ExpectedSchemaVersion)
	_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Database is at schema v%d", storage.ExpectedSchemaVersion)))
	return err
}
