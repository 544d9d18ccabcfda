package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/payroll-must-balance/internal/cli"
	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/config"
	"github.com/Veraticus/payroll-must-balance/internal/model"
)

func rosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the employee roster",
		Long: `List the active roster, or replace the roster stored in the database.

The engine reads the roster named by --roster (or roster.source): the
embedded seed, the database ("store"), or a YAML/XLSX file.`,
	}

	cmd.AddCommand(rosterListCmd())
	cmd.AddCommand(rosterImportCmd())
	cmd.AddCommand(rosterSeedCmd())
	cmd.AddCommand(rosterExportCmd())
	cmd.AddCommand(rosterStatusCmd())

	return cmd
}

func rosterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the active roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			roster, err := loadRoster(cmd.Context())
			if err != nil {
				return err
			}
			return printRoster(cmd.OutOrStdout(), roster)
		},
	}
}

func rosterImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the stored roster with a YAML or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ExpandPath(args[0])
			roster, err := config.LoadRosterFile(path)
			if err != nil {
				return err
			}
			return importRoster(cmd, roster, filepath.Base(path))
		},
	}
	addImportFlags(cmd)
	return cmd
}

func rosterSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the stored roster with the embedded seed roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			roster, err := config.SeedRoster()
			if err != nil {
				return err
			}
			return importRoster(cmd, roster, config.SourceEmbedded)
		},
	}
	addImportFlags(cmd)
	return cmd
}

func rosterExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the active roster to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := loadRoster(cmd.Context())
			if err != nil {
				return err
			}
			data, err := config.MarshalRosterYAML(roster)
			if err != nil {
				return err
			}

			path := config.ExpandPath(args[0])
			if err := os.WriteFile(path, data, 0600); err != nil {
				return fmt.Errorf("failed to write roster: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Wrote %d employees to %s", len(roster), path)))
			return err
		},
	}
}

func rosterStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show what the roster database holds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			count, err := store.CountEmployees(ctx)
			if err != nil {
				return err
			}

			lines := fmt.Sprintf("Database   %s\nEmployees  %d", store.Path(), count)
			last, err := store.LastImport(ctx)
			switch {
			case errors.Is(err, common.ErrNotFound):
				lines += "\nImported   never"
			case err != nil:
				return err
			default:
				lines += fmt.Sprintf("\nImported   %s from %s (%d employees)",
					last.ImportedAt.Local().Format("02.01.2006 15:04"), last.Source, last.EmployeeCount)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(cli.FolderIcon+" Roster database", lines))
			return err
		},
	}
}

func addImportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "replace an existing roster without asking")
	cmd.Flags().Bool("backup", false, "back up the database before replacing the roster")
}

// importRoster writes roster into the database, asking first when it would
// replace existing employees.
func importRoster(cmd *cobra.Command, roster model.Roster, source string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	backup, _ := cmd.Flags().GetBool("backup")
	out := cmd.OutOrStdout()

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "The stored roster was left unchanged.")
	ctx := handler.HandleInterrupts(cmd.Context())

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	existing, err := store.CountEmployees(ctx)
	if err != nil {
		return err
	}

	if existing > 0 && !yes {
		question := fmt.Sprintf("Replace %d stored employees with %d from %s?", existing, len(roster), source)
		ok, confirmErr := cli.Confirm(ctx, cmd.InOrStdin(), out, question)
		if confirmErr != nil {
			return confirmErr
		}
		if !ok {
			_, err = fmt.Fprintln(out, cli.FormatWarning("Import canceled."))
			return err
		}
	}

	if backup && existing > 0 {
		dest := store.BackupPath("pre-import")
		if err := store.Backup(ctx, dest); err != nil {
			return fmt.Errorf("backup failed, roster not replaced: %w", err)
		}
		if _, err := fmt.Fprintln(out, cli.FormatInfo("Backup written to "+dest)); err != nil {
			return err
		}
	}

	progress := cli.NewImportProgress(cmd.ErrOrStderr(), len(roster), "Importing roster")
	if err := store.ImportRoster(ctx, roster, source, progress.Step); err != nil {
		if handler.WasInterrupted() {
			return nil
		}
		return fmt.Errorf("failed to import roster: %w", err)
	}
	progress.Finish()

	slog.Info("Imported roster", "source", source, "employees", len(roster))
	_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d employees from %s", len(roster), source)))
	return err
}

func printRoster(out io.Writer, roster model.Roster) error {
	if len(roster) == 0 {
		_, err := fmt.Fprintln(out, cli.InfoStyle.Render("The roster is empty. Use 'payroll roster import' to load one."))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("ID"),
		headerStyle.Render("Name"),
		headerStyle.Render("Role"),
		headerStyle.Render("Cat"),
		headerStyle.Render("Start"),
		headerStyle.Render("MA"),
		headerStyle.Render("Current net"),
		headerStyle.Render("Target net"))

	for _, e := range roster {
		ma := ""
		if e.AdvancedDegree {
			ma = cli.SuccessIcon
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Name, e.Role, e.Category, strconv.Itoa(e.StartYear), ma,
			common.FormatMoney(e.CurrentNet), common.FormatMoney(e.TargetNet))
	}

	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d employees\n", len(roster))
	return err
}
