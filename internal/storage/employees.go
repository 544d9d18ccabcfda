package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/model"
)

// ImportRecord describes one roster replacement.
type ImportRecord struct {
	ImportedAt    time.Time
	Source        string
	ID            int64
	EmployeeCount int
}

// SaveRoster replaces the stored roster in a single transaction.
func (s *SQLiteStorage) SaveRoster(ctx context.Context, roster model.Roster) error {
	return s.ImportRoster(ctx, roster, "direct", nil)
}

// ImportRoster replaces the stored roster and records where it came from.
// progress, when not nil, is called after each employee is written.
func (s *SQLiteStorage) ImportRoster(ctx context.Context, roster model.Roster, source string, progress func(model.Employee)) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(source, "source"); err != nil {
		return err
	}
	if err := ValidateRoster(roster); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM employees`); err != nil {
		return fmt.Errorf("failed to clear roster: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO employees (id, name, role, category, start_year, advanced_degree, current_net, target_net)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range roster {
		if _, err = stmt.ExecContext(ctx,
			e.ID, e.Name, e.Role, string(e.Category), e.StartYear,
			e.AdvancedDegree, e.CurrentNet, e.TargetNet,
		); err != nil {
			return fmt.Errorf("failed to insert employee %d: %w", e.ID, err)
		}
		if progress != nil {
			progress(e)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO roster_imports (source, employee_count) VALUES (?, ?)`,
		source, len(roster),
	); err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit roster: %w", err)
	}

	slog.Debug("Saved roster", "employees", len(roster), "source", source)
	return nil
}

// GetRoster returns every stored employee ordered by ID.
func (s *SQLiteStorage) GetRoster(ctx context.Context) (model.Roster, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, role, category, start_year, advanced_degree, current_net, target_net
		FROM employees
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var roster model.Roster
	for rows.Next() {
		e, scanErr := scanEmployee(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		roster = append(roster, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	slog.Debug("Loaded roster", "employees", len(roster))
	return roster, nil
}

// GetEmployee returns one employee or common.ErrNotFound.
func (s *SQLiteStorage) GetEmployee(ctx context.Context, id int) (*model.Employee, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, role, category, start_year, advanced_degree, current_net, target_net
		FROM employees
		WHERE id = ?
	`, id)

	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("employee %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CountEmployees returns the number of stored employees.
func (s *SQLiteStorage) CountEmployees(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return n, nil
}

// LastImport returns the most recent roster import, or common.ErrNotFound.
func (s *SQLiteStorage) LastImport(ctx context.Context) (*ImportRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var rec ImportRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, employee_count, imported_at
		FROM roster_imports
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&rec.ID, &rec.Source, &rec.EmployeeCount, &rec.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("roster import: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last import: %w", err)
	}
	return &rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(r rowScanner) (model.Employee, error) {
	var (
		e        model.Employee
		category string
	)
	err := r.Scan(&e.ID, &e.Name, &e.Role, &category, &e.StartYear, &e.AdvancedDegree, &e.CurrentNet, &e.TargetNet)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Employee{}, err
	}
	if err != nil {
		return model.Employee{}, fmt.Errorf("failed to scan employee: %w", err)
	}
	e.Category = model.Category(category)
	return e, nil
}
