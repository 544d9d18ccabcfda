// Package storage provides the SQLite persistence layer for the seed roster.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")

	// ErrInvalidEmployee aliases the shared sentinel so callers can match either.
	ErrInvalidEmployee = common.ErrInvalidEmployee
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// ValidateEmployee checks the fields the store relies on.
func ValidateEmployee(e model.Employee) error {
	if e.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidEmployee, e.ID)
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: employee %d: missing name", ErrInvalidEmployee, e.ID)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: employee %d: unknown category %q", ErrInvalidEmployee, e.ID, e.Category)
	}
	if e.StartYear <= 0 {
		return fmt.Errorf("%w: employee %d: missing start year", ErrInvalidEmployee, e.ID)
	}
	if !positiveAmount(e.CurrentNet) {
		return fmt.Errorf("%w: employee %d: current net must be positive", ErrInvalidEmployee, e.ID)
	}
	if !positiveAmount(e.TargetNet) {
		return fmt.Errorf("%w: employee %d: target net must be positive", ErrInvalidEmployee, e.ID)
	}
	return nil
}

// ValidateRoster validates every employee and rejects duplicate IDs.
func ValidateRoster(roster model.Roster) error {
	if roster == nil {
		return fmt.Errorf("%w: roster", ErrNilParameter)
	}
	if len(roster) == 0 {
		return fmt.Errorf("%w: roster", ErrEmptySlice)
	}

	seen := make(map[int]struct{}, len(roster))
	for i, e := range roster {
		if err := ValidateEmployee(e); err != nil {
			return fmt.Errorf("employee at index %d: %w", i, err)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidEmployee, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

func positiveAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
