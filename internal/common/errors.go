// Package common provides errors, logging and formatting helpers shared by the payroll packages.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrDatabaseCorrupted = errors.New("database corrupted")

	// Roster errors.
	ErrEmptyRoster     = errors.New("roster is empty")
	ErrInvalidEmployee = errors.New("invalid employee")

	// Policy and configuration errors.
	ErrInvalidPolicy = errors.New("invalid policy")
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Export errors.
	ErrExportFailed = errors.New("export failed")
)

// UserError represents an error that should be shown to the administrator.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
