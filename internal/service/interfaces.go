// Package service defines the interfaces shared between the payroll packages.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/payroll-must-balance/internal/model"
)

// RosterStore defines the contract for the seed roster persistence layer.
// Only seed data is stored; dashboard toggles are never written back.
type RosterStore interface {
	SaveRoster(ctx context.Context, roster model.Roster) error
	GetRoster(ctx context.Context) (model.Roster, error)
	GetEmployee(ctx context.Context, id int) (*model.Employee, error)
	CountEmployees(ctx context.Context) (int, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RosterSource loads a roster from somewhere: an embedded seed, a file or the store.
type RosterSource interface {
	LoadRoster(ctx context.Context) (model.Roster, error)
	Name() string
}

// RetryOptions configures retry behavior for operations. Operation names the
// work in log lines and errors.
type RetryOptions struct {
	Operation    string
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
