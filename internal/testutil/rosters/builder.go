package rosters

import (
	"fmt"
	"sort"
	"testing"

	"github.com/Veraticus/payroll-must-balance/internal/model"
)

// Builder provides a fluent interface for constructing test rosters.
type Builder interface {
	// WithEmployee adds or replaces an employee, keyed by ID.
	WithEmployee(e model.Employee) Builder

	// WithFixture adds every employee of a fixture.
	WithFixture(f Fixture) Builder

	// WithAdvancedDegree sets the advanced-degree flag on an already added employee.
	WithAdvancedDegree(id int) Builder

	// Build returns the roster ordered by ID.
	Build() model.Roster
}

type rosterBuilder struct {
	t         *testing.T
	employees map[int]model.Employee
}

// NewBuilder creates a new roster builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &rosterBuilder{
		t:         t,
		employees: make(map[int]model.Employee),
	}
}

func (b *rosterBuilder) WithEmployee(e model.Employee) Builder {
	b.employees[e.ID] = e
	return b
}

func (b *rosterBuilder) WithFixture(f Fixture) Builder {
	for _, e := range f.Employees() {
		b.employees[e.ID] = e
	}
	return b
}

func (b *rosterBuilder) WithAdvancedDegree(id int) Builder {
	b.t.Helper()
	e, ok := b.employees[id]
	if !ok {
		b.t.Fatalf("employee %d not added to builder", id)
	}
	e.AdvancedDegree = true
	b.employees[id] = e
	return b
}

func (b *rosterBuilder) Build() model.Roster {
	out := make(model.Roster, 0, len(b.employees))
	for _, e := range b.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Seed returns a fresh copy of the seed roster.
func Seed() model.Roster {
	return FixtureSeed.Employees()
}

// Employee builds an employee with a generated name.
func Employee(id int, c model.Category, startYear int, currentNet, targetNet float64) model.Employee {
	return model.Employee{
		ID:         id,
		Name:       fmt.Sprintf("EMPLOYEE %02d", id),
		Role:       c.Label(),
		Category:   c,
		StartYear:  startYear,
		CurrentNet: currentNet,
		TargetNet:  targetNet,
	}
}

// Educator is Employee for category B.
func Educator(id, startYear int, currentNet, targetNet float64) model.Employee {
	return Employee(id, model.CategoryEducators, startYear, currentNet, targetNet)
}
