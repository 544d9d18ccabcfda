// Package viewmodel derives the dashboard and report views from engine
// projections: table filters, sorting, totals and chart series.
package viewmodel

import (
	"fmt"

	"github.com/Veraticus/payroll-must-balance/internal/model"
)

// GroupFilter narrows the table to a pair of categories.
type GroupFilter int

const (
	// GroupAll shows every category.
	GroupAll GroupFilter = iota
	// GroupAB shows management and educators.
	GroupAB
	// GroupCD shows assistants and support staff.
	GroupCD
)

// DegreeFilter narrows the table by advanced-degree holders.
type DegreeFilter int

const (
	// DegreeAll shows everyone.
	DegreeAll DegreeFilter = iota
	// DegreeOnly shows advanced-degree holders.
	DegreeOnly
	// DegreeNone shows employees without an advanced degree.
	DegreeNone
)

// StartFilter narrows the table by start year relative to a pivot year.
type StartFilter int

const (
	// StartAll shows everyone.
	StartAll StartFilter = iota
	// StartBefore shows employees who started strictly before the pivot.
	StartBefore
	// StartAfter shows employees who started strictly after the pivot.
	StartAfter
)

// DefaultPivotYear splits the roster for the start-year filter.
const DefaultPivotYear = 2020

// Filters is the table filter state. The zero value shows every row.
type Filters struct {
	Group     GroupFilter
	Degree    DegreeFilter
	Start     StartFilter
	PivotYear int
}

// DefaultFilters returns filters that show every row.
func DefaultFilters() Filters {
	return Filters{PivotYear: DefaultPivotYear}
}

// Match reports whether an employee passes every filter.
func (f Filters) Match(e model.Employee) bool {
	return f.matchGroup(e) && f.matchDegree(e) && f.matchStart(e)
}

func (f Filters) matchGroup(e model.Employee) bool {
	switch f.Group {
	case GroupAB:
		return e.Category == model.CategoryManagement || e.Category == model.CategoryEducators
	case GroupCD:
		return e.Category == model.CategoryAssistants || e.Category == model.CategorySupport
	default:
		return true
	}
}

func (f Filters) matchDegree(e model.Employee) bool {
	switch f.Degree {
	case DegreeOnly:
		return e.AdvancedDegree
	case DegreeNone:
		return !e.AdvancedDegree
	default:
		return true
	}
}

func (f Filters) matchStart(e model.Employee) bool {
	pivot := f.PivotYear
	if pivot == 0 {
		pivot = DefaultPivotYear
	}
	switch f.Start {
	case StartBefore:
		return e.StartYear < pivot
	case StartAfter:
		return e.StartYear > pivot
	default:
		return true
	}
}

// IsActive reports whether any filter hides rows.
func (f Filters) IsActive() bool {
	return f.Group != GroupAll || f.Degree != DegreeAll || f.Start != StartAll
}

// Apply returns the projections that pass the filters, in input order.
func (f Filters) Apply(projections []model.EmployeeProjection) []model.EmployeeProjection {
	out := make([]model.EmployeeProjection, 0, len(projections))
	for _, p := range projections {
		if f.Match(p.Employee) {
			out = append(out, p)
		}
	}
	return out
}

// Next cycles ALL -> AB -> CD -> ALL.
func (g GroupFilter) Next() GroupFilter { return (g + 1) % 3 }

// Next cycles ALL -> degree holders -> others -> ALL.
func (d DegreeFilter) Next() DegreeFilter { return (d + 1) % 3 }

// Next cycles ALL -> before pivot -> after pivot -> ALL.
func (s StartFilter) Next() StartFilter { return (s + 1) % 3 }

func (g GroupFilter) String() string {
	switch g {
	case GroupAll:
		return "All categories"
	case GroupAB:
		return "A + B"
	case GroupCD:
		return "C + D"
	default:
		return fmt.Sprintf("Unknown(%d)", g)
	}
}

func (d DegreeFilter) String() string {
	switch d {
	case DegreeAll:
		return "All degrees"
	case DegreeOnly:
		return "MA only"
	case DegreeNone:
		return "No MA"
	default:
		return fmt.Sprintf("Unknown(%d)", d)
	}
}

// Label renders the start filter against the given pivot year.
func (s StartFilter) Label(pivot int) string {
	switch s {
	case StartAll:
		return "All years"
	case StartBefore:
		return fmt.Sprintf("Before %d", pivot)
	case StartAfter:
		return fmt.Sprintf("After %d", pivot)
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}
