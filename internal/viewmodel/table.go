package viewmodel

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/payroll-must-balance/internal/model"
)

// SortField selects the employee table sort column.
type SortField int

const (
	// SortByID keeps roster order.
	SortByID SortField = iota
	// SortByName sorts alphabetically.
	SortByName
	// SortByCategory sorts by tier.
	SortByCategory
	// SortByStartYear sorts by start year.
	SortByStartYear
	// SortByFinalNet sorts by projected net salary.
	SortByFinalNet
	// SortByRaise sorts by net raise.
	SortByRaise
	sortFieldCount
)

// Next cycles through the sort fields.
func (s SortField) Next() SortField { return (s + 1) % sortFieldCount }

func (s SortField) String() string {
	switch s {
	case SortByID:
		return "#"
	case SortByName:
		return "Name"
	case SortByCategory:
		return "Category"
	case SortByStartYear:
		return "Start"
	case SortByFinalNet:
		return "Final net"
	case SortByRaise:
		return "Raise"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Sort orders projections in place. Ties fall back to employee ID so the
// result is stable across recomputations.
func Sort(projections []model.EmployeeProjection, field SortField, descending bool) {
	less := func(a, b model.EmployeeProjection) int {
		switch field {
		case SortByName:
			return strings.Compare(a.Employee.Name, b.Employee.Name)
		case SortByCategory:
			return strings.Compare(string(a.Employee.Category), string(b.Employee.Category))
		case SortByStartYear:
			return cmp.Compare(a.Employee.StartYear, b.Employee.StartYear)
		case SortByFinalNet:
			return cmp.Compare(a.FinalNet, b.FinalNet)
		case SortByRaise:
			return cmp.Compare(a.NetRaise, b.NetRaise)
		default:
			return 0
		}
	}

	sort.SliceStable(projections, func(i, j int) bool {
		c := less(projections[i], projections[j])
		if c == 0 {
			return projections[i].Employee.ID < projections[j].Employee.ID
		}
		if descending {
			return c > 0
		}
		return c < 0
	})
}

// Totals are monthly sums over the visible table rows.
type Totals struct {
	Count       int     `json:"count"`
	CurrentNet  float64 `json:"current_net"`
	FinalNet    float64 `json:"final_net"`
	NetIncrease float64 `json:"net_increase"`
	BrutoCost   float64 `json:"bruto_cost"`
}

// FilteredTotals sums the given projections. The amounts are monthly.
func FilteredTotals(projections []model.EmployeeProjection) Totals {
	var t Totals
	for _, p := range projections {
		t.Count++
		t.CurrentNet += p.Employee.CurrentNet
		t.FinalNet += p.FinalNet
		t.BrutoCost += p.BrutoRaise
	}
	t.NetIncrease = t.FinalNet - t.CurrentNet
	return t
}

// Table is the employee table view: filtered, sorted rows and their totals.
type Table struct {
	Rows       []model.EmployeeProjection
	Totals     Totals
	Filters    Filters
	SortField  SortField
	Descending bool
}

// BuildTable filters and sorts a copy of projections.
func BuildTable(projections []model.EmployeeProjection, filters Filters, field SortField, descending bool) Table {
	rows := filters.Apply(projections)
	Sort(rows, field, descending)
	return Table{
		Rows:       rows,
		Totals:     FilteredTotals(rows),
		Filters:    filters,
		SortField:  field,
		Descending: descending,
	}
}
