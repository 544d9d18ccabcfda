package model

import (
	"fmt"
	"strings"
)

// Category is the organizational tier of an employee.
type Category string

const (
	// CategoryManagement covers directors, pedagogues and office management.
	CategoryManagement Category = "A"
	// CategoryEducators covers the teaching staff.
	CategoryEducators Category = "B"
	// CategoryAssistants covers teaching assistants, nurses and administration.
	CategoryAssistants Category = "C"
	// CategorySupport covers kitchen and cleaning staff.
	CategorySupport Category = "D"
)

var allCategories = [...]Category{
	CategoryManagement,
	CategoryEducators,
	CategoryAssistants,
	CategorySupport,
}

// AllCategories returns every category in tier order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories[:])
	return out
}

// ParseCategory converts a tag such as "b" or "B" into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q: expected one of A, B, C, D", s)
	}
	return c, nil
}

// Valid reports whether c is one of the four known tiers.
func (c Category) Valid() bool {
	switch c {
	case CategoryManagement, CategoryEducators, CategoryAssistants, CategorySupport:
		return true
	default:
		return false
	}
}

// Label returns the human readable tier name.
func (c Category) Label() string {
	switch c {
	case CategoryManagement:
		return "Management"
	case CategoryEducators:
		return "Educators"
	case CategoryAssistants:
		return "Assistants"
	case CategorySupport:
		return "Support staff"
	default:
		return "Unknown"
	}
}

// Index returns the position of c in AllCategories, or -1.
func (c Category) Index() int {
	for i, cat := range allCategories {
		if cat == c {
			return i
		}
	}
	return -1
}
