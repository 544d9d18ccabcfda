package model

// Employee is one row of the seed roster. Salaries are monthly net amounts.
type Employee struct {
	Name           string   `json:"name" yaml:"name"`
	Role           string   `json:"role" yaml:"role"`
	Category       Category `json:"category" yaml:"category"`
	ID             int      `json:"id" yaml:"id"`
	StartYear      int      `json:"start_year" yaml:"start_year"`
	CurrentNet     float64  `json:"current_net" yaml:"current_net"`
	TargetNet      float64  `json:"target_net" yaml:"target_net"`
	AdvancedDegree bool     `json:"advanced_degree" yaml:"advanced_degree"`
}

// Roster is the ordered list of employees the engine works on.
type Roster []Employee

// Find returns the employee with the given ID.
func (r Roster) Find(id int) (Employee, bool) {
	for _, e := range r {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

// WithAdvancedDegreeToggled returns a copy of the roster with the advanced-degree
// flag of one employee flipped. The receiver is left untouched.
func (r Roster) WithAdvancedDegreeToggled(id int) Roster {
	out := make(Roster, len(r))
	copy(out, r)
	for i := range out {
		if out[i].ID == id {
			out[i].AdvancedDegree = !out[i].AdvancedDegree
		}
	}
	return out
}

// ByCategory returns the employees of a single category, preserving order.
func (r Roster) ByCategory(c Category) Roster {
	var out Roster
	for _, e := range r {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}
