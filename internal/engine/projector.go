package engine

import "github.com/Veraticus/payroll-must-balance/internal/model"

// project applies the policy to a single employee.
func (e *Engine) project(emp model.Employee) model.EmployeeProjection {
	tenure := TenureYears(e.policy.ReferenceYear, emp.StartYear)
	loyalty := e.table.Loyalty(tenure)
	expertise := ExpertiseBonus(emp.AdvancedDegree, e.policy.ExpertiseBonus)

	finalNet := emp.TargetNet
	if e.policy.Mode != model.BonusModeTargetOnly {
		finalNet = emp.TargetNet * (1 + loyalty + expertise)
	}

	netRaise := finalNet - emp.CurrentNet
	return model.EmployeeProjection{
		Employee:       emp,
		TenureYears:    tenure,
		LoyaltyBonus:   loyalty,
		ExpertiseBonus: expertise,
		FinalNet:       finalNet,
		NetRaise:       netRaise,
		BrutoRaise:     netRaise * e.policy.BrutoFactor,
	}
}

// Project returns one projection per employee, in roster order.
func (e *Engine) Project(roster model.Roster) []model.EmployeeProjection {
	out := make([]model.EmployeeProjection, len(roster))
	for i, emp := range roster {
		out[i] = e.project(emp)
	}
	return out
}

// ProjectEmployee is the single-employee form of Project.
func (e *Engine) ProjectEmployee(emp model.Employee) model.EmployeeProjection {
	return e.project(emp)
}
