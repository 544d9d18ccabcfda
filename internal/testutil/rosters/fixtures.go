package rosters

import "github.com/Veraticus/payroll-must-balance/internal/model"

// Fixture represents a predefined roster for testing.
type Fixture interface {
	Name() string
	Employees() model.Roster
}

type fixture struct {
	name      string
	employees model.Roster
}

func (f *fixture) Name() string { return f.name }

func (f *fixture) Employees() model.Roster {
	out := make(model.Roster, len(f.employees))
	copy(out, f.employees)
	return out
}

// Predefined fixtures.
var (
	// FixtureSeed is the 2026 seed roster of nineteen employees.
	FixtureSeed Fixture = &fixture{name: "Seed", employees: seedRoster}

	// FixtureEducatorsOnly leaves categories A, C and D empty.
	FixtureEducatorsOnly Fixture = &fixture{name: "EducatorsOnly", employees: seedRoster.ByCategory(model.CategoryEducators)}

	// FixtureEmpty has no employees.
	FixtureEmpty Fixture = &fixture{name: "Empty"}
)

// SeedSize is the number of employees in FixtureSeed.
const SeedSize = 19

var seedRoster = model.Roster{
	{ID: 1, Name: "MULALIĆ DAVOR", Role: "Direktor", Category: model.CategoryManagement, StartYear: 2020, AdvancedDegree: true, CurrentNet: 1293.71, TargetNet: 1600},
	{ID: 2, Name: "HABUL AMINA", Role: "Pedagog", Category: model.CategoryManagement, StartYear: 2017, AdvancedDegree: true, CurrentNet: 2497.92, TargetNet: 2600},
	{ID: 3, Name: "HUREMOVIĆ ARMINA", Role: "Pedagog", Category: model.CategoryManagement, StartYear: 2024, AdvancedDegree: true, CurrentNet: 1511.13, TargetNet: 1650},
	{ID: 4, Name: "MORIĆ AZRA", Role: "Office Manager", Category: model.CategoryManagement, StartYear: 2015, CurrentNet: 1779.55, TargetNet: 1900},
	{ID: 5, Name: "ŽUTIĆ MAJDA", Role: "Odgajatelj", Category: model.CategoryEducators, StartYear: 2012, AdvancedDegree: true, CurrentNet: 1601.38, TargetNet: 1800},
	{ID: 6, Name: "AGIĆ HASANDIĆ AMELA", Role: "Odgajatelj", Category: model.CategoryEducators, StartYear: 2021, AdvancedDegree: true, CurrentNet: 1151.46, TargetNet: 1500},
	{ID: 7, Name: "LJUCA ALMA", Role: "Odgajatelj", Category: model.CategoryEducators, StartYear: 2020, AdvancedDegree: true, CurrentNet: 1382.67, TargetNet: 1550},
	{ID: 8, Name: "FAZLOVIĆ AMELA", Role: "Odgajatelj", Category: model.CategoryEducators, StartYear: 2024, CurrentNet: 1639.86, TargetNet: 1700},
	{ID: 9, Name: "KARAGA MEDINA", Role: "Odgajatelj", Category: model.CategoryEducators, StartYear: 2025, CurrentNet: 1411.12, TargetNet: 1480},
	{ID: 10, Name: "ADEMOVIĆ MUBERA", Role: "Asistent odgaj.", Category: model.CategoryAssistants, StartYear: 2017, CurrentNet: 1673.64, TargetNet: 1750},
	{ID: 11, Name: "RAHMANOVIĆ AZRA", Role: "Fin. adm. sarad.", Category: model.CategoryAssistants, StartYear: 2023, CurrentNet: 1561.78, TargetNet: 1650},
	{ID: 12, Name: "BEŠLIĆ MAIDA", Role: "Pedijatrijska sr.", Category: model.CategoryAssistants, StartYear: 2022, CurrentNet: 1349.34, TargetNet: 1450},
	{ID: 13, Name: "SOLAK NEJRA", Role: "Pedijatrijska sr.", Category: model.CategoryAssistants, StartYear: 2021, CurrentNet: 1151.46, TargetNet: 1300},
	{ID: 14, Name: "HUSEINOVIĆ-KATKIĆ E.", Role: "Asistent odgaj.", Category: model.CategoryAssistants, StartYear: 2021, CurrentNet: 1250.85, TargetNet: 1350},
	{ID: 15, Name: "MUJEZINOVIC H. AMELA", Role: "Asistent odgaj.", Category: model.CategoryAssistants, StartYear: 2024, CurrentNet: 1305.20, TargetNet: 1380},
	{ID: 16, Name: "BEGOVIĆ EMINA", Role: "Glavna kuharica", Category: model.CategorySupport, StartYear: 2012, CurrentNet: 1490.33, TargetNet: 1650},
	{ID: 17, Name: "HALILOVIĆ SENIDA", Role: "Pomoćna kuhar.", Category: model.CategorySupport, StartYear: 2023, CurrentNet: 1086.41, TargetNet: 1150},
	{ID: 18, Name: "BEGANOVIĆ ENISA", Role: "Spremačica", Category: model.CategorySupport, StartYear: 2023, CurrentNet: 1086.41, TargetNet: 1150},
	{ID: 19, Name: "DŽIDIĆ NIZAMA", Role: "Spremačica", Category: model.CategorySupport, StartYear: 2025, CurrentNet: 1077.78, TargetNet: 1150},
}
