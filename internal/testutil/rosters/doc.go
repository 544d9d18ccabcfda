// Package rosters provides test rosters: the school's seed roster as a fixture
// and a fluent builder for small hand-made rosters.
//
// # Basic Usage
//
//	roster := rosters.NewBuilder(t).
//		WithEmployee(rosters.Educator(1, 2012, 1600, 1800)).
//		WithAdvancedDegree(1).
//		Build()
//
// # Using Fixtures
//
//	roster := rosters.NewBuilder(t).WithFixture(rosters.FixtureSeed).Build()
//
// Fixtures are copied on every Build, so tests may mutate the result freely.
package rosters
