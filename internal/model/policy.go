package model

import (
	"fmt"
	"strings"
)

// BonusMode selects how tenure and expertise bonuses feed the final net salary.
type BonusMode string

const (
	// BonusModeMultiplicative applies bonuses on top of the target net:
	// final = target * (1 + loyalty + expertise).
	BonusModeMultiplicative BonusMode = "multiplicative"
	// BonusModeTargetOnly treats the target net as the final salary. Bonuses are
	// still reported per employee but do not change any amount.
	BonusModeTargetOnly BonusMode = "target_only"
)

// ParseBonusMode converts a config value into a BonusMode.
func ParseBonusMode(s string) (BonusMode, error) {
	switch BonusMode(strings.ToLower(strings.TrimSpace(s))) {
	case BonusModeMultiplicative, "":
		return BonusModeMultiplicative, nil
	case BonusModeTargetOnly:
		return BonusModeTargetOnly, nil
	default:
		return "", fmt.Errorf("unknown bonus mode %q", s)
	}
}

// BonusRule grants Bonus (a fraction, 0.15 = 15%) once tenure reaches MinTenureYears.
type BonusRule struct {
	MinTenureYears int     `json:"min_tenure_years" yaml:"min_tenure_years"`
	Bonus          float64 `json:"bonus" yaml:"bonus"`
}

// StartYearBand is the start-year phrasing of a bonus rule: anyone who started
// in MaxStartYear or earlier receives Bonus.
type StartYearBand struct {
	MaxStartYear int     `json:"max_start_year" yaml:"max_start_year"`
	Bonus        float64 `json:"bonus" yaml:"bonus"`
}

// Policy holds every constant the engine consumes.
type Policy struct {
	Mode            BonusMode   `json:"mode"`
	LoyaltyRules    []BonusRule `json:"loyalty_rules"`
	ReferenceYear   int         `json:"reference_year"`
	MonthsPerYear   int         `json:"months_per_year"`
	BrutoFactor     float64     `json:"bruto_factor"`
	BaselineRevenue float64     `json:"baseline_revenue"`
	ExpertiseBonus  float64     `json:"expertise_bonus"`
}

// Observed policy constants for the 2026 salary round.
const (
	DefaultReferenceYear   = 2026
	DefaultBrutoFactor     = 1.63
	DefaultBaselineRevenue = 876563.23
	DefaultExpertiseBonus  = 0.05
	DefaultMonthsPerYear   = 12
)

// DefaultLoyaltyRules returns the tenure table used in 2026.
func DefaultLoyaltyRules() []BonusRule {
	return []BonusRule{
		{MinTenureYears: 10, Bonus: 0.15},
		{MinTenureYears: 5, Bonus: 0.10},
		{MinTenureYears: 2, Bonus: 0.04},
		{MinTenureYears: 0, Bonus: 0},
	}
}

// DefaultPolicy returns the policy used by the school for the 2026 round.
func DefaultPolicy() Policy {
	return Policy{
		Mode:            BonusModeMultiplicative,
		LoyaltyRules:    DefaultLoyaltyRules(),
		ReferenceYear:   DefaultReferenceYear,
		MonthsPerYear:   DefaultMonthsPerYear,
		BrutoFactor:     DefaultBrutoFactor,
		BaselineRevenue: DefaultBaselineRevenue,
		ExpertiseBonus:  DefaultExpertiseBonus,
	}
}
