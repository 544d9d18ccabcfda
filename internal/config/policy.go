package config

import (
	"fmt"

	"github.com/Veraticus/payroll-must-balance/internal/common"
	"github.com/Veraticus/payroll-must-balance/internal/engine"
	"github.com/Veraticus/payroll-must-balance/internal/model"
	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyReferenceYear    = "policy.reference_year"
	KeyBrutoFactor      = "policy.bruto_factor"
	KeyBaselineRevenue  = "policy.baseline_revenue"
	KeyExpertisePercent = "policy.expertise_bonus_percent"
	KeyBonusMode        = "policy.bonus_mode"
	KeyMonthsPerYear    = "policy.months_per_year"
	KeyLoyaltyRules     = "policy.loyalty_rules"
	KeyLoyaltyBands     = "policy.loyalty_bands"

	KeyTuitionIncrease = "dashboard.tuition_increase"
	KeyTheme           = "dashboard.theme"
	KeyPivotYear       = "dashboard.pivot_year"

	KeyDatabasePath = "database.path"
	KeyRosterSource = "roster.source"
)

// loyaltyRuleConfig is the config-file form of a loyalty rule. Bonuses are
// written as percentages (15 means 15%).
type loyaltyRuleConfig struct {
	MinTenureYears int     `mapstructure:"min_tenure_years"`
	BonusPercent   float64 `mapstructure:"bonus_percent"`
}

type loyaltyBandConfig struct {
	MaxStartYear int     `mapstructure:"max_start_year"`
	BonusPercent float64 `mapstructure:"bonus_percent"`
}

// SetDefaults registers the observed 2026 policy as viper defaults.
func SetDefaults(v *viper.Viper) {
	p := model.DefaultPolicy()
	v.SetDefault(KeyReferenceYear, p.ReferenceYear)
	v.SetDefault(KeyBrutoFactor, p.BrutoFactor)
	v.SetDefault(KeyBaselineRevenue, p.BaselineRevenue)
	v.SetDefault(KeyExpertisePercent, p.ExpertiseBonus*100)
	v.SetDefault(KeyBonusMode, string(p.Mode))
	v.SetDefault(KeyMonthsPerYear, p.MonthsPerYear)

	v.SetDefault(KeyTuitionIncrease, 6.0)
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyPivotYear, 2020)

	v.SetDefault(KeyDatabasePath, "~/.config/payroll/payroll.db")
	v.SetDefault(KeyRosterSource, SourceEmbedded)
}

// PolicyFromViper builds a policy from configuration and validates it.
// Loyalty rules come from policy.loyalty_rules, or from policy.loyalty_bands
// converted against the reference year. Neither set means the default table.
func PolicyFromViper(v *viper.Viper) (model.Policy, error) {
	mode, err := model.ParseBonusMode(v.GetString(KeyBonusMode))
	if err != nil {
		return model.Policy{}, fmt.Errorf("%w: %w", common.ErrInvalidPolicy, err)
	}

	p := model.Policy{
		Mode:            mode,
		ReferenceYear:   v.GetInt(KeyReferenceYear),
		MonthsPerYear:   v.GetInt(KeyMonthsPerYear),
		BrutoFactor:     v.GetFloat64(KeyBrutoFactor),
		BaselineRevenue: v.GetFloat64(KeyBaselineRevenue),
		ExpertiseBonus:  v.GetFloat64(KeyExpertisePercent) / 100,
		LoyaltyRules:    model.DefaultLoyaltyRules(),
	}

	switch {
	case v.IsSet(KeyLoyaltyRules) && v.IsSet(KeyLoyaltyBands):
		return model.Policy{}, fmt.Errorf("%w: set either %s or %s, not both", common.ErrInvalidPolicy, KeyLoyaltyRules, KeyLoyaltyBands)
	case v.IsSet(KeyLoyaltyRules):
		var rules []loyaltyRuleConfig
		if err := v.UnmarshalKey(KeyLoyaltyRules, &rules); err != nil {
			return model.Policy{}, fmt.Errorf("%w: %s: %w", common.ErrInvalidPolicy, KeyLoyaltyRules, err)
		}
		p.LoyaltyRules = make([]model.BonusRule, 0, len(rules))
		for _, r := range rules {
			p.LoyaltyRules = append(p.LoyaltyRules, model.BonusRule{MinTenureYears: r.MinTenureYears, Bonus: r.BonusPercent / 100})
		}
	case v.IsSet(KeyLoyaltyBands):
		var bands []loyaltyBandConfig
		if err := v.UnmarshalKey(KeyLoyaltyBands, &bands); err != nil {
			return model.Policy{}, fmt.Errorf("%w: %s: %w", common.ErrInvalidPolicy, KeyLoyaltyBands, err)
		}
		converted := make([]model.StartYearBand, 0, len(bands))
		for _, b := range bands {
			converted = append(converted, model.StartYearBand{MaxStartYear: b.MaxStartYear, Bonus: b.BonusPercent / 100})
		}
		p.LoyaltyRules = engine.BandsToRules(p.ReferenceYear, converted)
	}

	if err := engine.ValidatePolicy(p); err != nil {
		return model.Policy{}, err
	}

	common.LogDebug("Loaded policy", common.Fields{
		"reference_year": p.ReferenceYear,
		"mode":           p.Mode,
		"rules":          len(p.LoyaltyRules),
	})
	return p, nil
}
