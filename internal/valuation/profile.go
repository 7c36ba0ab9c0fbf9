package valuation

import "strings"

// IndustryProfile is the parameter set selected for a company's industry
// classification. Exactly one profile applies per valuation run.
type IndustryProfile struct {
	Name string

	RevenueGrowth   float64
	FCFMargin       float64
	TargetDebtRatio float64

	// Beta overrides the overview-supplied beta when non-zero.
	Beta float64

	// HighGrowthOverride pins the scenario growth rates to fixed
	// constants instead of deriving them from noisy year-over-year
	// history. OverrideRates is only set when this is true.
	HighGrowthOverride bool
	OverrideRates      GrowthRates
}

// profileRule maps an upper-cased substring test to a profile.
type profileRule struct {
	matches func(sector, industry string) bool
	profile IndustryProfile
}

// profileRules is evaluated in priority order; the first match wins.
var profileRules = []profileRule{
	{
		matches: func(_, industry string) bool { return strings.Contains(industry, "SEMICONDUCTOR") },
		profile: IndustryProfile{
			Name:               "semiconductor",
			RevenueGrowth:      0.25,
			FCFMargin:          0.25,
			TargetDebtRatio:    0.15,
			Beta:               1.6,
			HighGrowthOverride: true,
			OverrideRates:      GrowthRates{Base: 0.25, Optimistic: 0.35, Pessimistic: 0.15},
		},
	},
	{
		matches: func(_, industry string) bool { return strings.Contains(industry, "SOFTWARE") },
		profile: IndustryProfile{
			Name:            "software",
			RevenueGrowth:   0.15,
			FCFMargin:       0.20,
			TargetDebtRatio: 0.15,
		},
	},
	{
		matches: func(sector, _ string) bool { return strings.Contains(sector, "MANUFACTURING") },
		profile: IndustryProfile{
			Name:            "manufacturing",
			RevenueGrowth:   0.08,
			FCFMargin:       0.12,
			TargetDebtRatio: 0.30,
		},
	},
	{
		matches: func(sector, _ string) bool { return strings.Contains(sector, "CONSUMER") },
		profile: IndustryProfile{
			Name:            "consumer",
			RevenueGrowth:   0.06,
			FCFMargin:       0.10,
			TargetDebtRatio: 0.25,
		},
	},
}

// defaultProfile applies when no rule matches. Beta stays zero so the
// overview-supplied beta (or 1.0) is used.
var defaultProfile = IndustryProfile{
	Name:            "default",
	RevenueGrowth:   0.10,
	FCFMargin:       0.15,
	TargetDebtRatio: 0.20,
}

// Classify selects the industry profile for a sector/industry pair.
// Deterministic and total: unmatched input yields the default profile.
func Classify(sector, industry string) IndustryProfile {
	s := strings.ToUpper(sector)
	i := strings.ToUpper(industry)

	for _, rule := range profileRules {
		if rule.matches(s, i) {
			return rule.profile
		}
	}

	return defaultProfile
}
