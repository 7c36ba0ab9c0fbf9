package valuation

// Policy holds the numeric constants of the valuation model in one place.
// Two historical revisions of this model disagreed on whether WACC itself
// is clamped or only the debt ratio is bounded; the canonical policy here
// does both: debt ratio is capped at the profile target and the final WACC
// is clamped to [WACCFloor, WACCCeiling].
type Policy struct {
	// Cost of equity
	RiskFreeRate      float64 // 10-year treasury proxy
	MarketRiskPremium float64

	// Cost of debt
	CostOfDebtCap      float64 // interest/debt ratio is capped here
	CostOfDebtFallback float64 // used when debt or interest expense is zero

	// Capital structure
	NominalMarketCap float64 // assumed when market cap and debt are both zero
	TaxRate          float64

	// WACC clamp band
	WACCFloor   float64
	WACCCeiling float64
	// Returned if the computation still produces a non-finite value
	WACCFallback float64

	// Projection
	ProjectionYears int
	// Terminal growth is min(growth*TerminalGrowthFactor, TerminalGrowthCeiling)
	TerminalGrowthFactor  float64
	TerminalGrowthCeiling float64

	// Scenario spread around the baseline growth rate
	OptimisticCapMultiple float64
	PessimisticMultiple   float64
}

// DefaultPolicy returns the canonical model constants.
func DefaultPolicy() Policy {
	return Policy{
		RiskFreeRate:      0.04,
		MarketRiskPremium: 0.06,

		CostOfDebtCap:      0.10,
		CostOfDebtFallback: 0.04,

		NominalMarketCap: 1e9,
		TaxRate:          0.21,

		WACCFloor:    0.06,
		WACCCeiling:  0.15,
		WACCFallback: 0.10,

		ProjectionYears:       5,
		TerminalGrowthFactor:  0.3,
		TerminalGrowthCeiling: 0.02,

		OptimisticCapMultiple: 1.5,
		PessimisticMultiple:   0.5,
	}
}
