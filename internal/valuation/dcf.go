package valuation

import "math"

// Project compounds the current FCF forward: entry i is
// currentFCF * (1+growthRate)^(i+1). The result always has exactly
// `years` entries.
func Project(currentFCF, growthRate float64, years int) []float64 {
	flows := make([]float64, years)
	for i := range flows {
		flows[i] = currentFCF * math.Pow(1+growthRate, float64(i+1))
	}
	return flows
}

// TerminalGrowth caps the perpetuity growth rate: a fraction of the
// projection growth rate, bounded by the policy ceiling.
func (e *Engine) TerminalGrowth(growthRate float64) float64 {
	return math.Min(growthRate*e.policy.TerminalGrowthFactor, e.policy.TerminalGrowthCeiling)
}

// TerminalValue computes the Gordon-growth perpetuity value of the final
// projected year. The denominator is guarded: a discount rate at or below
// the capped terminal growth has no defined perpetuity value and is
// reported as ErrTerminalValueUndefined instead of dividing through.
func (e *Engine) TerminalValue(finalYearFCF, growthRate, wacc float64) (float64, error) {
	terminalGrowth := e.TerminalGrowth(growthRate)

	if wacc <= terminalGrowth {
		return 0, ErrTerminalValueUndefined
	}

	return finalYearFCF * (1 + terminalGrowth) / (wacc - terminalGrowth), nil
}

// PresentValue discounts a cash-flow sequence: sum of cf_i/(1+wacc)^(i+1).
func PresentValue(cashFlows []float64, wacc float64) float64 {
	pv := 0.0
	for i, cf := range cashFlows {
		pv += cf / math.Pow(1+wacc, float64(i+1))
	}
	return pv
}
