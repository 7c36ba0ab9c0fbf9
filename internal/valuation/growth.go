package valuation

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// GrowthRates holds the scenario growth-rate triple. Optimistic >= Base >=
// Pessimistic whenever the rates are derived (rather than profile-pinned)
// and the baseline is non-negative.
type GrowthRates struct {
	Base        float64
	Optimistic  float64
	Pessimistic float64
}

// ForScenario returns the rate matching the scenario.
func (g GrowthRates) ForScenario(s Scenario) float64 {
	switch s {
	case ScenarioOptimistic:
		return g.Optimistic
	case ScenarioPessimistic:
		return g.Pessimistic
	default:
		return g.Base
	}
}

// DeriveGrowthRates produces the scenario growth-rate triple from FCF
// history (most recent first) and the industry profile. It always returns
// three finite rates.
//
// High-growth profiles pin all three rates to profile constants so that
// noisy year-over-year swings cannot dominate a structurally high-growth
// company. Otherwise the baseline is the profile's revenue growth and the
// optimistic case is widened by historical volatility when at least two
// positive data points exist: optimistic = max(base, min(mean+stddev,
// 1.5*base)), pessimistic = 0.5*base.
func (e *Engine) DeriveGrowthRates(fcfHistory []float64, profile IndustryProfile) GrowthRates {
	if profile.HighGrowthOverride {
		return profile.OverrideRates
	}

	p := e.policy
	base := profile.RevenueGrowth
	fallback := GrowthRates{
		Base:        base,
		Optimistic:  base * p.OptimisticCapMultiple,
		Pessimistic: base * p.PessimisticMultiple,
	}

	ratios := yearOverYearRatios(fcfHistory)
	if len(ratios) == 0 {
		return fallback
	}

	mean := stat.Mean(ratios, nil)
	stddev := 0.0
	if len(ratios) > 1 {
		stddev = stat.StdDev(ratios, nil)
	}

	optimistic := math.Max(base, math.Min(mean+stddev, base*p.OptimisticCapMultiple))
	if math.IsNaN(optimistic) || math.IsInf(optimistic, 0) {
		return fallback
	}

	return GrowthRates{
		Base:        base,
		Optimistic:  optimistic,
		Pessimistic: base * p.PessimisticMultiple,
	}
}

// yearOverYearRatios computes growth ratios between consecutive history
// entries. History is most recent first, so the later year is the earlier
// index. Pairs where either side is non-positive are excluded: percentage
// growth through zero or across a sign change is undefined.
func yearOverYearRatios(fcfHistory []float64) []float64 {
	if len(fcfHistory) < 2 {
		return nil
	}

	ratios := make([]float64, 0, len(fcfHistory)-1)
	for i := 0; i < len(fcfHistory)-1; i++ {
		later := fcfHistory[i]
		earlier := fcfHistory[i+1]
		if later <= 0 || earlier <= 0 {
			continue
		}
		ratios = append(ratios, later/earlier-1)
	}

	return ratios
}
