package valuation

import (
	"math"

	"dcf-analyzer/internal/marketdata"
)

// ComputeWACC derives the weighted average cost of capital from the
// company overview and industry profile. It always returns a usable rate:
// missing fields fall back to policy constants and the result is clamped
// to the policy band, so no input can make it fail.
func (e *Engine) ComputeWACC(overview marketdata.CompanyOverview, profile IndustryProfile) float64 {
	p := e.policy

	costOfEquity := p.RiskFreeRate + e.beta(overview, profile)*p.MarketRiskPremium

	// Cost of debt from actual interest burden, capped; nominal fallback
	// when the company carries no debt or reports no interest expense.
	costOfDebt := p.CostOfDebtFallback
	if overview.TotalDebt > 0 && overview.InterestExpense > 0 {
		costOfDebt = math.Min(overview.InterestExpense/overview.TotalDebt, p.CostOfDebtCap)
	}

	// Capital structure, capped at the profile's target debt ratio.
	marketCap := overview.MarketCapitalization
	if marketCap <= 0 && overview.TotalDebt <= 0 {
		marketCap = p.NominalMarketCap
	}

	debtRatio := profile.TargetDebtRatio
	if totalCapital := marketCap + overview.TotalDebt; totalCapital > 0 {
		debtRatio = math.Min(overview.TotalDebt/totalCapital, profile.TargetDebtRatio)
	}
	equityRatio := 1 - debtRatio

	wacc := equityRatio*costOfEquity + debtRatio*costOfDebt*(1-p.TaxRate)

	if math.IsNaN(wacc) || math.IsInf(wacc, 0) {
		return p.WACCFallback
	}

	return clamp(wacc, p.WACCFloor, p.WACCCeiling)
}

// beta resolves the equity beta: profile override first, then the
// overview-supplied value, then 1.0.
func (e *Engine) beta(overview marketdata.CompanyOverview, profile IndustryProfile) float64 {
	if profile.Beta > 0 {
		return profile.Beta
	}
	if overview.Beta > 0 {
		return overview.Beta
	}
	return 1.0
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
