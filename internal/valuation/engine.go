package valuation

import (
	"fmt"
	"math"

	"dcf-analyzer/internal/marketdata"
)

// Scenario names a growth-rate assumption set.
type Scenario string

const (
	ScenarioBase        Scenario = "base"
	ScenarioOptimistic  Scenario = "optimistic"
	ScenarioPessimistic Scenario = "pessimistic"
)

// Scenarios lists all scenarios in evaluation order.
var Scenarios = []Scenario{ScenarioBase, ScenarioOptimistic, ScenarioPessimistic}

// ParseScenario validates a scenario name.
func ParseScenario(s string) (Scenario, error) {
	switch Scenario(s) {
	case ScenarioBase, ScenarioOptimistic, ScenarioPessimistic:
		return Scenario(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScenario, s)
	}
}

// ScenarioResult is the engine output for one scenario. Produced fresh on
// every invocation; the engine holds no state between calls.
type ScenarioResult struct {
	Ticker   string   `json:"ticker"`
	Scenario Scenario `json:"scenario"`

	EnterpriseValue float64 `json:"enterprise_value"`
	EquityValue     float64 `json:"equity_value"`
	PricePerShare   float64 `json:"price_per_share"`
	CurrentPrice    float64 `json:"current_price"`
	// Upside is the percentage difference between intrinsic and market
	// price; zero when no market price is available (undetermined).
	Upside float64 `json:"upside"`

	WACC           float64 `json:"wacc"`
	GrowthRate     float64 `json:"growth_rate"`
	TerminalGrowth float64 `json:"terminal_growth"`

	// Warnings flags soft fallbacks (missing source fields defaulted)
	// so a caller can mark the result as low-confidence.
	Warnings []string `json:"warnings,omitempty"`
}

// ScenarioOutcome pairs a scenario with its result or failure. A failed
// scenario never blocks the others.
type ScenarioOutcome struct {
	Scenario Scenario
	Result   *ScenarioResult
	Err      error
}

// Engine is the pure DCF calculator. It performs no I/O, keeps no state
// between calls, and is safe for concurrent use.
type Engine struct {
	policy Policy
}

// NewEngine creates an engine with the default policy.
func NewEngine() *Engine {
	return &Engine{policy: DefaultPolicy()}
}

// NewEngineWithPolicy creates an engine with custom model constants.
func NewEngineWithPolicy(p Policy) *Engine {
	return &Engine{policy: p}
}

// Policy returns the model constants in effect.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Valuate runs the DCF model for one ticker and scenario.
//
// Returns ErrInsufficientData when no usable FCF history exists or the
// most recent FCF is non-positive, and ErrTerminalValueUndefined when the
// discount rate cannot support a perpetuity value.
func (e *Engine) Valuate(ticker string, bundle marketdata.Bundle, scenario Scenario) (*ScenarioResult, error) {
	if _, err := ParseScenario(string(scenario)); err != nil {
		return nil, err
	}

	fcfHistory := ExtractFCF(bundle.Financials.CashFlow)
	if len(fcfHistory) == 0 {
		return nil, fmt.Errorf("%w: no cash flow history for %s", ErrInsufficientData, ticker)
	}

	currentFCF := fcfHistory[0]
	if currentFCF <= 0 {
		return nil, fmt.Errorf("%w: latest free cash flow is non-positive (%.0f)", ErrInsufficientData, currentFCF)
	}

	overview := bundle.Overview
	profile := Classify(overview.Sector, overview.Industry)

	wacc := e.ComputeWACC(overview, profile)
	growthRate := e.DeriveGrowthRates(fcfHistory, profile).ForScenario(scenario)

	projected := Project(currentFCF, growthRate, e.policy.ProjectionYears)

	terminalValue, err := e.TerminalValue(projected[len(projected)-1], growthRate, wacc)
	if err != nil {
		return nil, err
	}

	flowsPV := PresentValue(projected, wacc)
	terminalPV := terminalValue / math.Pow(1+wacc, float64(e.policy.ProjectionYears))
	enterpriseValue := flowsPV + terminalPV

	var warnings []string

	netDebt := overview.TotalDebt - overview.TotalCash
	equityValue := enterpriseValue - netDebt

	shares := overview.SharesOutstanding
	if shares <= 0 {
		// Equity value passes through undivided rather than crashing,
		// but the result is flagged as low-confidence.
		shares = 1
		warnings = append(warnings, "shares outstanding missing; per-share price equals total equity value")
	}
	pricePerShare := equityValue / shares

	currentPrice := overview.CurrentPrice()
	upside := 0.0
	if currentPrice > 0 {
		upside = (pricePerShare/currentPrice - 1) * 100
	} else {
		warnings = append(warnings, "no market price available; upside undetermined")
	}

	return &ScenarioResult{
		Ticker:          ticker,
		Scenario:        scenario,
		EnterpriseValue: enterpriseValue,
		EquityValue:     equityValue,
		PricePerShare:   pricePerShare,
		CurrentPrice:    currentPrice,
		Upside:          upside,
		WACC:            wacc,
		GrowthRate:      growthRate,
		TerminalGrowth:  e.TerminalGrowth(growthRate),
		Warnings:        warnings,
	}, nil
}

// ValuateAll evaluates every scenario independently. Outcomes are returned
// in Scenarios order; a failure in one scenario does not prevent the rest.
func (e *Engine) ValuateAll(ticker string, bundle marketdata.Bundle) []ScenarioOutcome {
	outcomes := make([]ScenarioOutcome, 0, len(Scenarios))

	for _, scenario := range Scenarios {
		result, err := e.Valuate(ticker, bundle, scenario)
		outcomes = append(outcomes, ScenarioOutcome{
			Scenario: scenario,
			Result:   result,
			Err:      err,
		})
	}

	return outcomes
}
