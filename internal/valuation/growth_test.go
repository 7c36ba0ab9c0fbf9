package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

func TestDeriveGrowthRatesHighGrowthOverride(t *testing.T) {
	e := NewEngine()
	profile := Classify("", "SEMICONDUCTOR")

	// History with wild swings must not influence an override profile.
	history := []float64{5000, 100, 4000, 50}

	got := e.DeriveGrowthRates(history, profile)

	assert.Equal(t, GrowthRates{Base: 0.25, Optimistic: 0.35, Pessimistic: 0.15}, got)
}

func TestDeriveGrowthRatesFromHistory(t *testing.T) {
	e := NewEngine()
	profile := Classify("ENERGY", "") // default: baseline 0.10

	// Most recent first: 1210 -> 1100 -> 1000 gives two +10% YoY ratios.
	history := []float64{1210, 1100, 1000}

	got := e.DeriveGrowthRates(history, profile)

	ratios := []float64{1210.0/1100.0 - 1, 1100.0/1000.0 - 1}
	mean := stat.Mean(ratios, nil)
	stddev := stat.StdDev(ratios, nil)
	wantOptimistic := math.Max(0.10, math.Min(mean+stddev, 0.15))

	assert.Equal(t, 0.10, got.Base)
	assert.InDelta(t, wantOptimistic, got.Optimistic, 1e-12)
	assert.Equal(t, 0.05, got.Pessimistic)
}

func TestDeriveGrowthRatesOptimisticCapped(t *testing.T) {
	e := NewEngine()
	profile := Classify("ENERGY", "")

	// Explosive history: mean+stddev far above 1.5x baseline.
	history := []float64{4000, 2000, 1000}

	got := e.DeriveGrowthRates(history, profile)

	// Capped at baseline * 1.5
	assert.InDelta(t, 0.15, got.Optimistic, 1e-12)
}

func TestDeriveGrowthRatesFallbacks(t *testing.T) {
	e := NewEngine()
	profile := Classify("ENERGY", "")

	want := GrowthRates{Base: 0.10, Optimistic: 0.15, Pessimistic: 0.05}

	tests := []struct {
		name    string
		history []float64
	}{
		{"no history", nil},
		{"single data point", []float64{1000}},
		{"no valid ratio pairs", []float64{1000, -500, 0}},
		{"sign change excluded", []float64{800, -100, 600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.DeriveGrowthRates(tt.history, profile)
			assert.InDelta(t, want.Base, got.Base, 1e-12)
			assert.InDelta(t, want.Optimistic, got.Optimistic, 1e-12)
			assert.InDelta(t, want.Pessimistic, got.Pessimistic, 1e-12)
		})
	}
}

func TestDeriveGrowthRatesOrdering(t *testing.T) {
	e := NewEngine()
	profile := Classify("CONSUMER", "")

	histories := [][]float64{
		nil,
		{500},
		{1210, 1100, 1000},
		{4000, 2000, 1000},
		{1000, 999, 1001, 998},
	}

	for _, history := range histories {
		got := e.DeriveGrowthRates(history, profile)

		assert.False(t, math.IsNaN(got.Base) || math.IsInf(got.Base, 0))
		assert.False(t, math.IsNaN(got.Optimistic) || math.IsInf(got.Optimistic, 0))
		assert.False(t, math.IsNaN(got.Pessimistic) || math.IsInf(got.Pessimistic, 0))

		assert.GreaterOrEqual(t, got.Optimistic, got.Base)
		assert.GreaterOrEqual(t, got.Base, got.Pessimistic)
	}
}

func TestYearOverYearRatios(t *testing.T) {
	tests := []struct {
		name    string
		history []float64
		want    int
	}{
		{"three positives", []float64{1200, 1100, 1000}, 2},
		{"negative middle drops both pairs", []float64{1200, -100, 1000}, 0},
		{"zero excluded", []float64{1200, 0, 1000}, 0},
		{"leading negative", []float64{-50, 1100, 1000}, 1},
		{"too short", []float64{1000}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, yearOverYearRatios(tt.history), tt.want)
		})
	}
}
