package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		sector   string
		industry string
		want     string
	}{
		{"semiconductor industry", "TECHNOLOGY", "SEMICONDUCTORS & SEMICONDUCTOR EQUIPMENT", "semiconductor"},
		{"software industry", "TECHNOLOGY", "SOFTWARE - INFRASTRUCTURE", "software"},
		{"manufacturing sector", "MANUFACTURING", "AUTO PARTS", "manufacturing"},
		{"consumer sector", "CONSUMER CYCLICAL", "RESTAURANTS", "consumer"},
		{"no match", "ENERGY", "OIL & GAS", "default"},
		{"empty input", "", "", "default"},
		{"lower case input", "technology", "semiconductors", "semiconductor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.sector, tt.industry)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// Industry rules outrank sector rules: a semiconductor company in a
	// manufacturing sector is still classified as semiconductor.
	got := Classify("MANUFACTURING", "SEMICONDUCTORS")
	assert.Equal(t, "semiconductor", got.Name)

	// Semiconductor outranks software when both substrings appear.
	got = Classify("", "SEMICONDUCTOR SOFTWARE TOOLS")
	assert.Equal(t, "semiconductor", got.Name)
}

func TestClassifyDeterministic(t *testing.T) {
	first := Classify("CONSUMER DEFENSIVE", "BEVERAGES")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify("CONSUMER DEFENSIVE", "BEVERAGES"))
	}
}

func TestSemiconductorProfile(t *testing.T) {
	p := Classify("", "SEMICONDUCTOR")

	assert.Equal(t, 0.25, p.RevenueGrowth)
	assert.Equal(t, 0.25, p.FCFMargin)
	assert.Equal(t, 1.6, p.Beta)
	assert.True(t, p.HighGrowthOverride)
	assert.Equal(t, GrowthRates{Base: 0.25, Optimistic: 0.35, Pessimistic: 0.15}, p.OverrideRates)
}

func TestDefaultProfile(t *testing.T) {
	p := Classify("ENERGY", "PIPELINES")

	assert.Equal(t, 0.10, p.RevenueGrowth)
	assert.Equal(t, 0.15, p.FCFMargin)
	assert.Equal(t, 0.20, p.TargetDebtRatio)
	// No beta override: the overview-supplied beta applies.
	assert.Equal(t, 0.0, p.Beta)
	assert.False(t, p.HighGrowthOverride)
}
