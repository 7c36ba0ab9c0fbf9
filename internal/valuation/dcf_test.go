package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	flows := Project(1000, 0.10, 5)

	require.Len(t, flows, 5)
	assert.InDelta(t, 1100, flows[0], 1e-9)                  // fcf*(1+g)
	assert.InDelta(t, 1000*math.Pow(1.10, 5), flows[4], 1e-9) // fcf*(1+g)^5
}

func TestProjectZeroGrowth(t *testing.T) {
	flows := Project(500, 0, 5)

	require.Len(t, flows, 5)
	for _, cf := range flows {
		assert.Equal(t, 500.0, cf)
	}
}

func TestPresentValue(t *testing.T) {
	// Manual sum: 100/1.1 + 100/1.21 + 100/1.331 = 248.6852...
	pv := PresentValue([]float64{100, 100, 100}, 0.10)
	assert.InDelta(t, 248.69, pv, 0.01)
}

func TestPresentValueEmpty(t *testing.T) {
	assert.Equal(t, 0.0, PresentValue(nil, 0.10))
}

func TestTerminalGrowthCap(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name   string
		growth float64
		want   float64
	}{
		{"low growth uses factor", 0.05, 0.015}, // 0.05*0.3
		{"high growth hits ceiling", 0.25, 0.02},
		{"exactly at ceiling", 0.02 / 0.3, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, e.TerminalGrowth(tt.growth), 1e-12)
		})
	}
}

func TestTerminalValue(t *testing.T) {
	e := NewEngine()

	// growth 0.25 -> terminal growth capped at 0.02
	tv, err := e.TerminalValue(1000, 0.25, 0.10)
	require.NoError(t, err)

	want := 1000 * 1.02 / (0.10 - 0.02)
	assert.InDelta(t, want, tv, 1e-9)
}

func TestTerminalValueUndefined(t *testing.T) {
	e := NewEngine()

	// wacc equal to the capped terminal growth: denominator is zero
	_, err := e.TerminalValue(1000, 0.25, 0.02)
	assert.ErrorIs(t, err, ErrTerminalValueUndefined)

	// wacc below terminal growth
	_, err = e.TerminalValue(1000, 0.25, 0.01)
	assert.ErrorIs(t, err, ErrTerminalValueUndefined)
}
