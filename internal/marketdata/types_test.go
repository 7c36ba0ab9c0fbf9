package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordFloat(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		key  string
		want float64
	}{
		{"string number", Record{"operatingCashflow": "1000"}, "operatingCashflow", 1000},
		{"string with commas", Record{"operatingCashflow": "1,234,567"}, "operatingCashflow", 1234567},
		{"plain float", Record{"operatingCashflow": 1000.5}, "operatingCashflow", 1000.5},
		{"int", Record{"operatingCashflow": 42}, "operatingCashflow", 42},
		{"negative string", Record{"capitalExpenditures": "-200"}, "capitalExpenditures", -200},
		{"None placeholder", Record{"operatingCashflow": "None"}, "operatingCashflow", 0},
		{"dash placeholder", Record{"operatingCashflow": "-"}, "operatingCashflow", 0},
		{"missing key", Record{}, "operatingCashflow", 0},
		{"garbage", Record{"operatingCashflow": "abc"}, "operatingCashflow", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.Float(tt.key))
		})
	}
}

func TestRecordHas(t *testing.T) {
	rec := Record{"operatingCashflow": "None"}

	// Present but unparseable still counts as present
	assert.True(t, rec.Has("operatingCashflow"))
	assert.False(t, rec.Has("capitalExpenditures"))
}

func TestCurrentPrice(t *testing.T) {
	tests := []struct {
		name     string
		overview CompanyOverview
		want     float64
	}{
		{"market price preferred", CompanyOverview{MarketPrice: 100, Price: 90}, 100},
		{"price fallback", CompanyOverview{Price: 90}, 90},
		{"no price at all", CompanyOverview{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.overview.CurrentPrice())
		})
	}
}

func TestOverviewFromRecord(t *testing.T) {
	raw := Record{
		"Name":                 "NVIDIA Corporation",
		"Sector":               "TECHNOLOGY",
		"Industry":             "SEMICONDUCTORS",
		"Beta":                 "1.6",
		"MarketCapitalization": "10000000000",
		"SharesOutstanding":    "1000000000",
		"MarketPrice":          100.0,
	}

	o := OverviewFromRecord("NVDA", raw)

	assert.Equal(t, "NVDA", o.Ticker)
	assert.Equal(t, "NVIDIA Corporation", o.Name)
	assert.Equal(t, "SEMICONDUCTORS", o.Industry)
	assert.Equal(t, 1.6, o.Beta)
	assert.Equal(t, 1e10, o.MarketCapitalization)
	assert.Equal(t, 1e9, o.SharesOutstanding)
	assert.Equal(t, 100.0, o.MarketPrice)

	// Missing numerics default to zero
	assert.Equal(t, 0.0, o.TotalDebt)
	assert.Equal(t, 0.0, o.InterestExpense)
}
