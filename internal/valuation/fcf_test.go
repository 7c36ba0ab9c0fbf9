package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dcf-analyzer/internal/marketdata"
)

func TestExtractFCF(t *testing.T) {
	records := []marketdata.Record{
		{"operatingCashflow": "1000", "capitalExpenditures": "-200"},
		{"operatingCashflow": "900", "capitalExpenditures": "150"},
		{"operatingCashflow": "800"},
	}

	got := ExtractFCF(records)

	// Capex is subtracted as an absolute value regardless of reported sign.
	assert.Equal(t, []float64{800, 750, 800}, got)
}

func TestExtractFCFSkipsRecordsWithoutOperatingCashflow(t *testing.T) {
	records := []marketdata.Record{
		{"operatingCashflow": "1000", "capitalExpenditures": "-200"},
		{"capitalExpenditures": "-300"}, // no OCF: skipped, not zero-filled
		{"operatingCashflow": "600", "capitalExpenditures": "-100"},
	}

	got := ExtractFCF(records)

	assert.Equal(t, []float64{800, 500}, got)
	assert.LessOrEqual(t, len(got), len(records))
}

func TestExtractFCFEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractFCF(nil))
	assert.Empty(t, ExtractFCF([]marketdata.Record{}))
}

func TestExtractFCFAllRecordsUnusable(t *testing.T) {
	records := []marketdata.Record{
		{"capitalExpenditures": "-300"},
		{"netIncome": "500"},
	}

	// Empty result is "insufficient data", not an error.
	assert.Empty(t, ExtractFCF(records))
}

func TestExtractFCFPreservesOrder(t *testing.T) {
	records := []marketdata.Record{
		{"operatingCashflow": "300"},
		{"operatingCashflow": "200"},
		{"operatingCashflow": "100"},
	}

	assert.Equal(t, []float64{300, 200, 100}, ExtractFCF(records))
}
