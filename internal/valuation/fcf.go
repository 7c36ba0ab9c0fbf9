package valuation

import (
	"math"

	"dcf-analyzer/internal/marketdata"
)

// Statement line items consumed from annual cash-flow records.
const (
	fieldOperatingCashflow   = "operatingCashflow"
	fieldCapitalExpenditures = "capitalExpenditures"
)

// ExtractFCF computes historical free cash flow from annual cash-flow
// records, preserving the input order (most recent year first).
//
// FCF = operating cash flow - |capex|. Sources disagree on the sign of
// reported capital expenditures, so the absolute value is subtracted
// either way. Records without an operating-cash-flow field are skipped
// rather than zero-filled; an empty result means insufficient data, not
// an error.
func ExtractFCF(cashFlow []marketdata.Record) []float64 {
	fcf := make([]float64, 0, len(cashFlow))

	for _, record := range cashFlow {
		if !record.Has(fieldOperatingCashflow) {
			continue
		}

		operating := record.Float(fieldOperatingCashflow)
		capex := record.Float(fieldCapitalExpenditures)

		fcf = append(fcf, operating-math.Abs(capex))
	}

	return fcf
}
