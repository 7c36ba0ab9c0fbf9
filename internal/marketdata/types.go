package marketdata

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one annual statement record: a flat mapping of line-item name
// to a numeric-convertible value. Alpha Vantage reports numbers as strings
// ("1234" or "None"), Yahoo as plain numbers; consumers go through Float()
// and never see the difference.
type Record map[string]interface{}

// Has reports whether the record carries the given line item at all.
// A present-but-unparseable value still counts as present.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Float returns the numeric value of a line item. Missing or
// non-convertible values are treated as zero.
func (r Record) Float(key string) float64 {
	v, ok := r[key]
	if !ok {
		return 0
	}
	f, _ := toFloat(v)
	return f
}

// String returns the string value of a line item, or "" when missing.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// toFloat coerces the value shapes upstream sources produce.
func toFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" || s == "None" || s == "-" || s == "N/A" {
			return 0, false
		}
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// CompanyOverview is a snapshot of static and near-static company metrics.
// Missing numeric source fields are zero, never an error.
type CompanyOverview struct {
	Ticker   string
	Name     string
	Sector   string
	Industry string

	Beta                 float64
	MarketCapitalization float64
	SharesOutstanding    float64

	TotalDebt       float64
	TotalCash       float64
	InterestExpense float64

	// MarketPrice comes from the quote endpoint; Price is the overview
	// fallback when no live quote was available.
	MarketPrice float64
	Price       float64
}

// CurrentPrice returns the market price, falling back to the overview
// price field. Zero means no usable price.
func (o CompanyOverview) CurrentPrice() float64 {
	if o.MarketPrice > 0 {
		return o.MarketPrice
	}
	return o.Price
}

// OverviewFromRecord builds a CompanyOverview from a raw key/value payload.
func OverviewFromRecord(ticker string, raw Record) CompanyOverview {
	return CompanyOverview{
		Ticker:               ticker,
		Name:                 raw.String("Name"),
		Sector:               raw.String("Sector"),
		Industry:             raw.String("Industry"),
		Beta:                 raw.Float("Beta"),
		MarketCapitalization: raw.Float("MarketCapitalization"),
		SharesOutstanding:    raw.Float("SharesOutstanding"),
		TotalDebt:            raw.Float("TotalDebt"),
		TotalCash:            raw.Float("TotalCash"),
		InterestExpense:      raw.Float("InterestExpense"),
		MarketPrice:          raw.Float("MarketPrice"),
		Price:                raw.Float("Price"),
	}
}

// FinancialStatements holds annual statement records, most recent year
// first. Only the cash-flow statements feed the valuation engine today;
// balance sheet and income statement are fetched and cached alongside so
// a cache hit serves future models too.
type FinancialStatements struct {
	CashFlow        []Record `json:"cash_flow"`
	BalanceSheet    []Record `json:"balance_sheet"`
	IncomeStatement []Record `json:"income_statement"`
}

// Bundle is the full input for one ticker-valuation run.
type Bundle struct {
	Overview   CompanyOverview
	Financials FinancialStatements
}
