package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"dcf-analyzer/internal/marketdata"
	"dcf-analyzer/pkg/config"
	"dcf-analyzer/pkg/httputil"
	"dcf-analyzer/pkg/logger"
)

// browserHeaders mimic a desktop browser. Yahoo rejects requests with a
// Go default User-Agent.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
}

// Client fetches company data from Yahoo Finance. Prices and annual cash
// flows come from the public JSON endpoints; sector, industry and key
// statistics are scraped from the quote pages because Yahoo ships no
// keyless API for them.
type Client struct {
	httpClient   *httputil.Client
	logger       *logger.Logger
	baseURL      string // HTML quote pages
	chartBaseURL string // JSON query endpoints
}

// NewClient creates a new Yahoo Finance client.
func NewClient(cfg config.YahooConfig, log *logger.Logger) *Client {
	return &Client{
		// Yahoo throttles aggressive scrapers, so pace page fetches.
		httpClient:   httputil.NewWithTimeout(log, 20*time.Second).WithRateLimit(30, time.Minute),
		logger:       log,
		baseURL:      cfg.BaseURL,
		chartBaseURL: cfg.ChartBaseURL,
	}
}

// Name implements marketdata.Provider.
func (c *Client) Name() string {
	return "yahoo"
}

// Overview implements marketdata.Provider. It assembles an overview
// record from the chart API (price), the profile page (sector,
// industry) and the key-statistics page (beta, market cap, shares,
// debt, cash). Partial failures degrade to a sparser record; only a
// missing price is fatal because nothing downstream works without it.
func (c *Client) Overview(ctx context.Context, ticker string) (marketdata.Record, error) {
	record := marketdata.Record{"Symbol": strings.ToUpper(ticker)}

	price, name, err := c.fetchQuote(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch quote for %s: %w", ticker, err)
	}
	record["MarketPrice"] = price
	if name != "" {
		record["Name"] = name
	}

	if err := c.scrapeProfile(ctx, ticker, record); err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Warn("Profile scrape failed")
	}

	if err := c.scrapeKeyStatistics(ctx, ticker, record); err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Warn("Key statistics scrape failed")
	}

	return record, nil
}

// Financials implements marketdata.Provider. Annual operating cash flow
// and capital expenditures come from the fundamentals-timeseries
// endpoint and are merged into cash flow records, most recent year
// first. Yahoo exposes no keyless balance sheet or income statement
// history, so those stay empty; the overview record carries debt and
// cash instead.
func (c *Client) Financials(ctx context.Context, ticker string) (marketdata.FinancialStatements, error) {
	series, err := c.fetchTimeseries(ctx, ticker, "annualOperatingCashFlow", "annualCapitalExpenditure")
	if err != nil {
		return marketdata.FinancialStatements{}, err
	}

	byDate := map[string]marketdata.Record{}
	for seriesType, points := range series {
		field, ok := map[string]string{
			"annualOperatingCashFlow":  "operatingCashflow",
			"annualCapitalExpenditure": "capitalExpenditures",
		}[seriesType]
		if !ok {
			continue
		}

		for _, point := range points {
			record, exists := byDate[point.AsOfDate]
			if !exists {
				record = marketdata.Record{"fiscalDateEnding": point.AsOfDate}
				byDate[point.AsOfDate] = record
			}
			record[field] = point.ReportedValue.Raw
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	var cashFlow []marketdata.Record
	for _, date := range dates {
		cashFlow = append(cashFlow, byDate[date])
	}

	if len(cashFlow) == 0 {
		return marketdata.FinancialStatements{}, fmt.Errorf("no annual cash flow data for %s", ticker)
	}

	return marketdata.FinancialStatements{CashFlow: cashFlow}, nil
}

// chartResponse covers the fields we use from /v8/finance/chart.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				LongName           string  `json:"longName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

func (c *Client) fetchQuote(ctx context.Context, ticker string) (float64, string, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s", c.chartBaseURL, strings.ToUpper(ticker))

	resp, err := c.httpClient.GetWithHeaders(ctx, url, browserHeaders)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return 0, "", fmt.Errorf("chart API returned status %d", resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, "", fmt.Errorf("decode chart response: %w", err)
	}

	if len(payload.Chart.Result) == 0 {
		return 0, "", fmt.Errorf("no chart data (unknown ticker?)")
	}

	meta := payload.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return 0, "", fmt.Errorf("no market price in chart data")
	}

	return meta.RegularMarketPrice, meta.LongName, nil
}

// scrapeProfile fills Sector and Industry from the quote profile page.
func (c *Client) scrapeProfile(ctx context.Context, ticker string, record marketdata.Record) error {
	url := fmt.Sprintf("%s/quote/%s/profile/", c.baseURL, strings.ToUpper(ticker))

	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return err
	}

	// Current markup labels sector/industry with data-test attributes;
	// older pages spell them out as "Sector: X" paragraphs.
	if sector := strings.TrimSpace(doc.Find("span[data-test='SECTOR'], a[data-test='SECTOR']").First().Text()); sector != "" {
		record["Sector"] = sector
	}
	if industry := strings.TrimSpace(doc.Find("span[data-test='INDUSTRY'], a[data-test='INDUSTRY']").First().Text()); industry != "" {
		record["Industry"] = industry
	}

	doc.Find("p, dt, dd, span").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if value, ok := labeledValue(text, "Sector:"); ok && !record.Has("Sector") {
			record["Sector"] = value
		}
		if value, ok := labeledValue(text, "Industry:"); ok && !record.Has("Industry") {
			record["Industry"] = value
		}
		return !(record.Has("Sector") && record.Has("Industry"))
	})

	if !record.Has("Sector") && !record.Has("Industry") {
		return fmt.Errorf("no sector or industry found on profile page")
	}

	return nil
}

// keyStatisticsFields maps table row labels to overview record fields.
var keyStatisticsFields = []struct {
	label string
	field string
}{
	{"beta", "Beta"},
	{"market cap", "MarketCapitalization"},
	{"shares outstanding", "SharesOutstanding"},
	{"total debt", "TotalDebt"},
	{"total cash", "TotalCash"},
}

// scrapeKeyStatistics fills beta, market cap, shares outstanding and
// balance sheet totals from the key-statistics page tables.
func (c *Client) scrapeKeyStatistics(ctx context.Context, ticker string, record marketdata.Record) error {
	url := fmt.Sprintf("%s/quote/%s/key-statistics/", c.baseURL, strings.ToUpper(ticker))

	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return err
	}

	found := 0
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		label := strings.ToLower(strings.TrimSpace(cells.First().Text()))
		value := strings.TrimSpace(cells.Last().Text())

		for _, fieldDef := range keyStatisticsFields {
			if !strings.Contains(label, fieldDef.label) || record.Has(fieldDef.field) {
				continue
			}
			if parsed, err := parseAbbreviatedNumber(value); err == nil {
				record[fieldDef.field] = parsed
				found++
			}
		}
	})

	if found == 0 {
		return fmt.Errorf("no statistics found on key-statistics page")
	}

	return nil
}

// timeseriesPoint is one annual observation in a fundamentals series.
type timeseriesPoint struct {
	AsOfDate      string `json:"asOfDate"`
	ReportedValue struct {
		Raw float64 `json:"raw"`
	} `json:"reportedValue"`
}

// fetchTimeseries queries the fundamentals-timeseries endpoint for the
// given series types over the last six years and groups the points by
// type.
func (c *Client) fetchTimeseries(ctx context.Context, ticker string, types ...string) (map[string][]timeseriesPoint, error) {
	now := time.Now()
	url := fmt.Sprintf(
		"%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?type=%s&period1=%d&period2=%d",
		c.chartBaseURL, strings.ToUpper(ticker), strings.Join(types, ","),
		now.AddDate(-6, 0, 0).Unix(), now.Unix(),
	)

	resp, err := c.httpClient.GetWithHeaders(ctx, url, browserHeaders)
	if err != nil {
		return nil, fmt.Errorf("fetch fundamentals timeseries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("timeseries API returned status %d", resp.StatusCode)
	}

	// Each result names its own series type in meta and keys the data
	// points under that type, so decode the results generically.
	var payload struct {
		Timeseries struct {
			Result []map[string]json.RawMessage `json:"result"`
			Error  interface{}                  `json:"error"`
		} `json:"timeseries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode timeseries response: %w", err)
	}

	series := map[string][]timeseriesPoint{}
	for _, result := range payload.Timeseries.Result {
		var meta struct {
			Type []string `json:"type"`
		}
		if raw, ok := result["meta"]; ok {
			if err := json.Unmarshal(raw, &meta); err != nil || len(meta.Type) == 0 {
				continue
			}
		}

		seriesType := meta.Type[0]
		raw, ok := result[seriesType]
		if !ok {
			continue
		}

		// Years with no filing come through as JSON nulls.
		var points []*timeseriesPoint
		if err := json.Unmarshal(raw, &points); err != nil {
			continue
		}
		for _, point := range points {
			if point != nil && point.AsOfDate != "" {
				series[seriesType] = append(series[seriesType], *point)
			}
		}
	}

	return series, nil
}

func (c *Client) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.httpClient.GetWithHeaders(ctx, url, browserHeaders)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	return doc, nil
}

// labeledValue extracts the value from "Label: value" text.
func labeledValue(text, label string) (string, bool) {
	if !strings.HasPrefix(text, label) {
		return "", false
	}
	value := strings.TrimSpace(strings.TrimPrefix(text, label))
	return value, value != ""
}

var abbreviatedNumberPattern = regexp.MustCompile(`^(-?[0-9][0-9,]*\.?[0-9]*)([KMBT]?)$`)

// parseAbbreviatedNumber parses Yahoo's display numbers such as
// "3.02T", "28.5B", "1,234.5" or "1.75".
func parseAbbreviatedNumber(value string) (float64, error) {
	cleaned := strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(value, "$", "")))
	if cleaned == "" || cleaned == "N/A" || cleaned == "--" {
		return 0, fmt.Errorf("no value")
	}

	matches := abbreviatedNumberPattern.FindStringSubmatch(cleaned)
	if matches == nil {
		return 0, fmt.Errorf("unrecognized number format %q", value)
	}

	base, err := strconv.ParseFloat(strings.ReplaceAll(matches[1], ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", value, err)
	}

	switch matches[2] {
	case "K":
		base *= 1e3
	case "M":
		base *= 1e6
	case "B":
		base *= 1e9
	case "T":
		base *= 1e12
	}

	return base, nil
}
