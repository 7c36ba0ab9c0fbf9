package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"dcf-analyzer/internal/marketdata"
	"dcf-analyzer/pkg/config"
	"dcf-analyzer/pkg/httputil"
	"dcf-analyzer/pkg/logger"
)

// ErrMissingAPIKey means no Alpha Vantage API key was configured.
var ErrMissingAPIKey = errors.New("alpha vantage API key not configured (set ALPHA_VANTAGE_API_KEY)")

// Client handles communication with the Alpha Vantage API.
// All Alpha Vantage calls go through this client so the free-tier rate
// budget (5 requests/minute) is enforced in one place.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiKey     string
	baseURL    string
}

// NewClient creates a new Alpha Vantage client.
func NewClient(cfg config.AlphaVantageConfig, log *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	httpClient := httputil.NewWithTimeout(log, 30*time.Second).
		WithRateLimit(cfg.RequestsPerMinute, time.Minute)

	return &Client{
		httpClient: httpClient,
		logger:     log,
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
	}, nil
}

// Name implements marketdata.Provider.
func (c *Client) Name() string {
	return "alpha_vantage"
}

// Overview fetches the company overview and merges the live quote price
// into it as MarketPrice. A quote failure degrades to the overview's own
// price fields instead of failing the whole fetch.
func (c *Client) Overview(ctx context.Context, ticker string) (marketdata.Record, error) {
	var overview marketdata.Record
	if err := c.query(ctx, "OVERVIEW", ticker, &overview); err != nil {
		return nil, err
	}

	if len(overview) == 0 {
		return nil, fmt.Errorf("empty overview for %s (unknown ticker?)", ticker)
	}

	if price, err := c.quote(ctx, ticker); err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Warn("Live quote unavailable")
	} else if price > 0 {
		overview["MarketPrice"] = price
	}

	return overview, nil
}

// Financials fetches the three annual statement reports, most recent
// year first (Alpha Vantage's native order).
func (c *Client) Financials(ctx context.Context, ticker string) (marketdata.FinancialStatements, error) {
	var statements marketdata.FinancialStatements

	reports := []struct {
		function string
		dest     *[]marketdata.Record
	}{
		{"CASH_FLOW", &statements.CashFlow},
		{"BALANCE_SHEET", &statements.BalanceSheet},
		{"INCOME_STATEMENT", &statements.IncomeStatement},
	}

	for _, report := range reports {
		var payload struct {
			AnnualReports []marketdata.Record `json:"annualReports"`
		}
		if err := c.query(ctx, report.function, ticker, &payload); err != nil {
			return marketdata.FinancialStatements{}, fmt.Errorf("%s: %w", report.function, err)
		}
		*report.dest = payload.AnnualReports
	}

	if len(statements.CashFlow) == 0 {
		return marketdata.FinancialStatements{}, fmt.Errorf("no annual cash flow reports for %s", ticker)
	}

	return statements, nil
}

// quote fetches the current price from the GLOBAL_QUOTE endpoint.
func (c *Client) quote(ctx context.Context, ticker string) (float64, error) {
	var payload struct {
		GlobalQuote marketdata.Record `json:"Global Quote"`
	}
	if err := c.query(ctx, "GLOBAL_QUOTE", ticker, &payload); err != nil {
		return 0, err
	}

	return payload.GlobalQuote.Float("05. price"), nil
}

// query performs one API call and decodes the JSON response, surfacing
// Alpha Vantage's in-band error and throttle messages as errors.
func (c *Client) query(ctx context.Context, function, ticker string, dest interface{}) error {
	params := url.Values{}
	params.Set("function", function)
	params.Set("symbol", ticker)
	params.Set("apikey", c.apiKey)

	fullURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	// Error responses share the envelope of success responses, so probe
	// for the error fields first.
	var probe struct {
		ErrorMessage string `json:"Error Message"`
		Note         string `json:"Note"`
		Information  string `json:"Information"`
	}

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return fmt.Errorf("alpha vantage request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("alpha vantage returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read alpha vantage response: %w", err)
	}

	if err := json.Unmarshal(body, &probe); err == nil {
		switch {
		case probe.ErrorMessage != "":
			return fmt.Errorf("alpha vantage error for %s %s: %s", function, ticker, probe.ErrorMessage)
		case probe.Note != "":
			return fmt.Errorf("alpha vantage throttled: %s", probe.Note)
		case probe.Information != "":
			return fmt.Errorf("alpha vantage rejected request: %s", probe.Information)
		}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode alpha vantage response: %w", err)
	}

	return nil
}
