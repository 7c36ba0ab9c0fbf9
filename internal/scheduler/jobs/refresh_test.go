package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcf-analyzer/internal/marketdata"
	"dcf-analyzer/pkg/logger"
)

// flakyProvider fails for tickers listed in bad.
type flakyProvider struct {
	bad   map[string]bool
	calls []string
}

func (p *flakyProvider) Name() string { return "flaky" }

func (p *flakyProvider) Overview(_ context.Context, ticker string) (marketdata.Record, error) {
	p.calls = append(p.calls, strings.ToUpper(ticker))
	if p.bad[strings.ToUpper(ticker)] {
		return nil, errors.New("upstream error")
	}
	return marketdata.Record{"Symbol": strings.ToUpper(ticker)}, nil
}

func (p *flakyProvider) Financials(_ context.Context, ticker string) (marketdata.FinancialStatements, error) {
	if p.bad[strings.ToUpper(ticker)] {
		return marketdata.FinancialStatements{}, errors.New("upstream error")
	}
	return marketdata.FinancialStatements{
		CashFlow: []marketdata.Record{{"operatingCashflow": 1.0, "capitalExpenditures": 0.0}},
	}, nil
}

func newRefreshJob(provider marketdata.Provider, tickers ...string) *RefreshJob {
	service := marketdata.NewService(provider, nil, logger.Nop())
	return NewRefreshJob(service, tickers, "@daily", logger.Nop())
}

func TestRefreshJobMetadata(t *testing.T) {
	job := newRefreshJob(&flakyProvider{}, "NVDA")
	assert.Equal(t, "cache_refresh", job.Name())
	assert.Equal(t, "@daily", job.Schedule())
}

func TestRefreshJobRefreshesAllTickers(t *testing.T) {
	provider := &flakyProvider{}
	job := newRefreshJob(provider, "NVDA", "AAPL", "MSFT")

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []string{"NVDA", "AAPL", "MSFT"}, provider.calls)
}

func TestRefreshJobToleratesPartialFailure(t *testing.T) {
	provider := &flakyProvider{bad: map[string]bool{"AAPL": true}}
	job := newRefreshJob(provider, "NVDA", "AAPL", "MSFT")

	assert.NoError(t, job.Run(context.Background()), "one failing ticker must not fail the job")
	assert.Equal(t, []string{"NVDA", "AAPL", "MSFT"}, provider.calls, "remaining tickers still refreshed")
}

func TestRefreshJobFailsWhenAllFail(t *testing.T) {
	provider := &flakyProvider{bad: map[string]bool{"NVDA": true, "AAPL": true}}
	job := newRefreshJob(provider, "NVDA", "AAPL")

	assert.Error(t, job.Run(context.Background()))
}
