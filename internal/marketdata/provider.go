package marketdata

import (
	"context"
	"fmt"

	"dcf-analyzer/internal/marketdata/cache"
	"dcf-analyzer/pkg/logger"
)

// Cache data types; also the file-name suffix of on-disk entries.
const (
	DataTypeOverview   = "overview"
	DataTypeFinancials = "financials"
)

// Provider fetches raw company data from one upstream source.
// Implementations own their timeout/retry/rate-limit policy.
type Provider interface {
	// Name identifies the source ("alpha_vantage", "yahoo").
	Name() string

	// Overview returns the raw company overview payload, including a
	// MarketPrice entry when a live quote was available.
	Overview(ctx context.Context, ticker string) (Record, error)

	// Financials returns annual statements, most recent year first.
	Financials(ctx context.Context, ticker string) (FinancialStatements, error)
}

// Service assembles valuation input bundles from a provider, consulting
// the cache first. A nil store disables caching entirely.
type Service struct {
	provider Provider
	store    cache.Store
	logger   *logger.Logger
}

// NewService creates a data service around a provider.
func NewService(provider Provider, store cache.Store, log *logger.Logger) *Service {
	return &Service{
		provider: provider,
		store:    store,
		logger:   log,
	}
}

// SourceName returns the underlying provider name.
func (s *Service) SourceName() string {
	return s.provider.Name()
}

// Bundle fetches (or loads from cache) everything one valuation run
// needs. skipCache forces a fresh fetch and refreshes the cache.
func (s *Service) Bundle(ctx context.Context, ticker string, skipCache bool) (Bundle, error) {
	overview, err := s.overview(ctx, ticker, skipCache)
	if err != nil {
		return Bundle{}, fmt.Errorf("fetch overview for %s: %w", ticker, err)
	}

	financials, err := s.financials(ctx, ticker, skipCache)
	if err != nil {
		return Bundle{}, fmt.Errorf("fetch financials for %s: %w", ticker, err)
	}

	return Bundle{
		Overview:   OverviewFromRecord(ticker, overview),
		Financials: financials,
	}, nil
}

// Refresh unconditionally refetches and recaches a ticker's data.
func (s *Service) Refresh(ctx context.Context, ticker string) error {
	_, err := s.Bundle(ctx, ticker, true)
	return err
}

func (s *Service) overview(ctx context.Context, ticker string, skipCache bool) (Record, error) {
	if s.store != nil && !skipCache {
		var cached Record
		found, err := s.store.Get(ctx, ticker, DataTypeOverview, &cached)
		if err != nil {
			s.logger.WithError(err).WithField("ticker", ticker).Warn("Cache read failed; fetching from source")
		} else if found {
			s.logger.WithField("ticker", ticker).Debug("Overview loaded from cache")
			return cached, nil
		}
	}

	overview, err := s.provider.Overview(ctx, ticker)
	if err != nil {
		return nil, err
	}

	s.cachePut(ctx, ticker, DataTypeOverview, overview)
	return overview, nil
}

func (s *Service) financials(ctx context.Context, ticker string, skipCache bool) (FinancialStatements, error) {
	if s.store != nil && !skipCache {
		var cached FinancialStatements
		found, err := s.store.Get(ctx, ticker, DataTypeFinancials, &cached)
		if err != nil {
			s.logger.WithError(err).WithField("ticker", ticker).Warn("Cache read failed; fetching from source")
		} else if found {
			s.logger.WithField("ticker", ticker).Debug("Financials loaded from cache")
			return cached, nil
		}
	}

	financials, err := s.provider.Financials(ctx, ticker)
	if err != nil {
		return FinancialStatements{}, err
	}

	s.cachePut(ctx, ticker, DataTypeFinancials, financials)
	return financials, nil
}

// cachePut stores fetched data; cache write failures are logged, never fatal.
func (s *Service) cachePut(ctx context.Context, ticker, dataType string, value interface{}) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(ctx, ticker, dataType, value); err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"ticker":    ticker,
			"data_type": dataType,
		}).Warn("Cache write failed")
	}
}
