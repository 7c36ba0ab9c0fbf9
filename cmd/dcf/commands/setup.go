package commands

import (
	"context"
	"fmt"
	"strings"

	"dcf-analyzer/internal/marketdata"
	"dcf-analyzer/internal/marketdata/alphavantage"
	"dcf-analyzer/internal/marketdata/cache"
	"dcf-analyzer/internal/marketdata/yahoo"
	"dcf-analyzer/pkg/config"
	"dcf-analyzer/pkg/database"
	"dcf-analyzer/pkg/logger"
)

// loadConfig loads configuration, applying global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

// newProvider creates the market data provider named by source.
func newProvider(cfg *config.Config, log *logger.Logger, source string) (marketdata.Provider, error) {
	switch strings.ToLower(source) {
	case "alphavantage", "alpha_vantage", "":
		return alphavantage.NewClient(cfg.AlphaVantage, log)
	case "yahoo":
		return yahoo.NewClient(cfg.Yahoo, log), nil
	default:
		return nil, fmt.Errorf("unknown data source %q (expected alphavantage or yahoo)", source)
	}
}

// newStore creates the cache backend: Postgres when DATABASE_URL is set,
// the local file cache otherwise, nil when caching is disabled. The
// returned closer releases the database pool, if any.
func newStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (cache.Store, func(), error) {
	noop := func() {}

	if !cfg.Cache.Enabled {
		return nil, noop, nil
	}

	if cfg.DatabaseURL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return nil, noop, fmt.Errorf("connect to database: %w", err)
		}

		store, err := cache.NewPostgresStore(ctx, db.Pool, cfg.Cache.TTL)
		if err != nil {
			db.Close()
			return nil, noop, fmt.Errorf("init postgres cache: %w", err)
		}

		log.Info("Using Postgres cache backend")
		return store, db.Close, nil
	}

	store, err := cache.NewFileStore(cfg.Cache.Dir, cfg.Cache.TTL)
	if err != nil {
		return nil, noop, fmt.Errorf("init file cache: %w", err)
	}

	log.WithField("dir", cfg.Cache.Dir).Debug("Using file cache backend")
	return store, noop, nil
}

// newDataService wires provider and cache into a market data service.
func newDataService(ctx context.Context, cfg *config.Config, log *logger.Logger, source string) (*marketdata.Service, func(), error) {
	provider, err := newProvider(cfg, log, source)
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := newStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	return marketdata.NewService(provider, store, log), closeStore, nil
}

// splitTickers parses a comma-separated ticker list.
func splitTickers(list string) []string {
	var tickers []string
	for _, ticker := range strings.Split(list, ",") {
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		if ticker != "" {
			tickers = append(tickers, ticker)
		}
	}
	return tickers
}
