package jobs

import (
	"context"
	"fmt"

	"dcf-analyzer/internal/marketdata"
	"dcf-analyzer/pkg/logger"
)

// RefreshJob refetches market data for a watchlist of tickers so the
// cache stays warm and CLI/API requests never pay the fetch latency.
type RefreshJob struct {
	data     *marketdata.Service
	tickers  []string
	schedule string
	logger   *logger.Logger
}

// NewRefreshJob creates a refresh job for the given watchlist.
func NewRefreshJob(data *marketdata.Service, tickers []string, schedule string, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		data:     data,
		tickers:  tickers,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name.
func (j *RefreshJob) Name() string {
	return "cache_refresh"
}

// Schedule returns the cron schedule expression.
func (j *RefreshJob) Schedule() string {
	return j.schedule
}

// Run refetches every watchlist ticker. One failing ticker does not stop
// the rest; the job fails only when no ticker could be refreshed.
func (j *RefreshJob) Run(ctx context.Context) error {
	j.logger.WithField("tickers", len(j.tickers)).Info("Starting scheduled data refresh")

	var failed []string
	for _, ticker := range j.tickers {
		if err := j.data.Refresh(ctx, ticker); err != nil {
			j.logger.WithError(err).WithField("ticker", ticker).Warn("Refresh failed")
			failed = append(failed, ticker)
		}
	}

	if len(failed) == len(j.tickers) && len(j.tickers) > 0 {
		return fmt.Errorf("refresh failed for all %d tickers", len(j.tickers))
	}

	j.logger.WithFields(map[string]interface{}{
		"refreshed": len(j.tickers) - len(failed),
		"failed":    len(failed),
	}).Info("Scheduled data refresh completed")

	return nil
}
