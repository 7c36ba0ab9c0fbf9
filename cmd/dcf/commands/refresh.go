package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dcf-analyzer/internal/scheduler"
	"dcf-analyzer/internal/scheduler/jobs"
	"dcf-analyzer/pkg/logger"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh cached market data for a watchlist",
	Long: `Refetches market data for a watchlist of tickers, either once or
on a cron schedule so the cache stays warm.

The schedule uses 6-field cron expressions (with seconds) or the
@daily/@hourly shortcuts.

Example:
  go run ./cmd/dcf refresh --tickers NVDA,AAPL --once
  go run ./cmd/dcf refresh --tickers NVDA,AAPL --schedule "0 30 6 * * *"`,
	RunE: runRefresh,
}

var (
	refreshTickers  string
	refreshSource   string
	refreshSchedule string
	refreshOnce     bool
)

func init() {
	rootCmd.AddCommand(refreshCmd)

	refreshCmd.Flags().StringVar(&refreshTickers, "tickers", "", "comma-separated ticker list, e.g. NVDA,AAPL,META")
	refreshCmd.Flags().StringVar(&refreshSource, "source", "alphavantage", "data source (alphavantage|yahoo)")
	refreshCmd.Flags().StringVar(&refreshSchedule, "schedule", "0 30 6 * * *", "cron schedule for the refresh job")
	refreshCmd.Flags().BoolVar(&refreshOnce, "once", false, "run a single refresh and exit")
	refreshCmd.MarkFlagRequired("tickers")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	tickers := splitTickers(refreshTickers)
	if len(tickers) == 0 {
		return fmt.Errorf("no tickers given")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg)
	ctx := context.Background()

	data, closeStore, err := newDataService(ctx, cfg, log, refreshSource)
	if err != nil {
		return err
	}
	defer closeStore()

	job := jobs.NewRefreshJob(data, tickers, refreshSchedule, log)

	sched := scheduler.New(log)
	if refreshOnce {
		// A manual run reports its failure immediately instead of
		// retrying in the background.
		sched.WithRetry(0, 0)
	}
	if err := sched.AddJob(job); err != nil {
		return err
	}

	if refreshOnce {
		if err := sched.RunJob(job.Name()); err != nil {
			return err
		}

		history, err := sched.GetJobHistory(job.Name())
		if err != nil {
			return err
		}
		if result, ok := history.LastResult(); ok && !result.Success {
			return fmt.Errorf("refresh failed: %s", result.Error)
		}

		PrintSuccess(fmt.Sprintf("Refreshed %d tickers", len(tickers)))
		return nil
	}

	sched.Start()
	defer sched.Stop()

	fmt.Printf("Refresh scheduler running (%s), Ctrl+C to stop\n", refreshSchedule)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return nil
}
