package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dcf-analyzer/pkg/logger"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the fetched-data cache",
	Long: `Manages the market data cache.

Subcommands:
  status  - list cached entries and their freshness
  clear   - remove entries for given tickers, or everything

Example:
  go run ./cmd/dcf cache status
  go run ./cmd/dcf cache clear NVDA AAPL
  go run ./cmd/dcf cache clear`,
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List cached entries",
	RunE:  runCacheStatus,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [tickers...]",
	Short: "Remove cached entries (all when no tickers given)",
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg)
	ctx := context.Background()

	store, closeStore, err := newStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if store == nil {
		PrintWarning("Caching is disabled (CACHE_ENABLED=false)")
		return nil
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		return fmt.Errorf("list cache entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("Cache is empty")
		return nil
	}

	PrintDoubleSeparator()
	fmt.Printf("  %-8s %-12s %-20s %s\n", "TICKER", "TYPE", "FETCHED", "STATE")
	PrintSeparator()

	for _, entry := range entries {
		state := "fresh"
		if entry.Expired {
			state = "expired"
		}
		fmt.Printf("  %-8s %-12s %-20s %s\n",
			entry.Ticker, entry.DataType,
			entry.FetchedAt.Format(time.RFC3339), state)
	}

	PrintSeparator()
	fmt.Printf("  %d entries (TTL %s)\n", len(entries), cfg.Cache.TTL)

	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg)
	ctx := context.Background()

	store, closeStore, err := newStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if store == nil {
		PrintWarning("Caching is disabled (CACHE_ENABLED=false)")
		return nil
	}

	removed, err := store.Delete(ctx, args...)
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	PrintSuccess(fmt.Sprintf("Removed %d cache entries", removed))
	return nil
}
