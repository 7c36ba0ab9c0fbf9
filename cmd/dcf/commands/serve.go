package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dcf-analyzer/internal/api"
	"dcf-analyzer/internal/api/handlers"
	"dcf-analyzer/internal/marketdata"
	"dcf-analyzer/internal/valuation"
	"dcf-analyzer/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the valuation API server",
	Long: `Starts the REST API server.

Endpoints:
  GET    /health                      - Health check
  GET    /api/v1/valuation/{ticker}   - DCF valuation (all scenarios)
  GET    /api/v1/cache                - Cache listing
  DELETE /api/v1/cache[/{ticker}]     - Cache invalidation

Example:
  go run ./cmd/dcf serve
  go run ./cmd/dcf serve --port 8087 --source yahoo`,
	RunE: runServe,
}

var (
	servePort   string
	serveSource string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API server port (default from PORT env)")
	serveCmd.Flags().StringVar(&serveSource, "source", "alphavantage", "data source (alphavantage|yahoo)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	log := logger.New(cfg)
	ctx := context.Background()

	provider, err := newProvider(cfg, log, serveSource)
	if err != nil {
		return err
	}

	store, closeStore, err := newStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	data := marketdata.NewService(provider, store, log)

	router := api.NewRouter(
		handlers.NewValuationHandler(data, valuation.NewEngine(), log),
		handlers.NewCacheHandler(store, log),
		log,
	)

	server := api.New(cfg, log, router)

	// Run server in background, wait for termination signal.
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
