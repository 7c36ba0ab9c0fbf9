package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dcf-analyzer/internal/marketdata"
	"dcf-analyzer/internal/valuation"
	"dcf-analyzer/pkg/logger"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run DCF valuation for one or more tickers",
	Long: `Runs the DCF valuation model for each ticker and prints a
per-scenario report: intrinsic value per share, current price, upside,
WACC and growth assumptions.

Data is fetched from the configured source and cached; pass --no-cache
to force fresh fetches.

Example:
  go run ./cmd/dcf analyze --tickers NVDA,AAPL
  go run ./cmd/dcf analyze --tickers MSFT --scenario pessimistic
  go run ./cmd/dcf analyze --tickers NVDA --source yahoo --no-cache`,
	RunE: runAnalyze,
}

var (
	analyzeTickers  string
	analyzeSource   string
	analyzeScenario string
	analyzeNoCache  bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeTickers, "tickers", "", "comma-separated ticker list, e.g. NVDA,AAPL,META")
	analyzeCmd.Flags().StringVar(&analyzeSource, "source", "alphavantage", "data source (alphavantage|yahoo)")
	analyzeCmd.Flags().StringVar(&analyzeScenario, "scenario", "all", "scenario to run (base|optimistic|pessimistic|all)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "ignore cached data and fetch fresh")
	analyzeCmd.MarkFlagRequired("tickers")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	tickers := splitTickers(analyzeTickers)
	if len(tickers) == 0 {
		return fmt.Errorf("no tickers given")
	}

	scenarios := valuation.Scenarios
	if analyzeScenario != "" && analyzeScenario != "all" {
		scenario, err := valuation.ParseScenario(analyzeScenario)
		if err != nil {
			return err
		}
		scenarios = []valuation.Scenario{scenario}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg)
	ctx := context.Background()

	data, closeStore, err := newDataService(ctx, cfg, log, analyzeSource)
	if err != nil {
		return err
	}
	defer closeStore()

	engine := valuation.NewEngine()

	// One ticker failing never aborts the run.
	for _, ticker := range tickers {
		analyzeTicker(ctx, data, engine, ticker, scenarios)
	}

	return nil
}

func analyzeTicker(ctx context.Context, data *marketdata.Service, engine *valuation.Engine, ticker string, scenarios []valuation.Scenario) {
	fmt.Println()
	PrintDoubleSeparator()
	fmt.Printf("  %s  (source: %s, cache: %v)\n", ticker, data.SourceName(), !analyzeNoCache)
	PrintDoubleSeparator()

	bundle, err := data.Bundle(ctx, ticker, analyzeNoCache)
	if err != nil {
		PrintError(fmt.Sprintf("Failed to fetch data for %s: %v", ticker, err))
		return
	}

	overview := bundle.Overview
	fmt.Println()
	fmt.Printf("Name:       %s\n", orNA(overview.Name))
	fmt.Printf("Sector:     %s\n", orNA(overview.Sector))
	fmt.Printf("Industry:   %s\n", orNA(overview.Industry))
	fmt.Printf("Market Cap: %s\n", FormatCurrency(overview.MarketCapitalization))

	for _, scenario := range scenarios {
		result, err := engine.Valuate(ticker, bundle, scenario)

		fmt.Println()
		fmt.Printf("%s scenario\n", scenario)
		PrintSeparator()

		if err != nil {
			PrintError(err.Error())
			continue
		}

		printScenarioResult(result)
	}
}

func printScenarioResult(result *valuation.ScenarioResult) {
	fmt.Printf("  Intrinsic value : %s\n", FormatCurrency(result.PricePerShare))
	if result.CurrentPrice > 0 {
		fmt.Printf("  Current price   : %s\n", FormatCurrency(result.CurrentPrice))
		fmt.Printf("  Upside          : %+.1f%%\n", result.Upside)
	} else {
		fmt.Printf("  Current price   : N/A\n")
	}
	fmt.Printf("  WACC            : %s\n", FormatPercent(result.WACC))
	fmt.Printf("  Growth rate     : %s\n", FormatPercent(result.GrowthRate))
	fmt.Printf("  Terminal growth : %s\n", FormatPercent(result.TerminalGrowth))
	fmt.Printf("  Enterprise value: %s\n", FormatCurrency(result.EnterpriseValue))
	fmt.Printf("  Equity value    : %s\n", FormatCurrency(result.EquityValue))

	for _, warning := range result.Warnings {
		PrintWarning(warning)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
