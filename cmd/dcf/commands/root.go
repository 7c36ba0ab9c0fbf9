package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dcf",
	Short: "DCF-based stock valuation toolkit",
	Long: `DCF Analyzer

Values listed companies with a discounted cash flow model: historical
free cash flow, an industry-calibrated WACC, and base/optimistic/
pessimistic growth scenarios.

Usage:
  go run ./cmd/dcf [command]

Examples:
  go run ./cmd/dcf analyze --tickers NVDA,AAPL
  go run ./cmd/dcf analyze --tickers MSFT --scenario pessimistic --source yahoo
  go run ./cmd/dcf cache status
  go run ./cmd/dcf serve --port 8087
  go run ./cmd/dcf refresh --tickers NVDA,AAPL --once`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
