package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	env         string
	verbose     bool
	priceSource string
	dataDir     string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio returns and risk statistics",
	Long: `Portfolio CLI

Loads daily close prices for a set of assets, aligns them on a common
date index and reports daily returns, expected return, volatility and
Sharpe ratio for a weight vector.

Each source identifier names one asset; the asset symbol is the base
name up to the first '.', so data/AAPL.csv is AAPL.

Usage:
  go run ./cmd/portfolio [command]

Examples:
  go run ./cmd/portfolio returns data/AAPL.csv data/MSFT.csv
  go run ./cmd/portfolio stats AAPL.csv MSFT.csv --weight AAPL=0.6 --weight MSFT=0.4
  go run ./cmd/portfolio api AAPL.csv MSFT.csv --port 8080
  go run ./cmd/portfolio --source sqlite import data/*.csv
  go run ./cmd/portfolio test-db`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// SIGINT/SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment (development|staging|production), overrides ENV")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&priceSource, "source", "", "price source (csv|postgres|sqlite), overrides PRICE_SOURCE")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "base directory for CSV sources, overrides PRICE_DATA_DIR")
}
