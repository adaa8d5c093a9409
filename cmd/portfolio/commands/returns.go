package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// returnsCmd represents the returns command
var returnsCmd = &cobra.Command{
	Use:   "returns <source>...",
	Short: "Print the daily return table",
	Long: `Loads every source, aligns the prices on the union of their dates and
prints simple daily returns. Rows where any asset lacks the current or
previous close are left out.

Example:
  go run ./cmd/portfolio returns data/AAPL.csv data/MSFT.csv
  go run ./cmd/portfolio returns AAPL.csv MSFT.csv --assets`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReturns,
}

var showAssets bool

func init() {
	rootCmd.AddCommand(returnsCmd)

	returnsCmd.Flags().BoolVar(&showAssets, "assets", false, "also print per-asset mean and standard deviation")
}

func runReturns(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), args)
	if err != nil {
		return err
	}
	defer s.Close()

	returns, err := s.sim.Returns()
	if err != nil {
		return fmt.Errorf("compute returns: %w", err)
	}

	out := cmd.OutOrStdout()
	prices := s.sim.Prices()
	printHeader(out, "Daily Returns",
		[2]string{"Assets", strings.Join(symbolStrings(s.sim), ", ")},
		[2]string{"Prices", fmt.Sprintf("%d dates", prices.Rows())},
		[2]string{"Returns", fmt.Sprintf("%d dates", returns.Rows())},
	)
	printReturnTable(out, returns)

	if showAssets {
		fmt.Fprintln(out)
		assets, err := s.sim.AssetStatistics()
		if err != nil {
			return fmt.Errorf("asset statistics: %w", err)
		}
		printAssetTable(out, assets)
	}
	return nil
}
