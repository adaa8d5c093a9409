package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doktorkwiecien79/portfolio/internal/portfolio"
	"github.com/doktorkwiecien79/portfolio/pkg/config"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <source>...",
	Short: "Print expected return, volatility and Sharpe ratio",
	Long: `Computes portfolio statistics over the daily return table.

Every loaded asset needs a weight. Without --weight flags the portfolio
is equally weighted. Weights are not required to sum to 1 unless
--validate-weights (or WEIGHT_VALIDATION=true) is set.

Example:
  go run ./cmd/portfolio stats AAPL.csv MSFT.csv
  go run ./cmd/portfolio stats AAPL.csv MSFT.csv --weight AAPL=0.7 --weight MSFT=0.3 --risk-free 0.0001
  go run ./cmd/portfolio stats AAPL.csv MSFT.csv --var 0.99`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStats,
}

var (
	weightFlags     []string
	riskFreeRate    float64
	validateWeights bool
	varConfidence   float64
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringArrayVarP(&weightFlags, "weight", "w", nil, "asset weight as SYMBOL=WEIGHT (repeatable)")
	statsCmd.Flags().Float64Var(&riskFreeRate, "risk-free", 0, "daily risk-free rate, overrides RISK_FREE_RATE")
	statsCmd.Flags().BoolVar(&validateWeights, "validate-weights", false, "reject weights whose sum is not 1")
	statsCmd.Flags().Float64Var(&varConfidence, "var", 0, "also report one-day VaR/CVaR at this confidence (e.g. 0.95)")
}

func runStats(cmd *cobra.Command, args []string) error {
	weights, err := parseWeights(weightFlags)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), args, func(cfg *config.Config) {
		if validateWeights {
			cfg.Stats.ValidateWeights = true
		}
		if cmd.Flags().Changed("risk-free") {
			cfg.Stats.RiskFreeRate = riskFreeRate
		}
	})
	if err != nil {
		return err
	}
	defer s.Close()

	if len(weights) == 0 {
		weights = equalWeights(s.sim.Symbols())
	}

	rf := s.cfg.Stats.RiskFreeRate
	stats, err := s.sim.Statistics(weights, rf)
	if err != nil {
		return fmt.Errorf("compute statistics: %w", err)
	}

	out := cmd.OutOrStdout()
	printHeader(out, "Portfolio Statistics",
		[2]string{"Assets", strings.Join(symbolStrings(s.sim), ", ")},
		[2]string{"Weights", formatWeights(weights)},
	)
	printStatistics(out, stats, rf)

	if varConfidence > 0 {
		report, err := s.sim.Risk(weights, varConfidence)
		if err != nil {
			return fmt.Errorf("value at risk: %w", err)
		}
		fmt.Fprintln(out)
		printRiskReport(out, report)
	}
	return nil
}

func symbolStrings(sim *portfolio.Simulator) []string {
	symbols := sim.Symbols()
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = string(s)
	}
	return out
}
