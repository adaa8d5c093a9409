package portfolio

import (
	"context"
	"fmt"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
	"github.com/doktorkwiecien79/portfolio/internal/prices"
	"github.com/doktorkwiecien79/portfolio/internal/risk"
	"github.com/doktorkwiecien79/portfolio/pkg/config"
	"github.com/doktorkwiecien79/portfolio/pkg/logger"
)

// Options tunes statistics requests
type Options struct {
	// ValidateWeights rejects weight vectors whose sum is not 1 within WeightTolerance.
	// Off by default: the sum is a caller contract.
	ValidateWeights bool
	WeightTolerance float64
}

// DefaultOptions returns the caller-contract defaults
func DefaultOptions() Options {
	return Options{WeightTolerance: 1e-6}
}

// OptionsFromConfig reads WEIGHT_VALIDATION / WEIGHT_TOLERANCE
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ValidateWeights: cfg.Stats.ValidateWeights,
		WeightTolerance: cfg.Stats.WeightTolerance,
	}
}

// Simulator holds the aligned price table for a fixed set of sources and derives
// returns and statistics from it on demand.
// ⭐ SSOT: 가격 테이블은 생성 시 한 번만 로드, 이후 불변 (동시 호출 안전)
type Simulator struct {
	prices  *contracts.PriceTable
	sources []string
	opts    Options
	logger  *logger.Logger
}

// NewSimulator loads every source through loader, derives each asset symbol from
// its source identifier and aligns the series. Any failure aborts construction.
func NewSimulator(ctx context.Context, loader contracts.PriceLoader, sources []string, opts Options, log *logger.Logger) (*Simulator, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("simulator")

	if len(sources) == 0 {
		return nil, &contracts.DataFormatError{Reason: "no price sources given"}
	}

	series := make([]contracts.PriceSeries, 0, len(sources))
	for _, source := range sources {
		s, err := loader.Load(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", source, err)
		}
		s.Symbol = prices.SymbolFromSource(source)
		s.Source = source
		series = append(series, s)

		log.WithFields(map[string]interface{}{
			"source": source,
			"symbol": s.Symbol,
			"points": s.Len(),
		}).Debug("Price series loaded")
	}

	table, err := Align(series)
	if err != nil {
		return nil, fmt.Errorf("align prices: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"assets": table.Width(),
		"dates":  table.Rows(),
	}).Info("Price table built")

	return &Simulator{
		prices:  table,
		sources: append([]string(nil), sources...),
		opts:    opts,
		logger:  log,
	}, nil
}

// Prices returns the aligned price table
func (s *Simulator) Prices() *contracts.PriceTable {
	return s.prices
}

// Symbols returns the asset columns in table order
func (s *Simulator) Symbols() []contracts.AssetSymbol {
	return s.prices.Symbols()
}

// Sources returns the source identifiers in load order
func (s *Simulator) Sources() []string {
	return append([]string(nil), s.sources...)
}

// Returns computes the daily return table. Recomputed on every call.
func (s *Simulator) Returns() (*contracts.ReturnTable, error) {
	returns, err := ComputeReturns(s.prices)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"price_rows":  s.prices.Rows(),
		"return_rows": returns.Rows(),
	}).Debug("Returns computed")

	return returns, nil
}

// Statistics computes expected return, volatility and Sharpe ratio for weights
func (s *Simulator) Statistics(weights contracts.WeightVector, riskFreeRate float64) (contracts.Statistics, error) {
	if s.opts.ValidateWeights {
		if err := ValidateWeights(weights, s.opts.WeightTolerance); err != nil {
			return contracts.Statistics{}, err
		}
	}

	returns, err := s.Returns()
	if err != nil {
		return contracts.Statistics{}, err
	}

	stats, err := ComputeStatistics(returns, weights, riskFreeRate)
	if err != nil {
		s.logger.WithError(err).Debug("Statistics rejected")
		return contracts.Statistics{}, err
	}

	s.logger.WithFields(map[string]interface{}{
		"expected_return": stats.ExpectedReturn,
		"volatility":      stats.Volatility,
		"sharpe_ratio":    stats.SharpeRatio,
	}).Debug("Statistics computed")
	return stats, nil
}

// AssetStatistics returns per-asset mean return and standard deviation
func (s *Simulator) AssetStatistics() ([]contracts.AssetStatistics, error) {
	returns, err := s.Returns()
	if err != nil {
		return nil, err
	}
	return ComputeAssetStatistics(returns)
}

// Risk estimates one-day VaR and CVaR of the weighted portfolio at confidence
func (s *Simulator) Risk(weights contracts.WeightVector, confidence float64) (risk.Report, error) {
	returns, err := s.Returns()
	if err != nil {
		return risk.Report{}, err
	}

	series, err := PortfolioReturns(returns, weights)
	if err != nil {
		return risk.Report{}, err
	}
	return risk.Analyze(series, confidence)
}
