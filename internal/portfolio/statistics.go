package portfolio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
)

// ComputeStatistics computes expected return, volatility and Sharpe ratio for
// the weighted portfolio over the return table.
//
//	expected   = w·μ              (μ: per-asset mean return)
//	volatility = sqrt(wᵀ Σ w)     (Σ: sample covariance, divisor N-1)
//	sharpe     = (expected - rf) / volatility
//
// Weights are projected onto the table's column order first. Zero volatility
// is reported as contracts.ErrDivisionByZero instead of an infinite ratio.
func ComputeStatistics(returns *contracts.ReturnTable, weights contracts.WeightVector, riskFreeRate float64) (contracts.Statistics, error) {
	w, err := ProjectWeights(returns.Symbols(), weights)
	if err != nil {
		return contracts.Statistics{}, err
	}

	data, err := returnMatrix(returns)
	if err != nil {
		return contracts.Statistics{}, err
	}

	_, m := data.Dims()
	wv := mat.NewVecDense(m, w)

	mu := meanVector(data)
	sigma := mat.NewSymDense(m, nil)
	stat.CovarianceMatrix(sigma, data, nil)

	expected := mat.Dot(wv, mu)

	// Σ is positive semi-definite; clamp rounding noise below zero
	variance := mat.Inner(wv, sigma, wv)
	if variance < 0 {
		variance = 0
	}
	volatility := math.Sqrt(variance)

	if volatility == 0 {
		return contracts.Statistics{}, fmt.Errorf("%w: portfolio volatility is zero, Sharpe ratio undefined", contracts.ErrDivisionByZero)
	}

	return contracts.Statistics{
		ExpectedReturn: expected,
		Volatility:     volatility,
		SharpeRatio:    (expected - riskFreeRate) / volatility,
	}, nil
}

// ProjectWeights orders weights by symbols. Every symbol needs a weight and
// every weight needs a symbol; no default is ever substituted.
func ProjectWeights(symbols []contracts.AssetSymbol, weights contracts.WeightVector) ([]float64, error) {
	w := make([]float64, len(symbols))
	known := make(map[contracts.AssetSymbol]struct{}, len(symbols))

	for j, s := range symbols {
		v, ok := weights[s]
		if !ok {
			return nil, &contracts.MissingWeightError{Symbol: s}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &contracts.InvalidWeightsError{Reason: fmt.Sprintf("weight for %q is not a finite number", s)}
		}
		w[j] = v
		known[s] = struct{}{}
	}

	for _, s := range weights.Symbols() {
		if _, ok := known[s]; !ok {
			return nil, &contracts.MissingWeightError{Symbol: s, Unknown: true}
		}
	}

	return w, nil
}

// PortfolioReturns returns the weighted daily return series Σ w_j·r_tj, one value per row
func PortfolioReturns(returns *contracts.ReturnTable, weights contracts.WeightVector) ([]float64, error) {
	w, err := ProjectWeights(returns.Symbols(), weights)
	if err != nil {
		return nil, err
	}

	series := make([]float64, returns.Rows())
	for i := range series {
		series[i] = floats.Dot(w, returns.Row(i))
	}
	return series, nil
}

// ValidateWeights checks that weights sum to 1 within tolerance
func ValidateWeights(weights contracts.WeightVector, tolerance float64) error {
	sum := weights.Sum()
	if math.IsNaN(sum) || math.Abs(sum-1) > tolerance {
		return &contracts.InvalidWeightsError{Sum: sum, Tolerance: tolerance}
	}
	return nil
}

// ComputeAssetStatistics returns the mean and sample standard deviation of each column
func ComputeAssetStatistics(returns *contracts.ReturnTable) ([]contracts.AssetStatistics, error) {
	data, err := returnMatrix(returns)
	if err != nil {
		return nil, err
	}

	symbols := returns.Symbols()
	result := make([]contracts.AssetStatistics, len(symbols))
	for j, s := range symbols {
		mean, std := stat.MeanStdDev(mat.Col(nil, j, data), nil)
		result[j] = contracts.AssetStatistics{Symbol: s, MeanReturn: mean, StdDev: std}
	}
	return result, nil
}

// returnMatrix copies the table into an N×M dense matrix, N >= 2 rows
func returnMatrix(returns *contracts.ReturnTable) (*mat.Dense, error) {
	n, m := returns.Rows(), returns.Width()
	if m == 0 {
		return nil, fmt.Errorf("%w: return table has no assets", contracts.ErrInsufficientData)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: %d return rows, need at least 2 for a sample covariance", contracts.ErrInsufficientData, n)
	}

	data := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		data.SetRow(i, returns.Row(i))
	}
	return data, nil
}

func meanVector(data *mat.Dense) *mat.VecDense {
	_, m := data.Dims()
	mu := mat.NewVecDense(m, nil)
	for j := 0; j < m; j++ {
		mu.SetVec(j, stat.Mean(mat.Col(nil, j, data), nil))
	}
	return mu
}
