package contracts

import "sort"

// WeightVector maps each asset to its portfolio weight.
// ⭐ 계약: 합계 1.0은 호출자 책임 (옵션으로만 검증)
type WeightVector map[AssetSymbol]float64

// Sum returns the total weight
func (w WeightVector) Sum() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// Symbols returns the weighted assets in sorted order
func (w WeightVector) Symbols() []AssetSymbol {
	symbols := make([]AssetSymbol, 0, len(w))
	for s := range w {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}

// Scale returns a new vector with every weight multiplied by k
func (w WeightVector) Scale(k float64) WeightVector {
	scaled := make(WeightVector, len(w))
	for s, v := range w {
		scaled[s] = v * k
	}
	return scaled
}

// Statistics is the portfolio summary for one weight vector
type Statistics struct {
	ExpectedReturn float64 `json:"expected_return"`
	Volatility     float64 `json:"volatility"`
	SharpeRatio    float64 `json:"sharpe_ratio"`
}

// Labels used by AsMap
const (
	LabelExpectedReturn = "expected_return"
	LabelVolatility     = "volatility"
	LabelSharpeRatio    = "sharpe_ratio"
)

// AsMap returns the statistics as a labeled record
func (s Statistics) AsMap() map[string]float64 {
	return map[string]float64{
		LabelExpectedReturn: s.ExpectedReturn,
		LabelVolatility:     s.Volatility,
		LabelSharpeRatio:    s.SharpeRatio,
	}
}

// AssetStatistics summarizes one asset's return column
type AssetStatistics struct {
	Symbol     AssetSymbol `json:"symbol"`
	MeanReturn float64     `json:"mean_return"`
	StdDev     float64     `json:"std_dev"`
}
