package risk

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
)

// =============================================================================
// VaR (Value at Risk) Calculation
// =============================================================================

// HistoricalVaR 과거 수익률 기반 VaR 계산 (Historical Simulation)
// returns: 일별 수익률 (양수=이익, 음수=손실)
// confidence: 신뢰수준, 0 < confidence < 1
func HistoricalVaR(returns []float64, confidence float64) (VaRResult, error) {
	if err := checkInput(returns, confidence); err != nil {
		return VaRResult{}, err
	}

	sorted := append([]float64(nil), returns...)
	sort.Float64s(sorted)

	// (1-confidence) 백분위수: 손실이 앞에
	idx := int(math.Floor((1 - confidence) * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}

	// CVaR (Expected Shortfall): VaR 이하 tail 평균
	tail := stat.Mean(sorted[:idx+1], nil)

	return VaRResult{
		Method:       MethodHistorical,
		Confidence:   confidence,
		VaR:          lossOf(sorted[idx]),
		CVaR:         lossOf(tail),
		Observations: len(returns),
	}, nil
}

// ParametricVaR 정규분포 가정 VaR 계산, 평균과 표본 표준편차 사용
//
//	VaR  = zσ - μ
//	CVaR = σφ(z)/(1-c) - μ
func ParametricVaR(returns []float64, confidence float64) (VaRResult, error) {
	if err := checkInput(returns, confidence); err != nil {
		return VaRResult{}, err
	}
	if len(returns) < 2 {
		return VaRResult{}, fmt.Errorf("%w: parametric VaR needs at least 2 returns", contracts.ErrInsufficientData)
	}

	mean, std := stat.MeanStdDev(returns, nil)
	z := distuv.UnitNormal.Quantile(confidence)
	phi := distuv.UnitNormal.Prob(z)

	return VaRResult{
		Method:       MethodParametric,
		Confidence:   confidence,
		VaR:          math.Max(0, z*std-mean),
		CVaR:         math.Max(0, std*phi/(1-confidence)-mean),
		Observations: len(returns),
	}, nil
}

// Analyze runs both estimators over one return series
func Analyze(returns []float64, confidence float64) (Report, error) {
	hist, err := HistoricalVaR(returns, confidence)
	if err != nil {
		return Report{}, err
	}
	param, err := ParametricVaR(returns, confidence)
	if err != nil {
		return Report{}, err
	}
	return Report{Historical: hist, Parametric: param}, nil
}

func checkInput(returns []float64, confidence float64) error {
	if !(confidence > 0 && confidence < 1) {
		return fmt.Errorf("confidence must be in (0, 1), got %g", confidence)
	}
	if len(returns) == 0 {
		return fmt.Errorf("%w: no returns", contracts.ErrInsufficientData)
	}
	return nil
}

// lossOf 손실을 양수로, 이익은 0
func lossOf(r float64) float64 {
	if r < 0 {
		return -r
	}
	return 0
}
