package risk

// VaRConvention VaR 부호 규약
// ⭐ SSOT: Loss를 양수로 표현 (VaR=0.05 → 5% 손실 가능)
const VaRConvention = "loss_positive"

// Method names how a VaRResult was estimated
type Method string

const (
	MethodHistorical Method = "historical" // empirical quantile of observed returns
	MethodParametric Method = "parametric" // normal distribution with sample mean/std
)

// VaRResult VaR 계산 결과
// ⭐ SSOT: VaR/CVaR는 손실을 양수로 표현
// - VaR=0.05 → 95% 신뢰수준에서 하루 최대 5% 손실 가능
// - CVaR=0.07 → 5% tail에서 평균 7% 손실 예상
type VaRResult struct {
	Method       Method  `json:"method"`
	Confidence   float64 `json:"confidence"`   // 신뢰수준 (예: 0.95, 0.99)
	VaR          float64 `json:"var"`          // Value at Risk (손실, 양수)
	CVaR         float64 `json:"cvar"`         // Conditional VaR (Expected Shortfall, 양수)
	Observations int     `json:"observations"` // number of daily returns used
}

// Report pairs both estimates for one portfolio return series
type Report struct {
	Historical VaRResult `json:"historical"`
	Parametric VaRResult `json:"parametric"`
}
