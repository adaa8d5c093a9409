package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
	"github.com/doktorkwiecien79/portfolio/internal/portfolio"
	"github.com/doktorkwiecien79/portfolio/pkg/logger"
)

// PortfolioHandler serves returns and statistics for one loaded portfolio
// ⭐ SSOT: 포트폴리오 API 핸들러는 이 구조체에서만
type PortfolioHandler struct {
	sim          *portfolio.Simulator
	riskFreeRate float64
	logger       *logger.Logger
}

// NewPortfolioHandler creates a new portfolio handler.
// riskFreeRate is used when a request does not carry its own.
func NewPortfolioHandler(sim *portfolio.Simulator, riskFreeRate float64, log *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		sim:          sim,
		riskFreeRate: riskFreeRate,
		logger:       log,
	}
}

// ReturnRow is one date of the return table
type ReturnRow struct {
	Date    string             `json:"date"`
	Returns map[string]float64 `json:"returns"`
}

// ReturnsResponse is the return table in column order
type ReturnsResponse struct {
	Symbols []contracts.AssetSymbol `json:"symbols"`
	Rows    []ReturnRow             `json:"rows"`
}

// GetReturns returns the daily return table
// GET /api/returns
func (h *PortfolioHandler) GetReturns(w http.ResponseWriter, r *http.Request) {
	returns, err := h.sim.Returns()
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute returns")
		respondError(w, statusFor(err), err.Error())
		return
	}

	symbols := returns.Symbols()
	rows := make([]ReturnRow, returns.Rows())
	for i := range rows {
		values := make(map[string]float64, len(symbols))
		for j, s := range symbols {
			values[string(s)] = returns.At(i, j)
		}
		rows[i] = ReturnRow{
			Date:    returns.Date(i).Format("2006-01-02"),
			Returns: values,
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": ReturnsResponse{
			Symbols: symbols,
			Rows:    rows,
		},
	})
}

// GetAssets returns per-asset mean return and standard deviation
// GET /api/assets
func (h *PortfolioHandler) GetAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.sim.AssetStatistics()
	if err != nil {
		h.logger.WithError(err).Warn("Failed to compute asset statistics")
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    assets,
	})
}

// StatisticsRequest is the body of POST /api/statistics
type StatisticsRequest struct {
	Weights      map[string]float64 `json:"weights"`
	RiskFreeRate *float64           `json:"risk_free_rate,omitempty"` // optional, server default otherwise
	Confidence   float64            `json:"confidence,omitempty"`     // optional, adds VaR/CVaR when set
}

// PostStatistics computes portfolio statistics for the posted weights
// POST /api/statistics
func (h *PortfolioHandler) PostStatistics(w http.ResponseWriter, r *http.Request) {
	var req StatisticsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Weights) == 0 {
		respondError(w, http.StatusBadRequest, "weights are required")
		return
	}

	weights := make(contracts.WeightVector, len(req.Weights))
	for s, v := range req.Weights {
		weights[contracts.AssetSymbol(s)] = v
	}

	rf := h.riskFreeRate
	if req.RiskFreeRate != nil {
		rf = *req.RiskFreeRate
	}

	stats, err := h.sim.Statistics(weights, rf)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.WithError(err).Error("Failed to compute statistics")
		}
		respondError(w, status, err.Error())
		return
	}

	response := map[string]interface{}{
		"success":        true,
		"data":           stats,
		"risk_free_rate": rf,
	}

	if req.Confidence != 0 {
		report, err := h.sim.Risk(weights, req.Confidence)
		if err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				status = http.StatusBadRequest
			}
			respondError(w, status, err.Error())
			return
		}
		response["risk"] = report
	}

	respondJSON(w, http.StatusOK, response)
}
