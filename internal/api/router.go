package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/doktorkwiecien79/portfolio/internal/api/handlers"
	"github.com/doktorkwiecien79/portfolio/pkg/config"
	"github.com/doktorkwiecien79/portfolio/pkg/logger"
)

const serviceName = "portfolio-api"

type route struct {
	method  string
	path    string
	handler http.HandlerFunc
}

// NewRouter mounts /health and the /api portfolio endpoints.
// Only /api is rate limited; API_RATE_LIMIT=0 turns the limiter off.
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h *handlers.PortfolioHandler, cfg *config.Config, log *logger.Logger) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", healthCheckHandler(time.Now())).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	for _, rt := range []route{
		{http.MethodGet, "/returns", h.GetReturns},
		{http.MethodGet, "/assets", h.GetAssets},
		{http.MethodPost, "/statistics", h.PostStatistics},
	} {
		api.HandleFunc(rt.path, rt.handler).Methods(rt.method)
	}
	if cfg.RateLimit > 0 {
		limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
		api.Use(rateLimitMiddleware(limiter, log))
	}

	r.Use(loggingMiddleware(log), recoveryMiddleware(log))
	return r
}

func healthCheckHandler(started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": serviceName,
			"uptime":  time.Since(started).Round(time.Second).String(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
