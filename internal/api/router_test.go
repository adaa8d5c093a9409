package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doktorkwiecien79/portfolio/internal/api/handlers"
	"github.com/doktorkwiecien79/portfolio/internal/contracts"
	"github.com/doktorkwiecien79/portfolio/internal/portfolio"
	"github.com/doktorkwiecien79/portfolio/pkg/config"
	"github.com/doktorkwiecien79/portfolio/pkg/logger"
)

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()

	loader := contracts.PriceLoaderFunc(func(ctx context.Context, source string) (contracts.PriceSeries, error) {
		start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		closes := map[string][]float64{
			"A.csv": {100, 101, 102},
			"B.csv": {50, 49, 50},
		}[source]
		points := make([]contracts.PricePoint, len(closes))
		for i, c := range closes {
			points[i] = contracts.PricePoint{Date: start.AddDate(0, 0, i), Close: c}
		}
		return contracts.PriceSeries{Points: points}, nil
	})

	sim, err := portfolio.NewSimulator(context.Background(), loader, []string{"A.csv", "B.csv"}, portfolio.DefaultOptions(), nil)
	require.NoError(t, err)

	return NewRouter(handlers.NewPortfolioHandler(sim, 0, logger.Nop()), cfg, logger.Nop())
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t, &config.Config{})

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/returns", "", http.StatusOK},
		{http.MethodGet, "/api/assets", "", http.StatusOK},
		{http.MethodPost, "/api/statistics", `{"weights":{"A":0.5,"B":0.5}}`, http.StatusOK},
		{http.MethodGet, "/api/statistics", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body)))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRouter_RateLimit(t *testing.T) {
	router := newTestRouter(t, &config.Config{RateLimit: 0.001, RateBurst: 2})

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		router.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/api/returns", nil))
		codes = append(codes, last.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	// one token per 1000s
	assert.Equal(t, "1000", last.Header().Get("Retry-After"))

	// health is outside the limited subrouter
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		delay time.Duration
		want  int
	}{
		{0, 1},
		{300 * time.Millisecond, 1},
		{1500 * time.Millisecond, 2},
		{10 * time.Second, 10},
		{3 * time.Hour, 3600},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, retryAfterSeconds(tt.delay), tt.delay.String())
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := recoveryMiddleware(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestLoggingMiddleware_RecordsStatus(t *testing.T) {
	var seen int
	handler := loggingMiddleware(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		seen = w.(*statusRecorder).status
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, http.StatusTeapot, seen)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	cfg := &config.Config{Port: "0", Env: "development"}
	srv := New(cfg, logger.Nop(), http.NotFoundHandler())
	assert.Equal(t, ":0", srv.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
