package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/doktorkwiecien79/portfolio/pkg/logger"
)

// statusRecorder remembers the status code a handler wrote
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs one line per request; 5xx at warn, the rest at debug
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			entry := log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start),
			})
			if rec.status >= http.StatusInternalServerError {
				entry.Warn("HTTP request failed")
				return
			}
			entry.Debug("HTTP request")
		})
	}
}

// recoveryMiddleware turns a handler panic into a 500 JSON error
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					log.WithField("panic", p).WithField("path", r.URL.Path).Error("Panic recovered")
					writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitMiddleware shares one token bucket across every request it wraps
func rateLimitMiddleware(limiter *rate.Limiter, log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := limiter.Reserve()
			if delay := res.Delay(); delay > 0 {
				res.Cancel()
				log.WithField("path", r.URL.Path).Warn("Rate limit exceeded")

				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(delay)))
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

const maxRetryAfter = time.Hour

// retryAfterSeconds rounds delay up to whole seconds within [1s, 1h]
func retryAfterSeconds(delay time.Duration) int {
	switch {
	case delay <= time.Second:
		return 1
	case delay >= maxRetryAfter:
		return int(maxRetryAfter / time.Second)
	}
	return int((delay + time.Second - 1) / time.Second)
}
