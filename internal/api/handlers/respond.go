package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusFor maps pipeline errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, contracts.ErrMissingWeight), errors.Is(err, contracts.ErrInvalidWeights):
		return http.StatusBadRequest
	case errors.Is(err, contracts.ErrDivisionByZero), errors.Is(err, contracts.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
