package contracts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightVector_Sum(t *testing.T) {
	tests := []struct {
		name    string
		weights WeightVector
		want    float64
	}{
		{"empty", WeightVector{}, 0},
		{"single", WeightVector{"A": 1.0}, 1.0},
		{"balanced", WeightVector{"A": 0.5, "B": 0.3, "C": 0.2}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.weights.Sum(), 1e-12)
		})
	}
}

func TestWeightVector_SymbolsSorted(t *testing.T) {
	w := WeightVector{"MSFT": 0.2, "AAPL": 0.5, "GOOG": 0.3}
	assert.Equal(t, []AssetSymbol{"AAPL", "GOOG", "MSFT"}, w.Symbols())
}

func TestStatistics_AsMap(t *testing.T) {
	s := Statistics{ExpectedReturn: 0.01, Volatility: 0.02, SharpeRatio: 0.5}
	m := s.AsMap()

	assert.Len(t, m, 3)
	assert.Equal(t, 0.01, m[LabelExpectedReturn])
	assert.Equal(t, 0.02, m[LabelVolatility])
	assert.Equal(t, 0.5, m[LabelSharpeRatio])
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"source not found", &SourceNotFoundError{Source: "AAPL.csv"}, ErrSourceNotFound},
		{"data format", &DataFormatError{Source: "AAPL.csv", Line: 3, Reason: "bad close"}, ErrDataFormat},
		{"duplicate symbol", &DuplicateSymbolError{Symbol: "AAPL"}, ErrDuplicateSymbol},
		{"missing weight", &MissingWeightError{Symbol: "B"}, ErrMissingWeight},
		{"invalid weights", &InvalidWeightsError{Sum: 1.2, Tolerance: 1e-6}, ErrInvalidWeights},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := errors.Join(errors.New("context"), tt.err)
			assert.ErrorIs(t, wrapped, tt.target)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestDataFormatError_Message(t *testing.T) {
	err := &DataFormatError{Source: "AAPL.csv", Line: 7, Reason: "unparsable date \"x\""}
	assert.Equal(t, `invalid price data in "AAPL.csv" at line 7: unparsable date "x"`, err.Error())
}
