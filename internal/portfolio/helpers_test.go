package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

// series builds a PriceSeries from closes on consecutive January days starting at the 2nd
func series(symbol string, closes ...float64) contracts.PriceSeries {
	points := make([]contracts.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = contracts.PricePoint{Date: day(2 + i), Close: c}
	}
	return contracts.PriceSeries{Symbol: contracts.AssetSymbol(symbol), Source: symbol + ".csv", Points: points}
}

func mustAlign(t *testing.T, s ...contracts.PriceSeries) *contracts.PriceTable {
	t.Helper()
	table, err := Align(s)
	require.NoError(t, err)
	return table
}

func mustReturns(t *testing.T, s ...contracts.PriceSeries) *contracts.ReturnTable {
	t.Helper()
	returns, err := ComputeReturns(mustAlign(t, s...))
	require.NoError(t, err)
	return returns
}
