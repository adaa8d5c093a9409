package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
)

// parseWeights turns repeated SYMBOL=WEIGHT flags into a WeightVector
func parseWeights(pairs []string) (contracts.WeightVector, error) {
	weights := make(contracts.WeightVector, len(pairs))
	for _, pair := range pairs {
		symbol, raw, ok := strings.Cut(pair, "=")
		symbol = strings.TrimSpace(symbol)
		if !ok || symbol == "" {
			return nil, fmt.Errorf("weight %q: expected SYMBOL=WEIGHT", pair)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("weight %q: %w", pair, err)
		}

		s := contracts.AssetSymbol(symbol)
		if _, dup := weights[s]; dup {
			return nil, fmt.Errorf("weight for %s given twice", symbol)
		}
		weights[s] = value
	}
	return weights, nil
}

// equalWeights assigns 1/n to every symbol
func equalWeights(symbols []contracts.AssetSymbol) contracts.WeightVector {
	weights := make(contracts.WeightVector, len(symbols))
	for _, s := range symbols {
		weights[s] = 1 / float64(len(symbols))
	}
	return weights
}
