package config_test

import (
	"fmt"

	"github.com/doktorkwiecien79/portfolio/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	fmt.Printf("Price source: %s\n", cfg.Prices.Source)
	fmt.Printf("Risk-free rate: %.4f\n", cfg.Stats.RiskFreeRate)
	fmt.Printf("Validate weights: %v\n", cfg.Stats.ValidateWeights)
}
