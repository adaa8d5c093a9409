package commands

import (
	"context"
	"fmt"

	"github.com/doktorkwiecien79/portfolio/internal/portfolio"
	"github.com/doktorkwiecien79/portfolio/internal/prices"
	"github.com/doktorkwiecien79/portfolio/pkg/config"
	"github.com/doktorkwiecien79/portfolio/pkg/logger"
)

// loadConfig reads the environment and applies the global flag overrides,
// then any command-specific adjustments
func loadConfig(adjust ...func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if env != "" {
		cfg.Env = env
	}
	if priceSource != "" {
		cfg.Prices.Source = priceSource
	}
	if dataDir != "" {
		cfg.Prices.DataDir = dataDir
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	for _, fn := range adjust {
		fn(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// session bundles what every portfolio command needs
type session struct {
	cfg   *config.Config
	log   *logger.Logger
	store *prices.Store
	sim   *portfolio.Simulator
}

func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
}

// openSession loads config, opens the price store and builds the simulator over sources
func openSession(ctx context.Context, sources []string, adjust ...func(*config.Config)) (*session, error) {
	cfg, err := loadConfig(adjust...)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg)

	store, err := prices.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open price store: %w", err)
	}

	sim, err := portfolio.NewSimulator(ctx, store.Loader, sources, portfolio.OptionsFromConfig(cfg), log)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &session{cfg: cfg, log: log, store: store, sim: sim}, nil
}
