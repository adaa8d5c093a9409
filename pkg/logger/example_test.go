package logger_test

import (
	"errors"

	"github.com/doktorkwiecien79/portfolio/pkg/config"
	"github.com/doktorkwiecien79/portfolio/pkg/logger"
)

func Example() {
	log := logger.New(&config.Config{Env: "development", LogLevel: "info", LogFormat: "console"})

	log.Debug("hidden at info level")
	log.Infof("Loaded %d price sources", 3)
}

// Example_component shows the component + fields pattern used by the loaders
func Example_component() {
	log := logger.New(&config.Config{Env: "production", LogLevel: "info", LogFormat: "json"}).
		Component("prices")

	log.WithFields(logger.Fields{
		"source": "AAPL.csv",
		"points": 252,
	}).Info("Price series loaded")

	log.WithError(errors.New("no such file")).Warn("Price source skipped")
}
