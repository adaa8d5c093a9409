package commands

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/doktorkwiecien79/portfolio/internal/prices"
	"github.com/doktorkwiecien79/portfolio/pkg/config"
	"github.com/doktorkwiecien79/portfolio/pkg/logger"
)

// testDBCmd represents the test-db command
var testDBCmd = &cobra.Command{
	Use:   "test-db",
	Short: "Check the configured price store connections",
	Long: `Opens the price store selected by PRICE_SOURCE and reports on it.

- postgres: ping, health check and connection pool statistics
- sqlite:   database file and stored price rows
- csv:      data directory
- redis:    ping, when REDIS_ENABLED=true

Example:
  go run ./cmd/portfolio test-db
  go run ./cmd/portfolio --source postgres test-db`,
	RunE: runTestDB,
}

func init() {
	rootCmd.AddCommand(testDBCmd)
}

func runTestDB(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Price Store Connection Test ===")

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("❌ Failed to load config: %w", err)
	}
	fmt.Fprintf(out, "✅ Config loaded (ENV: %s, PRICE_SOURCE: %s)\n\n", cfg.Env, cfg.Prices.Source)

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	store, err := prices.Open(ctx, cfg, logger.New(cfg))
	if err != nil {
		return fmt.Errorf("❌ Failed to open price store: %w", err)
	}
	defer store.Close()

	switch cfg.Prices.Source {
	case config.SourcePostgres:
		fmt.Fprintf(out, "   Database URL: %s\n", maskPassword(cfg.Database.URL))
		health, err := store.Postgres.HealthCheck(ctx)
		if err != nil {
			return fmt.Errorf("❌ Health check failed: %w", err)
		}
		rows, symbols, err := store.Postgres.Coverage(ctx)
		if err != nil {
			return fmt.Errorf("❌ Failed to query daily_prices: %w", err)
		}
		printSuccess(out, "Health Check Results:")
		printKeyValue(out, "Response Time", health.Latency.String(), 20)
		printKeyValue(out, "Max Connections", fmt.Sprint(health.MaxConns), 20)
		printKeyValue(out, "Total Connections", fmt.Sprint(health.TotalConns), 20)
		printKeyValue(out, "Idle Connections", fmt.Sprint(health.IdleConns), 20)
		printKeyValue(out, "Price rows", fmt.Sprint(rows), 20)
		printKeyValue(out, "Symbols", fmt.Sprint(symbols), 20)

	case config.SourceSQLite:
		var rows, symbols int
		err := store.SQLite.DB.QueryRowContext(ctx,
			`SELECT COUNT(*), COUNT(DISTINCT symbol) FROM daily_prices`).Scan(&rows, &symbols)
		if err != nil {
			return fmt.Errorf("❌ Failed to query daily_prices: %w", err)
		}
		printSuccess(out, "SQLite store reachable")
		printKeyValue(out, "Path", store.SQLite.Path(), 20)
		printKeyValue(out, "Price rows", fmt.Sprint(rows), 20)
		printKeyValue(out, "Symbols", fmt.Sprint(symbols), 20)

	case config.SourceCSV:
		dir := cfg.Prices.DataDir
		if dir == "" {
			dir = "(working directory)"
		}
		printSuccess(out, "CSV loader ready")
		printKeyValue(out, "Data directory", dir, 20)
	}

	if store.Redis != nil {
		if err := store.Redis.Ping(ctx); err != nil {
			return fmt.Errorf("❌ Redis ping failed: %w", err)
		}
		printSuccess(out, "Redis reachable at "+store.Redis.Addr())
	}

	fmt.Fprintln(out, "\n✅ All checks passed!")
	return nil
}

// maskPassword hides the password in a database URL for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(unparseable URL)"
	}
	return u.Redacted()
}
