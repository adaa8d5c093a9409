package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doktorkwiecien79/portfolio/internal/prices"
	"github.com/doktorkwiecien79/portfolio/pkg/config"
	"github.com/doktorkwiecien79/portfolio/pkg/logger"
	"github.com/doktorkwiecien79/portfolio/pkg/redis"
	"github.com/doktorkwiecien79/portfolio/pkg/sqlite"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <csv>...",
	Short: "Copy CSV price files into the SQLite price store",
	Long: `Reads each CSV source and upserts its closes into SQLITE_PATH, keyed by
the symbol derived from the file name. Later runs with --source sqlite
load the same series by symbol. With REDIS_ENABLED=true the cached sqlite
series of every imported symbol is dropped.

Example:
  SQLITE_PATH=prices.db go run ./cmd/portfolio import data/AAPL.csv data/MSFT.csv
  go run ./cmd/portfolio --source sqlite stats AAPL MSFT`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

var sqlitePath string

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&sqlitePath, "db", "", "SQLite database file, overrides SQLITE_PATH")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if sqlitePath != "" {
		cfg.SQLite.Path = sqlitePath
	}
	if cfg.SQLite.Path == "" {
		return fmt.Errorf("SQLITE_PATH or --db is required")
	}
	log := logger.New(cfg).Component("import")

	db, err := sqlite.Open(ctx, cfg.SQLite.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer client.Close()
	cache := prices.NewSeriesCache(client, cfg)

	loader := prices.NewCSVLoader(cfg.Prices.DataDir, cfg.Prices.DateLayout)
	out := cmd.OutOrStdout()

	for i, source := range args {
		series, err := loader.Load(ctx, source)
		if err != nil {
			return fmt.Errorf("load %s: %w", source, err)
		}

		symbol := string(prices.SymbolFromSource(source))
		closes := make([]sqlite.Price, 0, series.Len())
		for _, p := range series.Points {
			closes = append(closes, sqlite.Price{Date: p.Date, Close: p.Close})
		}
		if err := db.InsertPrices(ctx, symbol, closes); err != nil {
			return err
		}

		// sqlite loads by symbol, so the symbol is the whole cache source
		if _, err := cache.Invalidate(ctx, redis.SeriesKey(config.SourceSQLite, symbol)); err != nil {
			log.WithError(err).WithField("symbol", symbol).Warn("Price cache invalidation failed")
		}

		log.WithFields(map[string]interface{}{
			"source": source,
			"symbol": symbol,
			"points": series.Len(),
		}).Info("Prices imported")
		fmt.Fprintf(out, "[Import] %s → %s: %d closes [%d/%d]\n", source, symbol, series.Len(), i+1, len(args))
	}

	printSuccess(out, fmt.Sprintf("Imported %d sources into %s", len(args), db.Path()))
	return nil
}
