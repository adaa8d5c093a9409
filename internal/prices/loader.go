package prices

import (
	"context"
	"fmt"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
	"github.com/doktorkwiecien79/portfolio/pkg/config"
	"github.com/doktorkwiecien79/portfolio/pkg/database"
	"github.com/doktorkwiecien79/portfolio/pkg/logger"
	"github.com/doktorkwiecien79/portfolio/pkg/redis"
	"github.com/doktorkwiecien79/portfolio/pkg/sqlite"
)

// Store is the configured price loader together with the connections behind it
// ⭐ SSOT: PRICE_SOURCE → PriceLoader 선택은 여기서만
type Store struct {
	Loader contracts.PriceLoader
	Kind   string

	Postgres *database.DB
	SQLite   *sqlite.DB
	Redis    *redis.Client
}

// Open builds the loader selected by cfg.Prices.Source, wrapped in the Redis
// cache when REDIS_ENABLED is set.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	store := &Store{Kind: cfg.Prices.Source}

	switch cfg.Prices.Source {
	case config.SourceCSV:
		store.Loader = NewCSVLoader(cfg.Prices.DataDir, cfg.Prices.DateLayout)

	case config.SourcePostgres:
		db, err := database.New(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		store.Postgres = db
		store.Loader = NewPostgresLoader(db.Pool)

	case config.SourceSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		store.SQLite = db
		store.Loader = NewSQLiteLoader(db.DB)

	default:
		return nil, fmt.Errorf("unknown price source %q", cfg.Prices.Source)
	}

	if cfg.Redis.Enabled {
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		store.Redis = client
		store.Loader = NewCachedLoader(store.Loader, NewSeriesCache(client, cfg), store.Kind, log)
	}

	log.WithFields(map[string]interface{}{
		"source": store.Kind,
		"cached": store.Redis != nil,
	}).Debug("Price store opened")

	return store, nil
}

// Close releases every connection held by the store
func (s *Store) Close() {
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
	if s.Postgres != nil {
		s.Postgres.Close()
	}
	if s.SQLite != nil {
		_ = s.SQLite.Close()
	}
}

// CacheNamespace prefixes every price cache key in Redis
const CacheNamespace = "portfolio"

// NewSeriesCache is the price series cache shared by loaders and the import command
func NewSeriesCache(client *redis.Client, cfg *config.Config) *redis.Cache {
	return redis.NewCache(client, CacheNamespace, cfg.Prices.CacheTTL)
}
