package prices

import (
	"context"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
	"github.com/doktorkwiecien79/portfolio/pkg/logger"
	"github.com/doktorkwiecien79/portfolio/pkg/redis"
)

// CachedLoader caches raw loaded series in Redis in front of another loader.
// Only source data is cached; returns and statistics are always recomputed.
type CachedLoader struct {
	next   contracts.PriceLoader
	cache  *redis.Cache
	kind   string
	logger *logger.Logger
}

// NewCachedLoader wraps next; kind namespaces the keys (csv, postgres, sqlite)
func NewCachedLoader(next contracts.PriceLoader, cache *redis.Cache, kind string, log *logger.Logger) *CachedLoader {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedLoader{
		next:   next,
		cache:  cache,
		kind:   kind,
		logger: log.Component("price_cache"),
	}
}

// Load serves from cache when possible. Cache failures are logged, never returned.
func (l *CachedLoader) Load(ctx context.Context, source string) (contracts.PriceSeries, error) {
	key := redis.SeriesKey(l.kind, source)

	var cached contracts.PriceSeries
	found, err := l.cache.Fetch(ctx, key, &cached)
	if err != nil {
		l.logger.WithError(err).WithField("source", source).Warn("Price cache read failed")
	} else if found && len(cached.Points) > 0 {
		l.logger.WithField("source", source).Debug("Price cache hit")
		return cached, nil
	}

	series, err := l.next.Load(ctx, source)
	if err != nil {
		return contracts.PriceSeries{}, err
	}

	if err := l.cache.Put(ctx, key, series); err != nil {
		l.logger.WithError(err).WithField("source", source).Warn("Price cache write failed")
	}

	return series, nil
}
