package contracts

import "context"

// PriceLoader supplies the price series behind one source identifier.
// Implementations live in internal/prices (csv, postgres, sqlite, redis cache).
type PriceLoader interface {
	Load(ctx context.Context, source string) (PriceSeries, error)
}

// PriceLoaderFunc adapts a function to PriceLoader
type PriceLoaderFunc func(ctx context.Context, source string) (PriceSeries, error)

// Load calls f(ctx, source)
func (f PriceLoaderFunc) Load(ctx context.Context, source string) (PriceSeries, error) {
	return f(ctx, source)
}
