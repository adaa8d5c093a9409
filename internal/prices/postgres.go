package prices

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
)

// Querier is the subset of *pgxpool.Pool used by PostgresLoader
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresLoader reads closes from data.daily_prices.
// The source identifier is reduced to its symbol, so "AAPL" and "AAPL.csv" both query AAPL.
type PostgresLoader struct {
	pool Querier
}

// NewPostgresLoader creates a new Postgres price loader
func NewPostgresLoader(pool Querier) *PostgresLoader {
	return &PostgresLoader{pool: pool}
}

const postgresSeriesQuery = `
	SELECT trade_date, close_price::float8
	FROM data.daily_prices
	WHERE stock_code = $1
	ORDER BY trade_date ASC
`

// Load retrieves the full close history for the source's symbol
func (l *PostgresLoader) Load(ctx context.Context, source string) (contracts.PriceSeries, error) {
	symbol := SymbolFromSource(source)

	rows, err := l.pool.Query(ctx, postgresSeriesQuery, string(symbol))
	if err != nil {
		return contracts.PriceSeries{}, &contracts.SourceNotFoundError{
			Source: source,
			Err:    fmt.Errorf("query daily prices: %w", err),
		}
	}
	defer rows.Close()

	series := contracts.PriceSeries{Symbol: symbol, Source: source}
	for rows.Next() {
		var (
			date       time.Time
			closePrice *float64
		)
		if err := rows.Scan(&date, &closePrice); err != nil {
			return contracts.PriceSeries{}, &contracts.DataFormatError{Source: source, Reason: err.Error()}
		}
		if closePrice == nil {
			return contracts.PriceSeries{}, &contracts.DataFormatError{
				Source: source,
				Reason: fmt.Sprintf("null close price on %s", date.Format(DefaultDateLayout)),
			}
		}
		series.Points = append(series.Points, contracts.PricePoint{
			Date:  contracts.TradingDay(date),
			Close: *closePrice,
		})
	}
	if err := rows.Err(); err != nil {
		return contracts.PriceSeries{}, fmt.Errorf("read daily prices for %s: %w", symbol, err)
	}

	if len(series.Points) == 0 {
		return contracts.PriceSeries{}, &contracts.SourceNotFoundError{
			Source: source,
			Err:    fmt.Errorf("no daily prices for %s", symbol),
		}
	}

	return series, nil
}
