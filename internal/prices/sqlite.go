package prices

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
	"github.com/doktorkwiecien79/portfolio/pkg/sqlite"
)

// SQLiteLoader reads closes from the local daily_prices table.
// trade_date is always in sqlite.DateLayout, whatever PRICE_DATE_LAYOUT says.
type SQLiteLoader struct {
	db *sql.DB
}

// NewSQLiteLoader creates a new SQLite price loader
func NewSQLiteLoader(db *sql.DB) *SQLiteLoader {
	return &SQLiteLoader{db: db}
}

const sqliteSeriesQuery = `
	SELECT trade_date, close_price
	FROM daily_prices
	WHERE symbol = ?
	ORDER BY trade_date ASC
`

// Load retrieves the full close history for the source's symbol
func (l *SQLiteLoader) Load(ctx context.Context, source string) (contracts.PriceSeries, error) {
	symbol := SymbolFromSource(source)

	rows, err := l.db.QueryContext(ctx, sqliteSeriesQuery, string(symbol))
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
			rawDate    string
			closePrice sql.NullFloat64
		)
		if err := rows.Scan(&rawDate, &closePrice); err != nil {
			return contracts.PriceSeries{}, &contracts.DataFormatError{Source: source, Reason: err.Error()}
		}

		date, err := parseDate(rawDate, sqlite.DateLayout)
		if err != nil {
			return contracts.PriceSeries{}, &contracts.DataFormatError{Source: source, Reason: err.Error()}
		}
		if !closePrice.Valid {
			return contracts.PriceSeries{}, &contracts.DataFormatError{
				Source: source,
				Reason: fmt.Sprintf("null close price on %s", rawDate),
			}
		}

		series.Points = append(series.Points, contracts.PricePoint{Date: date, Close: closePrice.Float64})
	}
	if err := rows.Err(); err != nil {
		return contracts.PriceSeries{}, fmt.Errorf("read daily prices for %s: %w", symbol, err)
	}
	sortPoints(series.Points)

	if len(series.Points) == 0 {
		return contracts.PriceSeries{}, &contracts.SourceNotFoundError{
			Source: source,
			Err:    fmt.Errorf("no daily prices for %s", symbol),
		}
	}

	return series, nil
}
