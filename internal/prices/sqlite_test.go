package prices

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
	"github.com/doktorkwiecien79/portfolio/pkg/sqlite"
)

func openSQLite(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "prices.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteLoader_Load(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, db.InsertPrice(ctx, "AAPL", date(2024, 1, 3), 184.25))
	require.NoError(t, db.InsertPrice(ctx, "AAPL", date(2024, 1, 2), 185.64))
	require.NoError(t, db.InsertPrice(ctx, "MSFT", date(2024, 1, 2), 370.87))

	loader := NewSQLiteLoader(db.DB)

	series, err := loader.Load(ctx, "AAPL.csv")
	require.NoError(t, err)

	assert.Equal(t, contracts.AssetSymbol("AAPL"), series.Symbol)
	require.Equal(t, 2, series.Len())
	assert.Equal(t, date(2024, 1, 2), series.Points[0].Date)
	assert.Equal(t, 185.64, series.Points[0].Close)
	assert.Equal(t, date(2024, 1, 3), series.Points[1].Date)
}

func TestSQLiteLoader_UnknownSymbol(t *testing.T) {
	loader := NewSQLiteLoader(openSQLite(t).DB)

	_, err := loader.Load(context.Background(), "NOPE")
	assert.True(t, errors.Is(err, contracts.ErrSourceNotFound), "got %v", err)
}

func TestSQLiteLoader_BadRows(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	_, err := db.DB.ExecContext(ctx, `INSERT INTO daily_prices (symbol, trade_date, close_price) VALUES ('BAD', 'someday', 1.0)`)
	require.NoError(t, err)
	_, err = db.DB.ExecContext(ctx, `INSERT INTO daily_prices (symbol, trade_date, close_price) VALUES ('NUL', '2024-01-02', NULL)`)
	require.NoError(t, err)

	loader := NewSQLiteLoader(db.DB)

	_, err = loader.Load(ctx, "BAD")
	assert.True(t, errors.Is(err, contracts.ErrDataFormat), "got %v", err)

	_, err = loader.Load(ctx, "NUL")
	assert.True(t, errors.Is(err, contracts.ErrDataFormat), "got %v", err)
}
