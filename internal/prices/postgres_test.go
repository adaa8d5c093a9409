package prices

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
)

func TestPostgresLoader_Load(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err, "database connection failed")
	defer pool.Close()

	_, err = pool.Exec(ctx, `
		CREATE SCHEMA IF NOT EXISTS data;
		CREATE TABLE IF NOT EXISTS data.daily_prices (
			stock_code  TEXT NOT NULL,
			trade_date  DATE NOT NULL,
			close_price NUMERIC,
			PRIMARY KEY (stock_code, trade_date)
		);
		DELETE FROM data.daily_prices WHERE stock_code = 'PFTEST';
		INSERT INTO data.daily_prices (stock_code, trade_date, close_price)
		VALUES ('PFTEST', '2024-01-03', 101), ('PFTEST', '2024-01-02', 100);
	`)
	require.NoError(t, err)
	defer pool.Exec(context.Background(), `DELETE FROM data.daily_prices WHERE stock_code = 'PFTEST'`)

	loader := NewPostgresLoader(pool)

	series, err := loader.Load(ctx, "PFTEST.csv")
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())
	assert.Equal(t, contracts.AssetSymbol("PFTEST"), series.Symbol)
	assert.Equal(t, date(2024, 1, 2), series.Points[0].Date)
	assert.Equal(t, 100.0, series.Points[0].Close)

	_, err = loader.Load(ctx, "PFNONE")
	assert.True(t, errors.Is(err, contracts.ErrSourceNotFound))
}
