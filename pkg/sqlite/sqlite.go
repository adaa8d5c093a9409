package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite handle backing the local price store
type DB struct {
	DB   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS daily_prices (
    symbol      TEXT NOT NULL,
    trade_date  TEXT NOT NULL,
    close_price REAL,
    PRIMARY KEY (symbol, trade_date)
);`

// Open opens (or creates) the database at path and ensures the schema exists
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create daily_prices table: %w", err)
	}

	return &DB{DB: db, path: path}, nil
}

// Path returns the database file location
func (d *DB) Path() string {
	return d.path
}

// Close closes the database
func (d *DB) Close() error {
	return d.DB.Close()
}

// DateLayout is the text form of trade_date in daily_prices.
// It is fixed regardless of PRICE_DATE_LAYOUT, which only describes input CSVs.
const DateLayout = "2006-01-02"

// Price is one stored close
type Price struct {
	Date  time.Time
	Close float64
}

const upsertPrice = `
	INSERT INTO daily_prices (symbol, trade_date, close_price)
	VALUES (?, ?, ?)
	ON CONFLICT (symbol, trade_date) DO UPDATE SET close_price = excluded.close_price`

// InsertPrice upserts one close observation
func (d *DB) InsertPrice(ctx context.Context, symbol string, date time.Time, closePrice float64) error {
	day := date.Format(DateLayout)
	if _, err := d.DB.ExecContext(ctx, upsertPrice, symbol, day, closePrice); err != nil {
		return fmt.Errorf("failed to insert price %s@%s: %w", symbol, day, err)
	}
	return nil
}

// InsertPrices upserts a whole series in one transaction.
// On any failure nothing from this call is kept.
func (d *DB) InsertPrices(ctx context.Context, symbol string, prices []Price) (err error) {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import of %s: %w", symbol, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsertPrice)
	if err != nil {
		return fmt.Errorf("failed to prepare price upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range prices {
		day := p.Date.Format(DateLayout)
		if _, err = stmt.ExecContext(ctx, symbol, day, p.Close); err != nil {
			return fmt.Errorf("failed to insert price %s@%s: %w", symbol, day, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import of %s: %w", symbol, err)
	}
	return nil
}
