package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doktorkwiecien79/portfolio/pkg/config"
)

const (
	applicationName = "portfolio"
	pingTimeout     = 5 * time.Second
)

// DB is the pgx pool behind the Postgres price store (data.daily_prices)
// ⭐ SSOT: DB 연결은 이 패키지에서만 생성
type DB struct {
	Pool *pgxpool.Pool
}

// New opens a pool sized by cfg and pings it once before returning
func New(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &DB{Pool: pool}, nil
}

func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 && cfg.MinConns <= int(poolCfg.MaxConns) {
		poolCfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if _, ok := poolCfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	}
	return poolCfg, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Ping checks if the database is accessible
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Health is a ping round trip plus a pool snapshot
type Health struct {
	Latency       time.Duration `json:"latency"`
	MaxConns      int32         `json:"max_conns"`
	TotalConns    int32         `json:"total_conns"`
	IdleConns     int32         `json:"idle_conns"`
	AcquiredConns int32         `json:"acquired_conns"`
}

// HealthCheck pings the database and snapshots the pool
func (db *DB) HealthCheck(ctx context.Context) (Health, error) {
	start := time.Now()
	if err := db.Pool.Ping(ctx); err != nil {
		return Health{}, fmt.Errorf("ping postgres: %w", err)
	}

	stat := db.Pool.Stat()
	return Health{
		Latency:       time.Since(start),
		MaxConns:      stat.MaxConns(),
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
	}, nil
}

// Coverage counts the stored closes and distinct symbols in data.daily_prices
func (db *DB) Coverage(ctx context.Context) (rows, symbols int64, err error) {
	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT stock_code) FROM data.daily_prices`,
	).Scan(&rows, &symbols)
	if err != nil {
		return 0, 0, fmt.Errorf("count daily prices: %w", err)
	}
	return rows, symbols, nil
}
