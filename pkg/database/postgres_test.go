package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doktorkwiecien79/portfolio/pkg/config"
)

func TestPoolConfig(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.DatabaseConfig
		wantMax     int32
		wantMin     int32
		wantAppName string
		wantErr     bool
	}{
		{
			name:        "sizes from config",
			cfg:         config.DatabaseConfig{URL: "postgres://u:p@localhost:5432/prices", MaxConns: 4, MinConns: 2, MaxConnLifetime: time.Hour},
			wantMax:     4,
			wantMin:     2,
			wantAppName: applicationName,
		},
		{
			name:        "min above max ignored",
			cfg:         config.DatabaseConfig{URL: "postgres://u:p@localhost:5432/prices", MaxConns: 2, MinConns: 5},
			wantMax:     2,
			wantMin:     0,
			wantAppName: applicationName,
		},
		{
			name:        "application_name from URL kept",
			cfg:         config.DatabaseConfig{URL: "postgres://u:p@localhost:5432/prices?application_name=etl", MaxConns: 1},
			wantMax:     1,
			wantAppName: "etl",
		},
		{
			name:    "bad port",
			cfg:     config.DatabaseConfig{URL: "postgres://localhost:badport/prices"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := poolConfig(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMax, got.MaxConns)
			assert.Equal(t, tt.wantMin, got.MinConns)
			assert.Equal(t, tt.wantAppName, got.ConnConfig.RuntimeParams["application_name"])
		})
	}
}

func testDB(t *testing.T) *DB {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := New(ctx, config.DatabaseConfig{URL: url, MaxConns: 2, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestHealthCheck(t *testing.T) {
	db := testDB(t)

	health, err := db.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), health.MaxConns)
	assert.Positive(t, health.Latency)
}

func TestCoverage(t *testing.T) {
	db := testDB(t)

	rows, symbols, err := db.Coverage(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rows, symbols)
}
