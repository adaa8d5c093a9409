package prices

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCSVLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "AAPL.csv", `Date,Open,High,Low,Close,Volume
2024-01-04,182.15,183.09,180.88,181.91,71983600
2024-01-02,187.15,188.44,183.89,185.64,82488700
2024-01-03,184.22,185.88,183.43,184.25,58414500
`)

	loader := NewCSVLoader(dir, "")
	series, err := loader.Load(context.Background(), "AAPL.csv")
	require.NoError(t, err)

	assert.Equal(t, contracts.AssetSymbol("AAPL"), series.Symbol)
	assert.Equal(t, "AAPL.csv", series.Source)
	require.Equal(t, 3, series.Len())

	// sorted ascending regardless of file order
	assert.Equal(t, date(2024, 1, 2), series.Points[0].Date)
	assert.Equal(t, date(2024, 1, 3), series.Points[1].Date)
	assert.Equal(t, date(2024, 1, 4), series.Points[2].Date)
	assert.InDelta(t, 185.64, series.Points[0].Close, 1e-12)
	assert.InDelta(t, 181.91, series.Points[2].Close, 1e-12)
}

func TestCSVLoader_AbsolutePathIgnoresBaseDir(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "MSFT.csv", "Date,Close\n2024-01-02,370.87\n")

	series, err := NewCSVLoader("/does/not/exist", "").Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, contracts.AssetSymbol("MSFT"), series.Symbol)
}

func TestCSVLoader_SourceNotFound(t *testing.T) {
	_, err := NewCSVLoader(t.TempDir(), "").Load(context.Background(), "MISSING.csv")
	require.Error(t, err)

	assert.True(t, errors.Is(err, contracts.ErrSourceNotFound))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var notFound *contracts.SourceNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "MISSING.csv", notFound.Source)
}

func TestCSVLoader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVLoader(t.TempDir(), "").Load(ctx, "AAPL.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCSVLoader_Read_DataFormatErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{name: "empty file", content: ""},
		{name: "missing close column", content: "Date,Open\n2024-01-02,1\n", wantLine: 1},
		{name: "missing date column", content: "Day,Close\n2024-01-02,1\n", wantLine: 1},
		{name: "header only", content: "Date,Close\n"},
		{name: "bad date", content: "Date,Close\n2024-01-02,1\nnot-a-date,2\n", wantLine: 3},
		{name: "bad close", content: "Date,Close\n2024-01-02,abc\n", wantLine: 2},
		{name: "empty close", content: "Date,Close\n2024-01-02,\n", wantLine: 2},
		{name: "duplicate date", content: "Date,Close\n2024-01-02,1\n2024-01-02,2\n", wantLine: 3},
		{name: "ragged row", content: "Date,Close\n2024-01-02,1,extra\n", wantLine: 2},
	}

	loader := NewCSVLoader("", "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Read("X.csv", strings.NewReader(tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, contracts.ErrDataFormat), "got %v", err)

			var formatErr *contracts.DataFormatError
			require.True(t, errors.As(err, &formatErr))
			assert.Equal(t, "X.csv", formatErr.Source)
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, formatErr.Line)
			}
		})
	}
}

func TestCSVLoader_Read_Variants(t *testing.T) {
	t.Run("byte order mark and spaces", func(t *testing.T) {
		series, err := NewCSVLoader("", "").Read("A.csv", strings.NewReader("\ufeffDate, Close\n2024-01-02, 10.5\n"))
		require.NoError(t, err)
		require.Equal(t, 1, series.Len())
		assert.Equal(t, 10.5, series.Points[0].Close)
	})

	t.Run("semicolon delimiter and custom layout", func(t *testing.T) {
		loader := NewCSVLoader("", "02.01.2006").WithComma(';')
		series, err := loader.Read("B.csv", strings.NewReader("Date;Close\n03.01.2024;99.5\n02.01.2024;100\n"))
		require.NoError(t, err)
		require.Equal(t, 2, series.Len())
		assert.Equal(t, date(2024, 1, 2), series.Points[0].Date)
		assert.Equal(t, 100.0, series.Points[0].Close)
	})
}
