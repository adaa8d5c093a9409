package prices

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
)

// Required CSV header fields
const (
	ColumnDate  = "Date"
	ColumnClose = "Close"
)

// CSVLoader reads one delimited file per asset with at least Date and Close columns.
// Rows may come in any order; the series is returned sorted by date.
type CSVLoader struct {
	baseDir    string
	dateLayout string
	comma      rune
}

// NewCSVLoader creates a loader resolving relative sources against baseDir
func NewCSVLoader(baseDir, dateLayout string) *CSVLoader {
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	return &CSVLoader{
		baseDir:    baseDir,
		dateLayout: dateLayout,
		comma:      ',',
	}
}

// WithComma returns a copy of the loader using a different field delimiter
func (l *CSVLoader) WithComma(comma rune) *CSVLoader {
	cp := *l
	cp.comma = comma
	return &cp
}

// Load opens the source file and parses it
func (l *CSVLoader) Load(ctx context.Context, source string) (contracts.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return contracts.PriceSeries{}, err
	}

	path := source
	if l.baseDir != "" && !filepath.IsAbs(source) {
		path = filepath.Join(l.baseDir, source)
	}

	f, err := os.Open(path)
	if err != nil {
		return contracts.PriceSeries{}, &contracts.SourceNotFoundError{Source: source, Err: err}
	}
	defer f.Close()

	return l.Read(source, f)
}

// Read parses CSV content for source from r
func (l *CSVLoader) Read(source string, r io.Reader) (contracts.PriceSeries, error) {
	reader := csv.NewReader(r)
	reader.Comma = l.comma
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return contracts.PriceSeries{}, &contracts.DataFormatError{Source: source, Reason: "empty file"}
	}
	if err != nil {
		return contracts.PriceSeries{}, csvError(source, err)
	}

	dateIdx, closeIdx := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch name {
		case ColumnDate:
			dateIdx = i
		case ColumnClose:
			closeIdx = i
		}
	}
	if dateIdx < 0 || closeIdx < 0 {
		return contracts.PriceSeries{}, &contracts.DataFormatError{
			Source: source,
			Line:   1,
			Reason: fmt.Sprintf("header must contain %q and %q columns", ColumnDate, ColumnClose),
		}
	}

	series := contracts.PriceSeries{
		Symbol: SymbolFromSource(source),
		Source: source,
	}
	lines := make(map[int64]int)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return contracts.PriceSeries{}, csvError(source, err)
		}
		line, _ := reader.FieldPos(0)

		date, err := parseDate(record[dateIdx], l.dateLayout)
		if err != nil {
			return contracts.PriceSeries{}, &contracts.DataFormatError{Source: source, Line: line, Reason: err.Error()}
		}
		closePrice, err := parseClose(record[closeIdx])
		if err != nil {
			return contracts.PriceSeries{}, &contracts.DataFormatError{Source: source, Line: line, Reason: err.Error()}
		}

		key := date.Unix()
		if prev, ok := lines[key]; ok {
			return contracts.PriceSeries{}, &contracts.DataFormatError{
				Source: source,
				Line:   line,
				Reason: fmt.Sprintf("duplicate date %s (first seen at line %d)", date.Format(DefaultDateLayout), prev),
			}
		}
		lines[key] = line

		series.Points = append(series.Points, contracts.PricePoint{Date: date, Close: closePrice})
	}

	if len(series.Points) == 0 {
		return contracts.PriceSeries{}, &contracts.DataFormatError{Source: source, Reason: "no price rows"}
	}

	sortPoints(series.Points)

	return series, nil
}

func csvError(source string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &contracts.DataFormatError{Source: source, Line: parseErr.Line, Reason: parseErr.Err.Error()}
	}
	return &contracts.DataFormatError{Source: source, Reason: err.Error()}
}
