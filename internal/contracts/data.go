package contracts

import (
	"fmt"
	"time"
)

// AssetSymbol uniquely names an asset within a portfolio
type AssetSymbol string

// PricePoint is a single daily close observation
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries holds the closing prices of one asset, sorted ascending by date
// ⭐ SSOT: PriceLoader → PriceAligner 전달 단위
type PriceSeries struct {
	Symbol AssetSymbol  `json:"symbol"`
	Source string       `json:"source"`
	Points []PricePoint `json:"points"`
}

// Len returns the number of observations
func (s PriceSeries) Len() int {
	return len(s.Points)
}

// TradingDay truncates t to its calendar date at UTC midnight.
// The date is taken in t's own location, so 2024-01-02T23:00-05:00 stays 2024-01-02.
func TradingDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Observation is a price cell that may be absent.
// Valid=false is the explicit "no value" marker; Value is meaningless then.
type Observation struct {
	Value float64
	Valid bool
}

// Present creates an observed price cell
func Present(v float64) Observation {
	return Observation{Value: v, Valid: true}
}

// Missing is the "no value" marker
var Missing = Observation{}

// PriceTable is a date-indexed table of closing prices, one column per asset.
// Rows are strictly increasing by date; the value is immutable once built.
type PriceTable struct {
	dates   []time.Time
	symbols []AssetSymbol
	cells   [][]Observation // [row][column]
}

// NewPriceTable builds a PriceTable after checking shape and date ordering
func NewPriceTable(dates []time.Time, symbols []AssetSymbol, cells [][]Observation) (*PriceTable, error) {
	if err := checkShape(dates, symbols, len(cells), func(i int) int { return len(cells[i]) }); err != nil {
		return nil, err
	}

	t := &PriceTable{
		dates:   append([]time.Time(nil), dates...),
		symbols: append([]AssetSymbol(nil), symbols...),
		cells:   make([][]Observation, len(cells)),
	}
	for i, row := range cells {
		t.cells[i] = append([]Observation(nil), row...)
	}
	return t, nil
}

// Dates returns a copy of the row index
func (t *PriceTable) Dates() []time.Time {
	return append([]time.Time(nil), t.dates...)
}

// Symbols returns a copy of the column order
func (t *PriceTable) Symbols() []AssetSymbol {
	return append([]AssetSymbol(nil), t.symbols...)
}

// Rows returns the number of dates
func (t *PriceTable) Rows() int {
	return len(t.dates)
}

// Width returns the number of asset columns
func (t *PriceTable) Width() int {
	return len(t.symbols)
}

// Date returns the date of row i
func (t *PriceTable) Date(i int) time.Time {
	return t.dates[i]
}

// At returns the cell at row i, column j
func (t *PriceTable) At(i, j int) Observation {
	return t.cells[i][j]
}

// Column returns a copy of one asset's cells
func (t *PriceTable) Column(symbol AssetSymbol) ([]Observation, bool) {
	j := indexOf(t.symbols, symbol)
	if j < 0 {
		return nil, false
	}
	col := make([]Observation, len(t.cells))
	for i := range t.cells {
		col[i] = t.cells[i][j]
	}
	return col, true
}

// ReturnTable is a date-indexed table of simple daily returns.
// Every row is complete: there is no missing marker in a ReturnTable.
type ReturnTable struct {
	dates   []time.Time
	symbols []AssetSymbol
	values  [][]float64 // [row][column]
}

// NewReturnTable builds a ReturnTable after checking shape and date ordering
func NewReturnTable(dates []time.Time, symbols []AssetSymbol, values [][]float64) (*ReturnTable, error) {
	if err := checkShape(dates, symbols, len(values), func(i int) int { return len(values[i]) }); err != nil {
		return nil, err
	}

	t := &ReturnTable{
		dates:   append([]time.Time(nil), dates...),
		symbols: append([]AssetSymbol(nil), symbols...),
		values:  make([][]float64, len(values)),
	}
	for i, row := range values {
		t.values[i] = append([]float64(nil), row...)
	}
	return t, nil
}

// Dates returns a copy of the row index
func (t *ReturnTable) Dates() []time.Time {
	return append([]time.Time(nil), t.dates...)
}

// Symbols returns a copy of the column order
func (t *ReturnTable) Symbols() []AssetSymbol {
	return append([]AssetSymbol(nil), t.symbols...)
}

// Rows returns the number of dates
func (t *ReturnTable) Rows() int {
	return len(t.dates)
}

// Width returns the number of asset columns
func (t *ReturnTable) Width() int {
	return len(t.symbols)
}

// Date returns the date of row i
func (t *ReturnTable) Date(i int) time.Time {
	return t.dates[i]
}

// At returns the return at row i, column j
func (t *ReturnTable) At(i, j int) float64 {
	return t.values[i][j]
}

// Row returns a copy of row i in column order
func (t *ReturnTable) Row(i int) []float64 {
	return append([]float64(nil), t.values[i]...)
}

// Column returns a copy of one asset's returns
func (t *ReturnTable) Column(symbol AssetSymbol) ([]float64, bool) {
	j := indexOf(t.symbols, symbol)
	if j < 0 {
		return nil, false
	}
	col := make([]float64, len(t.values))
	for i := range t.values {
		col[i] = t.values[i][j]
	}
	return col, true
}

// Scale returns a new table with every return multiplied by k
func (t *ReturnTable) Scale(k float64) *ReturnTable {
	values := make([][]float64, len(t.values))
	for i, row := range t.values {
		values[i] = make([]float64, len(row))
		for j, v := range row {
			values[i][j] = v * k
		}
	}
	return &ReturnTable{
		dates:   t.Dates(),
		symbols: t.Symbols(),
		values:  values,
	}
}

func checkShape(dates []time.Time, symbols []AssetSymbol, rows int, width func(int) int) error {
	if rows != len(dates) {
		return fmt.Errorf("table has %d rows but %d dates", rows, len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return fmt.Errorf("dates not strictly increasing at row %d (%s after %s)",
				i, dates[i].Format("2006-01-02"), dates[i-1].Format("2006-01-02"))
		}
	}
	seen := make(map[AssetSymbol]struct{}, len(symbols))
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			return &DuplicateSymbolError{Symbol: s}
		}
		seen[s] = struct{}{}
	}
	for i := 0; i < rows; i++ {
		if width(i) != len(symbols) {
			return fmt.Errorf("row %d has %d values, want %d", i, width(i), len(symbols))
		}
	}
	return nil
}

func indexOf(symbols []AssetSymbol, symbol AssetSymbol) int {
	for j, s := range symbols {
		if s == symbol {
			return j
		}
	}
	return -1
}
