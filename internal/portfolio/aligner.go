package portfolio

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
)

// Align merges per-asset price series into one date-indexed table.
// Rows are the union of all dates (outer join) in ascending order; an asset
// with no observation on a row gets contracts.Missing. Columns keep the order
// of series, which makes weight projection deterministic.
func Align(series []contracts.PriceSeries) (*contracts.PriceTable, error) {
	if len(series) == 0 {
		return nil, &contracts.DataFormatError{Reason: "no price series to align"}
	}

	symbols := make([]contracts.AssetSymbol, len(series))
	owners := make(map[contracts.AssetSymbol]string, len(series))
	for j, s := range series {
		if s.Symbol == "" {
			return nil, &contracts.DataFormatError{Source: s.Source, Reason: "empty asset symbol"}
		}
		if prev, ok := owners[s.Symbol]; ok {
			return nil, &contracts.DuplicateSymbolError{Symbol: s.Symbol, Sources: []string{prev, s.Source}}
		}
		owners[s.Symbol] = s.Source
		symbols[j] = s.Symbol
	}

	columns := make([]map[int64]float64, len(series))
	seen := make(map[int64]struct{})
	var dates []time.Time

	for j, s := range series {
		if len(s.Points) == 0 {
			return nil, &contracts.DataFormatError{Source: s.Source, Reason: "no price observations"}
		}

		col := make(map[int64]float64, len(s.Points))
		for _, p := range s.Points {
			if p.Date.IsZero() {
				return nil, &contracts.DataFormatError{Source: s.Source, Reason: "observation without a date"}
			}
			if math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
				return nil, &contracts.DataFormatError{
					Source: s.Source,
					Reason: fmt.Sprintf("non-numeric close on %s", p.Date.Format("2006-01-02")),
				}
			}

			day := contracts.TradingDay(p.Date)
			key := day.Unix()
			if _, dup := col[key]; dup {
				return nil, &contracts.DataFormatError{
					Source: s.Source,
					Reason: fmt.Sprintf("duplicate date %s", day.Format("2006-01-02")),
				}
			}
			col[key] = p.Close

			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				dates = append(dates, day)
			}
		}
		columns[j] = col
	}

	sort.Slice(dates, func(a, b int) bool { return dates[a].Before(dates[b]) })

	cells := make([][]contracts.Observation, len(dates))
	for i, day := range dates {
		key := day.Unix()
		row := make([]contracts.Observation, len(columns))
		for j, col := range columns {
			if v, ok := col[key]; ok {
				row[j] = contracts.Present(v)
			} else {
				row[j] = contracts.Missing
			}
		}
		cells[i] = row
	}

	return contracts.NewPriceTable(dates, symbols, cells)
}
