package portfolio

import (
	"fmt"
	"time"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
)

// ComputeReturns derives simple daily returns, price[t]/price[t-1] - 1, per column.
// The first row has no prior price and is dropped; so is any later row where some
// asset lacks either the current or the previous observation.
func ComputeReturns(table *contracts.PriceTable) (*contracts.ReturnTable, error) {
	symbols := table.Symbols()
	width := table.Width()

	var (
		dates  []time.Time
		values [][]float64
	)

	for i := 1; i < table.Rows(); i++ {
		row := make([]float64, width)
		complete := true

		for j := 0; j < width; j++ {
			prev, cur := table.At(i-1, j), table.At(i, j)
			if !prev.Valid || !cur.Valid {
				complete = false
				continue
			}
			if prev.Value == 0 {
				return nil, &contracts.DataFormatError{
					Source: string(symbols[j]),
					Reason: fmt.Sprintf("zero close on %s, return for %s undefined",
						table.Date(i-1).Format("2006-01-02"), table.Date(i).Format("2006-01-02")),
				}
			}
			row[j] = cur.Value/prev.Value - 1
		}

		if complete {
			dates = append(dates, table.Date(i))
			values = append(values, row)
		}
	}

	return contracts.NewReturnTable(dates, symbols, values)
}
