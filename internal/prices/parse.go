package prices

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
)

// DefaultDateLayout is the ISO calendar date
const DefaultDateLayout = "2006-01-02"

var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseDate parses a Date cell with layout, then the ISO fallbacks
func parseDate(raw, layout string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if layout == "" {
		layout = DefaultDateLayout
	}

	if t, err := time.Parse(layout, raw); err == nil {
		return contracts.TradingDay(t), nil
	}
	for _, l := range fallbackLayouts {
		if t, err := time.Parse(l, raw); err == nil {
			return contracts.TradingDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", raw)
}

// parseClose parses a decimal Close cell into float64
func parseClose(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty close price")
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("non-numeric close price %q", raw)
	}

	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("close price %q out of range", raw)
	}
	return f, nil
}

func sortPoints(points []contracts.PricePoint) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
}
