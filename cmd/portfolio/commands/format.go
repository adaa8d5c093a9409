package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
	"github.com/doktorkwiecien79/portfolio/internal/risk"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const ruleWidth = 59

// printHeader prints a titled double-line block
func printHeader(w io.Writer, title string, fields ...[2]string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("═", ruleWidth))
	fmt.Fprintf(w, "  %s\n", title)
	if len(fields) > 0 {
		fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
		for _, f := range fields {
			fmt.Fprintf(w, "  %-10s: %s\n", f[0], f[1])
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
}

// printTableHeader prints a table header
func printTableHeader(w io.Writer, columns []string, widths []int) {
	printTableRow(w, columns, widths)

	total := 0
	for i, width := range widths {
		total += width
		if i < len(widths)-1 {
			total += 2 // spacing
		}
	}
	fmt.Fprintln(w, strings.Repeat("─", total))
}

// printTableRow prints a table row
func printTableRow(w io.Writer, values []string, widths []int) {
	for i, val := range values {
		fmt.Fprintf(w, "%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

// printKeyValue prints key-value pairs
func printKeyValue(w io.Writer, key, value string, keyWidth int) {
	fmt.Fprintf(w, "   %-*s : %s\n", keyWidth, key, value)
}

// printSuccess prints a success message
func printSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// printReturnTable writes the return table, one row per date
func printReturnTable(w io.Writer, returns *contracts.ReturnTable) {
	symbols := returns.Symbols()

	columns := make([]string, 0, len(symbols)+1)
	widths := make([]int, 0, len(symbols)+1)
	columns = append(columns, "Date")
	widths = append(widths, 10)
	for _, s := range symbols {
		columns = append(columns, string(s))
		widths = append(widths, max(len(s), 10))
	}

	printTableHeader(w, columns, widths)
	for i := 0; i < returns.Rows(); i++ {
		values := make([]string, 0, len(columns))
		values = append(values, returns.Date(i).Format("2006-01-02"))
		for _, r := range returns.Row(i) {
			values = append(values, formatPercent(r))
		}
		printTableRow(w, values, widths)
	}
}

// printAssetTable writes per-asset mean and standard deviation
func printAssetTable(w io.Writer, assets []contracts.AssetStatistics) {
	widths := []int{12, 12, 12}
	printTableHeader(w, []string{"Asset", "Mean", "Std Dev"}, widths)
	for _, a := range assets {
		printTableRow(w, []string{string(a.Symbol), formatPercent(a.MeanReturn), formatPercent(a.StdDev)}, widths)
	}
}

// printStatistics writes the portfolio summary
func printStatistics(w io.Writer, stats contracts.Statistics, riskFreeRate float64) {
	printKeyValue(w, "Expected return", formatPercent(stats.ExpectedReturn), 16)
	printKeyValue(w, "Volatility", formatPercent(stats.Volatility), 16)
	printKeyValue(w, "Risk-free rate", formatPercent(riskFreeRate), 16)
	printKeyValue(w, "Sharpe ratio", fmt.Sprintf("%.4f", stats.SharpeRatio), 16)
}

// printRiskReport writes historical and parametric VaR side by side
func printRiskReport(w io.Writer, report risk.Report) {
	widths := []int{12, 12, 12}
	printTableHeader(w, []string{fmt.Sprintf("VaR %.0f%%", report.Historical.Confidence*100), "VaR", "CVaR"}, widths)
	for _, r := range []risk.VaRResult{report.Historical, report.Parametric} {
		printTableRow(w, []string{string(r.Method), formatPercent(r.VaR), formatPercent(r.CVaR)}, widths)
	}
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%+.4f%%", v*100)
}

func formatWeights(weights contracts.WeightVector) string {
	parts := make([]string, 0, len(weights))
	for _, s := range weights.Symbols() {
		parts = append(parts, fmt.Sprintf("%s=%.4f", s, weights[s]))
	}
	return strings.Join(parts, " ")
}
