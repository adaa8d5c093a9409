package prices

import (
	"path/filepath"
	"strings"

	"github.com/doktorkwiecien79/portfolio/internal/contracts"
)

// SymbolFromSource derives the asset symbol from a source identifier:
// the base name truncated at its first '.', so "data/AAPL.csv" → "AAPL".
func SymbolFromSource(source string) contracts.AssetSymbol {
	base := filepath.Base(filepath.ToSlash(source))
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if base == "/" {
		return ""
	}
	return contracts.AssetSymbol(base)
}
