package contracts

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced by the pipeline. Use errors.Is against these;
// the concrete types below carry the details.
var (
	ErrSourceNotFound   = errors.New("price source not found")
	ErrDataFormat       = errors.New("invalid price data")
	ErrDuplicateSymbol  = errors.New("duplicate asset symbol")
	ErrMissingWeight    = errors.New("missing weight")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrInvalidWeights   = errors.New("invalid weights")
	ErrInsufficientData = errors.New("insufficient return observations")
)

// SourceNotFoundError reports a price source that cannot be located or read
type SourceNotFoundError struct {
	Source string
	Err    error
}

func (e *SourceNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("price source %q not found: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("price source %q not found", e.Source)
}

func (e *SourceNotFoundError) Unwrap() error { return e.Err }

func (e *SourceNotFoundError) Is(target error) bool { return target == ErrSourceNotFound }

// DataFormatError reports malformed price data. Line is 0 when not applicable.
type DataFormatError struct {
	Source string
	Line   int
	Reason string
}

func (e *DataFormatError) Error() string {
	var b strings.Builder
	b.WriteString("invalid price data")
	if e.Source != "" {
		fmt.Fprintf(&b, " in %q", e.Source)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *DataFormatError) Is(target error) bool { return target == ErrDataFormat }

// DuplicateSymbolError reports two sources resolving to the same symbol
type DuplicateSymbolError struct {
	Symbol  AssetSymbol
	Sources []string
}

func (e *DuplicateSymbolError) Error() string {
	if len(e.Sources) > 0 {
		return fmt.Sprintf("duplicate asset symbol %q (sources: %s)", e.Symbol, strings.Join(e.Sources, ", "))
	}
	return fmt.Sprintf("duplicate asset symbol %q", e.Symbol)
}

func (e *DuplicateSymbolError) Is(target error) bool { return target == ErrDuplicateSymbol }

// MissingWeightError reports a weight mapping that does not match the table columns.
// Unknown=true means the weight names an asset absent from the table.
type MissingWeightError struct {
	Symbol  AssetSymbol
	Unknown bool
}

func (e *MissingWeightError) Error() string {
	if e.Unknown {
		return fmt.Sprintf("weight given for unknown asset %q", e.Symbol)
	}
	return fmt.Sprintf("no weight for asset %q", e.Symbol)
}

func (e *MissingWeightError) Is(target error) bool { return target == ErrMissingWeight }

// InvalidWeightsError reports weights rejected by the optional sum check
type InvalidWeightsError struct {
	Sum       float64
	Tolerance float64
	Reason    string
}

func (e *InvalidWeightsError) Error() string {
	if e.Reason != "" {
		return "invalid weights: " + e.Reason
	}
	return fmt.Sprintf("invalid weights: sum %.6f differs from 1 by more than %g", e.Sum, e.Tolerance)
}

func (e *InvalidWeightsError) Is(target error) bool { return target == ErrInvalidWeights }
