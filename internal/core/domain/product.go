// internal/core/domain/product.go
package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ProductType represents the textile categories the inventory API accepts
type ProductType string

// Product type constants
const (
	TypeBedCovers     ProductType = "bed-covers"
	TypeCushionCovers ProductType = "cushion-covers"
	TypeSarees        ProductType = "sarees"
	TypeTowels        ProductType = "towels"
)

// ProductTypes returns every product type in display order
func ProductTypes() []string {
	return []string{
		string(TypeBedCovers),
		string(TypeCushionCovers),
		string(TypeSarees),
		string(TypeTowels),
	}
}

// Period is an analytics window. The remote API owns its meaning.
type Period string

// Period constants
const (
	PeriodToday     Period = "today"
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
	PeriodTwoMonths Period = "2months"
	PeriodYear      Period = "year"
	PeriodAll       Period = "all"
)

// Periods returns every analytics period token
func Periods() []string {
	return []string{
		string(PeriodToday),
		string(PeriodWeek),
		string(PeriodMonth),
		string(PeriodTwoMonths),
		string(PeriodYear),
		string(PeriodAll),
	}
}

// Field limits advertised to the voice runtime
const (
	MaxDescriptionLength = 500
	MaxCaptionLength     = 200
)

// ErrInvalidCostBreakdown is returned when breakdown text cannot be parsed
var ErrInvalidCostBreakdown = errors.New("invalid cost breakdown")

// ParseCostBreakdown decodes breakdown text for forwarding. Entries are
// kept exactly as given, in order, with numbers in their original textual
// form. Only text that is not a JSON list is rejected.
func ParseCostBreakdown(text string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCostBreakdown, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after list", ErrInvalidCostBreakdown)
	}

	entries, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list", ErrInvalidCostBreakdown)
	}
	return entries, nil
}
