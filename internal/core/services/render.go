// internal/core/services/render.go
package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ammerola/inventory-voice/internal/core/domain"
)

// PreviewLimit is the most list entries a spoken answer reads out
const PreviewLimit = 5

const (
	unknownText = "Unknown"
	noSKUText   = "N/A"
)

// Currency renders a dollar amount with exactly two decimals
func Currency(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func currencyFloat(f float64) string {
	return Currency(decimal.NewFromFloat(f))
}

func currencyField(o domain.Object, key string) string {
	return Currency(o.DecimalOrZero(key))
}

// oneDecimal renders a ratio or average such as a margin
func oneDecimal(o domain.Object, key string) string {
	return o.DecimalOrZero(key).StringFixed(1)
}

// nestedName unwraps a populated reference such as a sale's productId
func nestedName(o domain.Object, key string) string {
	if ref, ok := o.Object(key); ok {
		return ref.StringOr("name", unknownText)
	}
	return unknownText
}

// listRender describes how a list answer is spoken
type listRender struct {
	empty     string
	header    func(total int) string
	line      func(i int, item domain.Object) string
	remainder func(rest int) string
}

func defaultRemainder(rest int) string {
	return fmt.Sprintf("... and %d more.", rest)
}

// renderList speaks at most PreviewLimit entries followed by a remainder
// count when the list is longer.
func renderList(items []domain.Object, r listRender) string {
	if len(items) == 0 {
		return r.empty
	}

	var b strings.Builder
	b.WriteString(r.header(len(items)))

	for i, item := range items {
		if i == PreviewLimit {
			break
		}
		b.WriteString(r.line(i, item))
		b.WriteString("\n")
	}

	if rest := len(items) - PreviewLimit; rest > 0 {
		remainder := r.remainder
		if remainder == nil {
			remainder = defaultRemainder
		}
		b.WriteString(remainder(rest))
	}

	return b.String()
}

// dataList returns the envelope's list payload, treating anything else as empty
func dataList(env domain.Envelope) []domain.Object {
	items, _ := env.DataList()
	return items
}

// dataObject returns the envelope's object payload, treating anything else as empty
func dataObject(env domain.Envelope) domain.Object {
	if obj, ok := env.DataObject(); ok {
		return obj
	}
	return domain.Object{}
}

func renderProductLine(quantityLabel string) func(int, domain.Object) string {
	return func(_ int, p domain.Object) string {
		return fmt.Sprintf("- %s (SKU: %s, %s: %s, Price: %s)",
			p.StringOr("name", unknownText),
			p.StringOr("sku", noSKUText),
			quantityLabel,
			p.Count("quantity"),
			currencyField(p, "price"))
	}
}

func renderCostBreakdown(product domain.Object) string {
	items, ok := product.List("costBreakdown")
	if !ok || len(items) == 0 {
		return ""
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s: %s", item.StringOr("category", unknownText), currencyField(item, "amount")))
	}
	return " Cost breakdown: " + strings.Join(parts, ", ") + "."
}
