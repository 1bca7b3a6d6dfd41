// internal/core/services/normalize.go
package services

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/ammerola/inventory-voice/internal/core/domain"
)

// payload is a request body that only carries supplied fields
type payload map[string]any

func (p payload) putString(key string, v *string) {
	if v != nil && *v != "" {
		p[key] = *v
	}
}

func (p payload) putInt(key string, v *int) {
	if v != nil {
		p[key] = *v
	}
}

func (p payload) putFloat(key string, v *float64) {
	if v != nil {
		p[key] = *v
	}
}

// putCostBreakdown parses the breakdown text and stores it under
// costBreakdown. Unparseable text is logged and left out so the rest of the
// request still goes through.
func (p payload) putCostBreakdown(ctx context.Context, logger *slog.Logger, text *string) {
	if text == nil || *text == "" {
		return
	}

	items, err := domain.ParseCostBreakdown(*text)
	if err != nil {
		logger.WarnContext(ctx, "ignoring unparseable cost breakdown",
			slog.String("cost_breakdown", *text),
			slog.String("error", err.Error()))
		return
	}
	p["costBreakdown"] = items
}

// query builds a query string in the order keys are added
type query struct {
	parts []string
}

func (q *query) add(key, value string) *query {
	if value != "" {
		q.parts = append(q.parts, key+"="+url.QueryEscape(value))
	}
	return q
}

func (q *query) addOpt(key string, value *string) *query {
	if value != nil {
		q.add(key, *value)
	}
	return q
}

func (q *query) addInt(key string, value int) *query {
	return q.add(key, strconv.Itoa(value))
}

// flag emits key=true when set and nothing otherwise
func (q *query) flag(key string, on bool) *query {
	if on {
		q.add(key, "true")
	}
	return q
}

// endpoint appends the query to path, or returns path alone when empty
func (q *query) endpoint(path string) string {
	if len(q.parts) == 0 {
		return path
	}
	return path + "?" + strings.Join(q.parts, "&")
}

// productPath joins a product reference onto a base path
func productPath(base, ref string) string {
	return base + "/" + url.PathEscape(ref)
}
