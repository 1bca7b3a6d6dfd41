// internal/core/services/registry.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/inventory-voice/internal/core/domain"
	"github.com/ammerola/inventory-voice/internal/core/ports"
	"github.com/ammerola/inventory-voice/internal/pkg/logger"
)

// Registry exposes the operation catalog as named tools
type Registry struct {
	tools  []domain.Tool
	byName map[string]domain.Tool
	logger *slog.Logger
}

var _ ports.ToolRegistry = (*Registry)(nil)

// toolDef is the advertised shape of one tool
type toolDef struct {
	name        string
	description string
	required    []string
	properties  map[string]any
}

// NewRegistry registers every inventory operation
func NewRegistry(t *InventoryTools, log *slog.Logger) *Registry {
	r := &Registry{
		byName: make(map[string]domain.Tool),
		logger: log.With(slog.String("component", "tool_registry")),
	}

	periods := domain.Periods()
	types := domain.ProductTypes()

	// Products
	register(r, toolDef{
		name:        "add_product",
		description: "Add a new product to the inventory. Use when the user wants to add, create, or insert a new product.",
		required:    []string{"name", "type", "quantity", "price"},
		properties: map[string]any{
			"name":           stringProp("The name of the product"),
			"type":           enumProp("Product type", types),
			"quantity":       integerProp("The quantity to add", 0),
			"price":          numberProp("The selling price per unit in dollars"),
			"sku":            stringProp("SKU code such as CC-003 (optional, generated when omitted)"),
			"cost":           numberProp("Total cost price per unit in dollars (optional)"),
			"cost_breakdown": stringProp(`Cost breakdown as a JSON list, e.g. [{"category":"Material","amount":20},{"category":"Embroidery","amount":10}] (optional)`),
			"description":    maxLenProp("Product description (optional)", domain.MaxDescriptionLength),
			"caption":        maxLenProp("Short caption or tagline (optional)", domain.MaxCaptionLength),
		},
	}, t.AddProduct)

	register(r, toolDef{
		name:        "update_product",
		description: "Update an existing product's details such as name, price, cost, or quantity.",
		required:    []string{"product_identifier"},
		properties: map[string]any{
			"product_identifier": stringProp("Product name, SKU, or ID to update"),
			"name":               stringProp("New product name (optional)"),
			"sku":                stringProp("New SKU (optional)"),
			"type":               enumProp("New product type (optional)", types),
			"quantity":           integerProp("New quantity (optional)", 0),
			"price":              numberProp("New price (optional)"),
			"cost":               numberProp("New cost (optional)"),
			"cost_breakdown":     stringProp("New cost breakdown as a JSON list (optional)"),
			"description":        maxLenProp("New description (optional)", domain.MaxDescriptionLength),
			"caption":            maxLenProp("New caption (optional)", domain.MaxCaptionLength),
		},
	}, t.UpdateProduct)

	register(r, toolDef{
		name:        "update_inventory",
		description: "Change a product's stock level, either by a relative amount or to a specific quantity.",
		required:    []string{"product_name"},
		properties: map[string]any{
			"product_name":    stringProp("The name or partial name of the product to update"),
			"quantity_change": integerProp("Amount to change quantity by (positive to add, negative to subtract)", -1),
			"new_quantity":    integerProp("Or set a specific new quantity", 0),
		},
	}, t.UpdateInventory)

	register(r, toolDef{
		name:        "search_products",
		description: "Search products by name, description, or SKU. Use for questions like 'how many cc-002 are there'.",
		properties: map[string]any{
			"search_term": stringProp("Search term for product name, description, or SKU"),
			"type":        enumProp("Filter by type", types),
			"low_stock":   booleanProp("Only show products with low stock (quantity < 10)"),
		},
	}, t.SearchProducts)

	register(r, toolDef{
		name:        "list_products",
		description: "List all products, optionally filtered by type or low stock.",
		properties: map[string]any{
			"type":      enumProp("Filter by type, or all", append(append([]string{}, types...), "all")),
			"low_stock": booleanProp("Only show low stock products"),
		},
	}, t.ListProducts)

	register(r, toolDef{
		name:        "get_product",
		description: "Get the details of a single product.",
		required:    []string{"product_identifier"},
		properties: map[string]any{
			"product_identifier": stringProp("Product name, SKU, or ID"),
		},
	}, t.GetProduct)

	register(r, toolDef{
		name:        "delete_product",
		description: "Delete a product from the inventory.",
		required:    []string{"product_identifier"},
		properties: map[string]any{
			"product_identifier": stringProp("Product name, SKU, or ID to delete"),
		},
	}, t.DeleteProduct)

	// Sales
	register(r, toolDef{
		name:        "record_sale",
		description: "Record a sale of a product. Reduces stock and computes profit.",
		required:    []string{"product_name", "quantity"},
		properties: map[string]any{
			"product_name": stringProp("The name, SKU, or ID of the product being sold"),
			"quantity":     integerProp("The quantity being sold", 1),
			"sell_price":   numberProp("The actual sale price per unit (optional, uses the list price when omitted)"),
		},
	}, t.RecordSale)

	register(r, toolDef{
		name:        "get_sales_history",
		description: "Get past sales, optionally filtered by product and date range.",
		properties: map[string]any{
			"product_name": stringProp("Filter by product name or SKU (optional)"),
			"start_date":   stringProp("Start date for the range in ISO format (optional)"),
			"end_date":     stringProp("End date for the range in ISO format (optional)"),
			"limit":        withDefault(integerProp("Maximum number of sales to return", 1), 10),
		},
	}, t.GetSalesHistory)

	register(r, toolDef{
		name:        "get_recent_sales",
		description: "Get the most recent sales.",
		properties: map[string]any{
			"limit": withDefault(integerProp("Number of recent sales to retrieve", 1), 5),
		},
	}, t.GetRecentSales)

	// Analytics
	register(r, toolDef{
		name:        "get_inventory_summary",
		description: "Get an overview of the inventory: product count, total value, and low stock count.",
		properties:  map[string]any{},
	}, t.GetInventorySummary)

	register(r, toolDef{
		name:        "view_analytics",
		description: "View revenue, profit, sales count, and profit margin for a time period.",
		required:    []string{"period"},
		properties: map[string]any{
			"period": enumProp("Time period", periods),
		},
	}, t.ViewAnalytics)

	register(r, toolDef{
		name:        "get_profit_stats",
		description: "Get profit statistics for a time period.",
		properties: map[string]any{
			"period": withDefault(enumProp("Time period", periods), string(domain.PeriodMonth)),
		},
	}, t.GetProfitStats)

	register(r, toolDef{
		name:        "get_monthly_profits",
		description: "Get profit broken down by month.",
		properties: map[string]any{
			"months": withDefault(integerProp("Number of months to retrieve", 1), 6),
		},
	}, t.GetMonthlyProfits)

	register(r, toolDef{
		name:        "get_top_products",
		description: "Get the best selling products for a time period.",
		properties: map[string]any{
			"period":  withDefault(enumProp("Time period", periods), string(domain.PeriodMonth)),
			"sort_by": withDefault(enumProp("Sort by", []string{"revenue", "quantity", "profit"}), "revenue"),
			"limit":   withDefault(integerProp("Number of top products to return", 1), 5),
		},
	}, t.GetTopProducts)

	register(r, toolDef{
		name:        "get_low_stock_alerts",
		description: "List products whose stock is below a threshold.",
		properties: map[string]any{
			"threshold": withDefault(integerProp("Stock threshold for alerts", 0), 10),
		},
	}, t.GetLowStockAlerts)

	register(r, toolDef{
		name:        "get_sales_trends",
		description: "Analyze sales trends for a period.",
		properties: map[string]any{
			"period": withDefault(enumProp("Period for trend analysis", []string{
				string(domain.PeriodWeek),
				string(domain.PeriodMonth),
				string(domain.PeriodTwoMonths),
				string(domain.PeriodYear),
			}), string(domain.PeriodMonth)),
		},
	}, t.GetSalesTrends)

	return r
}

// register binds a typed operation to a tool definition
func register[A any](r *Registry, def toolDef, op func(context.Context, A) (string, error)) {
	required := def.required
	if required == nil {
		required = []string{}
	}

	tool := domain.Tool{
		Name:        def.name,
		Description: def.description,
		Parameters: map[string]any{
			"type":       "object",
			"properties": def.properties,
			"required":   required,
		},
		Handler: func(ctx context.Context, raw json.RawMessage) (string, error) {
			args, err := decodeArgs[A](def.name, raw, def.required)
			if err != nil {
				return "", err
			}
			return op(ctx, args)
		},
	}

	r.tools = append(r.tools, tool)
	r.byName[tool.Name] = tool
}

// decodeArgs applies defaults, then overlays the supplied JSON. Missing or
// null required keys are rejected before the operation runs.
func decodeArgs[A any](tool string, raw json.RawMessage, required []string) (A, error) {
	var args A
	if d, ok := any(&args).(defaulter); ok {
		d.setDefaults()
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal(raw, &present); err != nil {
		return args, domain.NewToolError("Invalid arguments for %s: %v", tool, err)
	}
	for _, key := range required {
		v, ok := present[key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return args, domain.NewToolError("Invalid arguments for %s: %s is required", tool, key)
		}
	}

	if err := json.Unmarshal(raw, &args); err != nil {
		return args, domain.NewToolError("Invalid arguments for %s: %v", tool, err)
	}
	return args, nil
}

// Definitions returns every tool in registration order
func (r *Registry) Definitions() []domain.Tool {
	return append([]domain.Tool(nil), r.tools...)
}

// Lookup returns a tool by name
// Instructions returns the system prompt that accompanies the catalog
func (r *Registry) Instructions() string {
	return Instructions
}

func (r *Registry) Lookup(name string) (domain.Tool, bool) {
	tool, ok := r.byName[name]
	return tool, ok
}

// Invoke runs a tool by name with raw JSON arguments
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (string, error) {
	tool, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownTool, name)
	}

	ctx = context.WithValue(ctx, logger.ContextKeyTool, name)
	start := time.Now()

	result, err := tool.Handler(ctx, args)

	duration := time.Since(start)
	var toolErr *domain.ToolError
	switch {
	case err == nil:
		r.logger.InfoContext(ctx, "tool completed", slog.Duration("duration", duration))
	case errors.As(err, &toolErr):
		r.logger.WarnContext(ctx, "tool failed",
			slog.String("error", toolErr.Message),
			slog.Duration("duration", duration))
	default:
		r.logger.ErrorContext(ctx, "tool errored",
			slog.String("error", err.Error()),
			slog.Duration("duration", duration))
	}

	return result, err
}

// JSON schema helpers

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func maxLenProp(description string, maxLength int) map[string]any {
	p := stringProp(description)
	p["maxLength"] = maxLength
	return p
}

func enumProp(description string, values []string) map[string]any {
	p := stringProp(description)
	p["enum"] = values
	return p
}

// integerProp describes an integer; minimum < 0 means unbounded
func integerProp(description string, minimum int) map[string]any {
	p := map[string]any{"type": "integer", "description": description}
	if minimum >= 0 {
		p["minimum"] = minimum
	}
	return p
}

func numberProp(description string) map[string]any {
	return map[string]any{"type": "number", "description": description, "minimum": 0}
}

func booleanProp(description string) map[string]any {
	return map[string]any{"type": "boolean", "description": description, "default": false}
}

func withDefault(p map[string]any, value any) map[string]any {
	p["default"] = value
	return p
}
