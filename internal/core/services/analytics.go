// internal/core/services/analytics.go
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ammerola/inventory-voice/internal/core/domain"
)

// GetInventorySummary reports stock totals
func (t *InventoryTools) GetInventorySummary(ctx context.Context, _ NoArgs) (string, error) {
	env, err := t.call(ctx, http.MethodGet, analyticsPath+"/summary", nil, "Failed to get summary")
	if err != nil {
		return "", err
	}

	s := dataObject(env)
	return fmt.Sprintf("Inventory Summary: %s products, Total value: %s, Low stock items: %s",
		s.Count("totalProducts"),
		currencyField(s, "totalValue"),
		s.Count("lowStockCount")), nil
}

// ViewAnalytics reports revenue, profit and margin for a period
func (t *InventoryTools) ViewAnalytics(ctx context.Context, args PeriodArgs) (string, error) {
	endpoint := (&query{}).add("period", args.Period).endpoint(analyticsPath + "/profit")
	env, err := t.call(ctx, http.MethodGet, endpoint, nil, "Failed to get analytics")
	if err != nil {
		return "", err
	}

	d := dataObject(env)
	return fmt.Sprintf("Analytics for %s: Revenue: %s, Profit: %s, Sales: %s, Profit margin: %s%%",
		args.Period,
		currencyField(d, "totalRevenue"),
		currencyField(d, "totalProfit"),
		d.Count("salesCount"),
		oneDecimal(d, "profitMargin")), nil
}

// GetProfitStats reports profit, revenue, cost and average profit per sale
func (t *InventoryTools) GetProfitStats(ctx context.Context, args PeriodArgs) (string, error) {
	endpoint := (&query{}).add("period", args.Period).endpoint(analyticsPath + "/profit")
	env, err := t.call(ctx, http.MethodGet, endpoint, nil, "Failed to get profit stats")
	if err != nil {
		return "", err
	}

	d := dataObject(env)
	return fmt.Sprintf("Profit stats for %s: Total profit: %s, Revenue: %s, Cost: %s, Average profit per sale: %s",
		args.Period,
		currencyField(d, "totalProfit"),
		currencyField(d, "totalRevenue"),
		currencyField(d, "totalCost"),
		currencyField(d, "averageProfit")), nil
}

// GetMonthlyProfits reports profit per month
func (t *InventoryTools) GetMonthlyProfits(ctx context.Context, args MonthlyProfitsArgs) (string, error) {
	endpoint := (&query{}).addInt("months", args.Months).endpoint(analyticsPath + "/monthly-profits")
	env, err := t.call(ctx, http.MethodGet, endpoint, nil, "Failed to get monthly profits")
	if err != nil {
		return "", err
	}

	return renderList(dataList(env), listRender{
		empty:  "No profit data available.",
		header: func(int) string { return fmt.Sprintf("Monthly profits (last %d months):\n", args.Months) },
		line: func(_ int, m domain.Object) string {
			return fmt.Sprintf("- %s: %s", m.StringOr("month", unknownText), currencyField(m, "profit"))
		},
	}), nil
}

// GetTopProducts ranks products for a period
func (t *InventoryTools) GetTopProducts(ctx context.Context, args TopProductsArgs) (string, error) {
	endpoint := (&query{}).
		add("period", args.Period).
		add("sortBy", args.SortBy).
		addInt("limit", args.Limit).
		endpoint(analyticsPath + "/top-products")

	env, err := t.call(ctx, http.MethodGet, endpoint, nil, "Failed to get top products")
	if err != nil {
		return "", err
	}

	return renderList(dataList(env), listRender{
		empty: fmt.Sprintf("No sales data available for %s.", args.Period),
		header: func(n int) string {
			return fmt.Sprintf("Top %d product(s) by %s for %s:\n", n, args.SortBy, args.Period)
		},
		line: func(i int, p domain.Object) string {
			return fmt.Sprintf("%d. %s (SKU: %s, Profit: %s)",
				i+1,
				p.StringOr("name", unknownText),
				p.StringOr("sku", noSKUText),
				currencyField(p, "profit"))
		},
	}), nil
}

// GetLowStockAlerts lists products under the stock threshold
func (t *InventoryTools) GetLowStockAlerts(ctx context.Context, args LowStockArgs) (string, error) {
	endpoint := (&query{}).addInt("threshold", args.Threshold).endpoint(analyticsPath + "/low-stock")
	env, err := t.call(ctx, http.MethodGet, endpoint, nil, "Failed to get alerts")
	if err != nil {
		return "", err
	}

	return renderList(dataList(env), listRender{
		empty:  "No low stock alerts. All products are well stocked.",
		header: func(n int) string { return fmt.Sprintf("%d low stock alert(s):\n", n) },
		line: func(_ int, p domain.Object) string {
			return fmt.Sprintf("- %s (Quantity: %s, SKU: %s)",
				p.StringOr("name", unknownText),
				p.Count("quantity"),
				p.StringOr("sku", noSKUText))
		},
		remainder: func(rest int) string {
			return fmt.Sprintf("... and %d more items need restocking.", rest)
		},
	}), nil
}

// GetSalesTrends reports sales volume and direction for a period
func (t *InventoryTools) GetSalesTrends(ctx context.Context, args PeriodArgs) (string, error) {
	endpoint := (&query{}).add("period", args.Period).endpoint(analyticsPath + "/trends")
	env, err := t.call(ctx, http.MethodGet, endpoint, nil, "Failed to get trends")
	if err != nil {
		return "", err
	}

	d := dataObject(env)
	return fmt.Sprintf("Sales trends for %s: Total sales: %s, Average per day: %s, Trend: %s",
		args.Period,
		d.Count("totalSales"),
		oneDecimal(d, "averagePerDay"),
		d.StringOr("trend", "stable")), nil
}
