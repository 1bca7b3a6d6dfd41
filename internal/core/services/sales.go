// internal/core/services/sales.go
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ammerola/inventory-voice/internal/core/domain"
)

// RecordSale records a sale; totals and profit are computed remotely
func (t *InventoryTools) RecordSale(ctx context.Context, args RecordSaleArgs) (string, error) {
	body := payload{
		"productName": args.ProductName,
		"quantity":    args.Quantity,
	}
	body.putFloat("sellPrice", args.SellPrice)

	env, err := t.call(ctx, http.MethodPost, salesPath, body, "Failed to record sale")
	if err != nil {
		return "", err
	}

	sale := dataObject(env)
	return fmt.Sprintf("Sale recorded! Sold %d units of %s. Total: %s, Profit: %s",
		args.Quantity,
		args.ProductName,
		currencyField(sale, "totalSaleValue"),
		currencyField(sale, "profit")), nil
}

// GetSalesHistory lists sales filtered by product and date range
func (t *InventoryTools) GetSalesHistory(ctx context.Context, args SalesHistoryArgs) (string, error) {
	endpoint := (&query{}).
		addInt("limit", args.Limit).
		addOpt("product", args.ProductName).
		addOpt("startDate", args.StartDate).
		addOpt("endDate", args.EndDate).
		endpoint(salesPath)

	env, err := t.call(ctx, http.MethodGet, endpoint, nil, "Failed to get sales history")
	if err != nil {
		return "", err
	}

	return renderList(dataList(env), listRender{
		empty:  "No sales found for the specified criteria.",
		header: func(n int) string { return fmt.Sprintf("Found %d sale(s):\n", n) },
		line: func(_ int, s domain.Object) string {
			return fmt.Sprintf("- %s (%s units, %s, Profit: %s)",
				nestedName(s, "productId"),
				s.Count("quantity"),
				currencyField(s, "totalSaleValue"),
				currencyField(s, "profit"))
		},
	}), nil
}

// GetRecentSales lists the latest sales
func (t *InventoryTools) GetRecentSales(ctx context.Context, args RecentSalesArgs) (string, error) {
	endpoint := (&query{}).addInt("limit", args.Limit).endpoint(salesPath)

	env, err := t.call(ctx, http.MethodGet, endpoint, nil, "Failed to get sales")
	if err != nil {
		return "", err
	}

	return renderList(dataList(env), listRender{
		empty:  "No sales recorded yet.",
		header: func(n int) string { return fmt.Sprintf("Recent %d sale(s):\n", n) },
		line: func(_ int, s domain.Object) string {
			return fmt.Sprintf("- %s (%s units, %s)",
				nestedName(s, "productId"),
				s.Count("quantity"),
				currencyField(s, "totalSaleValue"))
		},
	}), nil
}
