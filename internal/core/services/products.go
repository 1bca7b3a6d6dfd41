// internal/core/services/products.go
package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// AddProduct creates a product
func (t *InventoryTools) AddProduct(ctx context.Context, args AddProductArgs) (string, error) {
	body := payload{
		"name":     args.Name,
		"type":     args.Type,
		"quantity": args.Quantity,
		"price":    args.Price,
	}
	body.putString("sku", args.SKU)
	body.putFloat("cost", args.Cost)
	body.putString("description", args.Description)
	body.putString("caption", args.Caption)
	body.putCostBreakdown(ctx, t.logger, args.CostBreakdown)

	env, err := t.call(ctx, http.MethodPost, productsPath, body, "Failed to add product")
	if err != nil {
		return "", err
	}

	product := dataObject(env)
	return fmt.Sprintf("Successfully added %d units of '%s' (SKU: %s) to inventory at %s per unit.%s",
		args.Quantity,
		args.Name,
		product.StringOr("sku", noSKUText),
		currencyFloat(args.Price),
		renderCostBreakdown(product)), nil
}

// UpdateProduct edits the supplied fields of a product
func (t *InventoryTools) UpdateProduct(ctx context.Context, args UpdateProductArgs) (string, error) {
	body := payload{"product_identifier": args.ProductIdentifier}
	body.putString("name", args.Name)
	body.putString("sku", args.SKU)
	body.putString("type", args.Type)
	body.putInt("quantity", args.Quantity)
	body.putFloat("price", args.Price)
	body.putFloat("cost", args.Cost)
	body.putString("description", args.Description)
	body.putString("caption", args.Caption)
	body.putCostBreakdown(ctx, t.logger, args.CostBreakdown)

	endpoint := productPath(productsPath, args.ProductIdentifier)
	if _, err := t.call(ctx, http.MethodPut, endpoint, body, "Failed to update product"); err != nil {
		return "", err
	}

	var fields []string
	if args.Name != nil && *args.Name != "" {
		fields = append(fields, "name")
	}
	if args.Price != nil {
		fields = append(fields, fmt.Sprintf("price (%s)", currencyFloat(*args.Price)))
	}
	if args.Cost != nil {
		fields = append(fields, fmt.Sprintf("cost (%s)", currencyFloat(*args.Cost)))
	}
	if args.Quantity != nil {
		fields = append(fields, fmt.Sprintf("quantity (%d)", *args.Quantity))
	}

	updated := "product details"
	if len(fields) > 0 {
		updated = strings.Join(fields, ", ")
	}
	return fmt.Sprintf("Successfully updated %s for '%s'.", updated, args.ProductIdentifier), nil
}

// UpdateInventory adjusts or sets a product's stock level
func (t *InventoryTools) UpdateInventory(ctx context.Context, args UpdateInventoryArgs) (string, error) {
	body := payload{"product_name": args.ProductName}
	body.putInt("quantity_change", args.QuantityChange)
	body.putInt("new_quantity", args.NewQuantity)

	endpoint := productPath(quantityPath, args.ProductName)
	env, err := t.call(ctx, http.MethodPut, endpoint, body, "Failed to update inventory")
	if err != nil {
		return "", err
	}

	sentence := fmt.Sprintf("Successfully updated inventory for '%s'.", args.ProductName)
	if msg := env.Message(); msg != "" {
		sentence += " " + msg
	}
	return sentence, nil
}

// SearchProducts finds products by name, SKU or description
func (t *InventoryTools) SearchProducts(ctx context.Context, args SearchProductsArgs) (string, error) {
	endpoint := (&query{}).
		addOpt("search", args.SearchTerm).
		addOpt("type", args.Type).
		flag("lowStock", args.LowStock).
		endpoint(productsPath)

	env, err := t.call(ctx, http.MethodGet, endpoint, nil, "Search failed")
	if err != nil {
		return "", err
	}

	return renderList(dataList(env), listRender{
		empty:  "No products found matching your search.",
		header: func(n int) string { return fmt.Sprintf("Found %d product(s):\n", n) },
		line:   renderProductLine("Quantity"),
	}), nil
}

// ListProducts lists products, optionally by type or low stock
func (t *InventoryTools) ListProducts(ctx context.Context, args ListProductsArgs) (string, error) {
	q := &query{}
	if args.Type != nil && *args.Type != "all" {
		q.add("type", *args.Type)
	}
	endpoint := q.flag("lowStock", args.LowStock).endpoint(productsPath)

	env, err := t.call(ctx, http.MethodGet, endpoint, nil, "Failed to list products")
	if err != nil {
		return "", err
	}

	return renderList(dataList(env), listRender{
		empty:  "No products found.",
		header: func(n int) string { return fmt.Sprintf("Found %d product(s):\n", n) },
		line:   renderProductLine("Qty"),
	}), nil
}

// GetProduct describes one product
func (t *InventoryTools) GetProduct(ctx context.Context, args ProductRefArgs) (string, error) {
	endpoint := productPath(productsPath, args.ProductIdentifier)
	env, err := t.call(ctx, http.MethodGet, endpoint, nil, "Product not found")
	if err != nil {
		return "", err
	}

	p := dataObject(env)
	return fmt.Sprintf("Product: %s, SKU: %s, Type: %s, Quantity: %s, Price: %s, Cost: %s",
		p.StringOr("name", unknownText),
		p.StringOr("sku", noSKUText),
		p.StringOr("type", unknownText),
		p.Count("quantity"),
		currencyField(p, "price"),
		currencyField(p, "cost")), nil
}

// DeleteProduct removes a product
func (t *InventoryTools) DeleteProduct(ctx context.Context, args ProductRefArgs) (string, error) {
	endpoint := productPath(productsPath, args.ProductIdentifier)
	if _, err := t.call(ctx, http.MethodDelete, endpoint, nil, "Failed to delete product"); err != nil {
		return "", err
	}
	return fmt.Sprintf("Successfully deleted product '%s'.", args.ProductIdentifier), nil
}
