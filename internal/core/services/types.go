// internal/core/services/types.go
package services

import "github.com/ammerola/inventory-voice/internal/core/domain"

// Argument sets decoded from the voice runtime. Optional fields are
// pointers so that "not supplied" and "zero" stay distinguishable.

// AddProductArgs contains parameters for creating a product
type AddProductArgs struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Quantity      int      `json:"quantity"`
	Price         float64  `json:"price"`
	SKU           *string  `json:"sku,omitempty"`
	Cost          *float64 `json:"cost,omitempty"`
	CostBreakdown *string  `json:"cost_breakdown,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Caption       *string  `json:"caption,omitempty"`
}

// UpdateProductArgs contains parameters for editing a product
type UpdateProductArgs struct {
	ProductIdentifier string   `json:"product_identifier"`
	Name              *string  `json:"name,omitempty"`
	SKU               *string  `json:"sku,omitempty"`
	Type              *string  `json:"type,omitempty"`
	Quantity          *int     `json:"quantity,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	Cost              *float64 `json:"cost,omitempty"`
	CostBreakdown     *string  `json:"cost_breakdown,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Caption           *string  `json:"caption,omitempty"`
}

// UpdateInventoryArgs contains parameters for a stock adjustment
type UpdateInventoryArgs struct {
	ProductName    string `json:"product_name"`
	QuantityChange *int   `json:"quantity_change,omitempty"`
	NewQuantity    *int   `json:"new_quantity,omitempty"`
}

// SearchProductsArgs contains parameters for a product search
type SearchProductsArgs struct {
	SearchTerm *string `json:"search_term,omitempty"`
	Type       *string `json:"type,omitempty"`
	LowStock   bool    `json:"low_stock"`
}

// ListProductsArgs contains parameters for listing products
type ListProductsArgs struct {
	Type     *string `json:"type,omitempty"`
	LowStock bool    `json:"low_stock"`
}

// ProductRefArgs identifies a single product
type ProductRefArgs struct {
	ProductIdentifier string `json:"product_identifier"`
}

// RecordSaleArgs contains parameters for recording a sale
type RecordSaleArgs struct {
	ProductName string   `json:"product_name"`
	Quantity    int      `json:"quantity"`
	SellPrice   *float64 `json:"sell_price,omitempty"`
}

// SalesHistoryArgs contains parameters for the sales history query
type SalesHistoryArgs struct {
	ProductName *string `json:"product_name,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Limit       int     `json:"limit"`
}

func (a *SalesHistoryArgs) setDefaults() { a.Limit = 10 }

// RecentSalesArgs contains parameters for the recent sales query
type RecentSalesArgs struct {
	Limit int `json:"limit"`
}

func (a *RecentSalesArgs) setDefaults() { a.Limit = 5 }

// NoArgs is used by tools that take no parameters
type NoArgs struct{}

// PeriodArgs selects an analytics window
type PeriodArgs struct {
	Period string `json:"period"`
}

func (a *PeriodArgs) setDefaults() { a.Period = string(domain.PeriodMonth) }

// MonthlyProfitsArgs contains parameters for the monthly profit series
type MonthlyProfitsArgs struct {
	Months int `json:"months"`
}

func (a *MonthlyProfitsArgs) setDefaults() { a.Months = 6 }

// TopProductsArgs contains parameters for the product ranking
type TopProductsArgs struct {
	Period string `json:"period"`
	SortBy string `json:"sort_by"`
	Limit  int    `json:"limit"`
}

func (a *TopProductsArgs) setDefaults() {
	a.Period = string(domain.PeriodMonth)
	a.SortBy = "revenue"
	a.Limit = 5
}

// LowStockArgs contains parameters for low stock alerts
type LowStockArgs struct {
	Threshold int `json:"threshold"`
}

func (a *LowStockArgs) setDefaults() { a.Threshold = 10 }

// defaulter is implemented by argument sets with non-zero defaults
type defaulter interface {
	setDefaults()
}
