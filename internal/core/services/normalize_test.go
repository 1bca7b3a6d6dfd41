package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/inventory-voice/test/helpers"
)

func TestQuery_Endpoint(t *testing.T) {
	term := "silk & satin"
	empty := ""

	tests := []struct {
		name  string
		build func() *query
		want  string
	}{
		{
			name:  "no_parameters",
			build: func() *query { return &query{} },
			want:  "/api/products",
		},
		{
			name: "keeps_insertion_order",
			build: func() *query {
				return (&query{}).add("period", "2months").add("sortBy", "profit").addInt("limit", 3)
			},
			want: "/api/products?period=2months&sortBy=profit&limit=3",
		},
		{
			name: "escapes_values",
			build: func() *query {
				return (&query{}).addOpt("search", &term)
			},
			want: "/api/products?search=silk+%26+satin",
		},
		{
			name: "omits_unset_and_empty_values",
			build: func() *query {
				return (&query{}).addOpt("search", nil).addOpt("type", &empty).flag("lowStock", false)
			},
			want: "/api/products",
		},
		{
			name: "flag_is_literal_true",
			build: func() *query {
				return (&query{}).flag("lowStock", true)
			},
			want: "/api/products?lowStock=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.build().endpoint("/api/products"))
		})
	}
}

func TestPayload_OnlySuppliedFields(t *testing.T) {
	name := "Towel"
	empty := ""
	zero := 0
	price := 12.5

	p := payload{}
	p.putString("name", &name)
	p.putString("sku", &empty)
	p.putString("caption", nil)
	p.putInt("quantity", &zero)
	p.putInt("new_quantity", nil)
	p.putFloat("price", &price)
	p.putFloat("cost", nil)

	assert.Equal(t, payload{"name": "Towel", "quantity": 0, "price": 12.5}, p)
}

func TestPayload_PutCostBreakdown(t *testing.T) {
	ctx := context.Background()
	log := helpers.TestLogger()

	forwarded := []struct {
		name string
		text string
		want string
	}{
		{
			name: "keeps_order",
			text: `[{"category":"Material","amount":30},{"category":"Printing","amount":12.5}]`,
			want: `[{"category":"Material","amount":30},{"category":"Printing","amount":12.5}]`,
		},
		{
			name: "string_amount_unchanged",
			text: `[{"category":"Material","amount":"20"}]`,
			want: `[{"category":"Material","amount":"20"}]`,
		},
		{
			name: "extra_fields_unchanged",
			text: `[{"category":"Material","amount":20,"note":"silk"}]`,
			want: `[{"category":"Material","amount":20,"note":"silk"}]`,
		},
		{
			name: "entry_without_amount_unchanged",
			text: `[{"category":"Material"}]`,
			want: `[{"category":"Material"}]`,
		},
	}

	for _, tt := range forwarded {
		t.Run(tt.name, func(t *testing.T) {
			p := payload{}
			p.putCostBreakdown(ctx, log, &tt.text)
			require.Contains(t, p, "costBreakdown")

			data, err := json.Marshal(p["costBreakdown"])
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}

	for _, text := range []string{"not json", `{"category":"Material"}`, "null"} {
		t.Run("invalid_"+text, func(t *testing.T) {
			p := payload{}
			p.putCostBreakdown(ctx, log, &text)
			assert.NotContains(t, p, "costBreakdown")
		})
	}

	t.Run("absent", func(t *testing.T) {
		p := payload{}
		p.putCostBreakdown(ctx, log, nil)
		assert.Empty(t, p)
	})
}

func TestProductPath(t *testing.T) {
	assert.Equal(t, "/api/products/BC-001", productPath(productsPath, "BC-001"))
	assert.Equal(t, "/api/products/Red%20Towel", productPath(productsPath, "Red Towel"))
	assert.Equal(t, "/api/products/quantity/a%2Fb", productPath(quantityPath, "a/b"))
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.Zero, "$0.00"},
		{decimal.RequireFromString("6840.2"), "$6840.20"},
		{decimal.RequireFromString("163"), "$163.00"},
		{decimal.RequireFromString("0.005"), "$0.01"},
		{decimal.RequireFromString("-4.5"), "$-4.50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(tt.in))
		})
	}
}
