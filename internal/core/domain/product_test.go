package domain_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/inventory-voice/internal/core/domain"
)

func TestParseCostBreakdown(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		want      string
		wantError bool
	}{
		{
			name: "ordered_entries",
			text: `[{"category":"Material","amount":30},{"category":"Embroidery","amount":15},{"category":"End Stitching","amount":8},{"category":"Printing","amount":12}]`,
			want: `[{"category":"Material","amount":30},{"category":"Embroidery","amount":15},{"category":"End Stitching","amount":8},{"category":"Printing","amount":12}]`,
		},
		{
			name: "decimal_amounts_unchanged",
			text: `[{"category":"Material","amount":20.75}]`,
			want: `[{"category":"Material","amount":20.75}]`,
		},
		{
			name: "string_amount_stays_string",
			text: `[{"category":"Material","amount":"20"}]`,
			want: `[{"category":"Material","amount":"20"}]`,
		},
		{
			name: "extra_fields_kept",
			text: `[{"category":"Material","amount":20,"note":"silk"}]`,
			want: `[{"category":"Material","amount":20,"note":"silk"}]`,
		},
		{
			name: "missing_amount_kept",
			text: `[{"category":"Material"}]`,
			want: `[{"category":"Material"}]`,
		},
		{
			name: "empty_list",
			text: ` [] `,
			want: `[]`,
		},
		{
			name:      "not_json",
			text:      `Material 20, Embroidery 10`,
			wantError: true,
		},
		{
			name:      "object_instead_of_list",
			text:      `{"category":"Material","amount":20}`,
			wantError: true,
		},
		{
			name:      "null",
			text:      `null`,
			wantError: true,
		},
		{
			name:      "trailing_garbage",
			text:      `[{"category":"Material","amount":20}] extra`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := domain.ParseCostBreakdown(tt.text)
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidCostBreakdown))
				return
			}
			require.NoError(t, err)

			data, err := json.Marshal(entries)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestParseCostBreakdown_KeepsNumberText(t *testing.T) {
	entries, err := domain.ParseCostBreakdown(`[{"category":"Printing","amount":12.50}]`)
	require.NoError(t, err)

	data, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.Equal(t, `[{"amount":12.50,"category":"Printing"}]`, string(data))
}

func TestEnumerations(t *testing.T) {
	assert.Equal(t, []string{"bed-covers", "cushion-covers", "sarees", "towels"}, domain.ProductTypes())
	assert.Equal(t, []string{"today", "week", "month", "2months", "year", "all"}, domain.Periods())
}

func TestToolError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", domain.NewToolError("Search failed: %s", "timeout"))

	toolErr, ok := domain.IsToolError(err)
	require.True(t, ok)
	assert.Equal(t, "Search failed: timeout", toolErr.Message)

	_, ok = domain.IsToolError(errors.New("plain"))
	assert.False(t, ok)
}
