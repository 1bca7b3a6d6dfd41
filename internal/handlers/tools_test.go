package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/inventory-voice/internal/core/domain"
	"github.com/ammerola/inventory-voice/internal/handlers"
	"github.com/ammerola/inventory-voice/test/helpers"
	"github.com/ammerola/inventory-voice/test/mocks"
)

func TestToolHandler_ListTools(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockToolRegistry(ctrl)
	registry.EXPECT().Definitions().Return([]domain.Tool{
		{
			Name:        "get_inventory_summary",
			Description: "Get a summary of the inventory",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}, "required": []string{}},
		},
	})
	registry.EXPECT().Instructions().Return("You are a helpful AI assistant.")

	handler := handlers.NewToolHandler(registry, helpers.TestLogger(), 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tools", nil)
	w := httptest.NewRecorder()

	handler.ListTools(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response handlers.ToolsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "You are a helpful AI assistant.", response.Instructions)
	require.Len(t, response.Tools, 1)
	assert.Equal(t, "get_inventory_summary", response.Tools[0].Name)
	assert.Equal(t, "object", response.Tools[0].Parameters["type"])
}

func TestToolHandler_InvokeTool(t *testing.T) {
	tests := []struct {
		name           string
		tool           string
		body           string
		setupMocks     func(*mocks.MockToolRegistry)
		expectedStatus int
		expectedKey    string
		expectedValue  string
	}{
		{
			name: "returns_sentence",
			tool: "record_sale",
			body: `{"product_name":"BC-001","quantity":2}`,
			setupMocks: func(m *mocks.MockToolRegistry) {
				m.EXPECT().
					Invoke(gomock.Any(), "record_sale", json.RawMessage(`{"product_name":"BC-001","quantity":2}`)).
					Return("Sale recorded! Sold 2 units of BC-001. Total: $100.00, Profit: $40.00", nil)
			},
			expectedStatus: http.StatusOK,
			expectedKey:    "result",
			expectedValue:  "Sale recorded! Sold 2 units of BC-001. Total: $100.00, Profit: $40.00",
		},
		{
			name: "empty_body_means_no_arguments",
			tool: "get_inventory_summary",
			body: "",
			setupMocks: func(m *mocks.MockToolRegistry) {
				m.EXPECT().
					Invoke(gomock.Any(), "get_inventory_summary", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, args json.RawMessage) (string, error) {
						if len(args) != 0 {
							return "", errors.New("unexpected arguments")
						}
						return "Inventory summary: 3 products.", nil
					})
			},
			expectedStatus: http.StatusOK,
			expectedKey:    "result",
			expectedValue:  "Inventory summary: 3 products.",
		},
		{
			name: "tool_error_is_unprocessable",
			tool: "delete_product",
			body: `{"product_identifier":"ghost"}`,
			setupMocks: func(m *mocks.MockToolRegistry) {
				m.EXPECT().
					Invoke(gomock.Any(), "delete_product", gomock.Any()).
					Return("", domain.NewToolError("Failed to delete product: Product not found"))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedKey:    "error",
			expectedValue:  "Failed to delete product: Product not found",
		},
		{
			name: "unknown_tool_is_not_found",
			tool: "launch_rocket",
			body: `{}`,
			setupMocks: func(m *mocks.MockToolRegistry) {
				m.EXPECT().
					Invoke(gomock.Any(), "launch_rocket", gomock.Any()).
					Return("", fmt.Errorf("%w: launch_rocket", domain.ErrUnknownTool))
			},
			expectedStatus: http.StatusNotFound,
			expectedKey:    "error",
			expectedValue:  "Unknown tool: launch_rocket",
		},
		{
			name: "unexpected_error_is_internal",
			tool: "list_products",
			body: `{}`,
			setupMocks: func(m *mocks.MockToolRegistry) {
				m.EXPECT().
					Invoke(gomock.Any(), "list_products", gomock.Any()).
					Return("", errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedKey:    "error",
			expectedValue:  "Tool invocation failed",
		},
		{
			name:           "malformed_body_is_bad_request",
			tool:           "record_sale",
			body:           `{"product_name":`,
			setupMocks:     func(m *mocks.MockToolRegistry) {},
			expectedStatus: http.StatusBadRequest,
			expectedKey:    "error",
			expectedValue:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			registry := mocks.NewMockToolRegistry(ctrl)
			tt.setupMocks(registry)

			handler := handlers.NewToolHandler(registry, helpers.TestLogger(), 0)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/tools/"+tt.tool, strings.NewReader(tt.body))
			req.SetPathValue("name", tt.tool)
			w := httptest.NewRecorder()

			handler.InvokeTool(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedValue, response[tt.expectedKey])
		})
	}
}

func TestToolHandler_InvokeTool_BodyTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockToolRegistry(ctrl)

	handler := handlers.NewToolHandler(registry, helpers.TestLogger(), 16)

	body := `{"search_term":"` + strings.Repeat("x", 64) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tools/search_products", strings.NewReader(body))
	req.SetPathValue("name", "search_products")
	w := httptest.NewRecorder()

	handler.InvokeTool(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
