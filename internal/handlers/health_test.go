package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/inventory-voice/internal/adapters/inventoryapi"
	"github.com/ammerola/inventory-voice/internal/handlers"
	"github.com/ammerola/inventory-voice/test/helpers"
)

type checkerFunc func(ctx context.Context) error

func (f checkerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Health(t *testing.T) {
	cfg := helpers.LoadTestConfig()
	failing := checkerFunc(func(context.Context) error { return errors.New("down") })

	handler := handlers.NewHealthHandler(map[string]handlers.Checker{"inventory_api": failing}, cfg, helpers.TestLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.Health(w, req)

	// Liveness does not depend on downstream services
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))

	var status handlers.HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, cfg.App.Environment, status.Environment)
	assert.NotEmpty(t, status.Uptime)
	assert.NotEmpty(t, status.System.GoVersion)
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := checkerFunc(func(context.Context) error { return nil })
	failing := checkerFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name           string
		checks         map[string]handlers.Checker
		expectedStatus int
		expectedReady  bool
		expectedStates map[string]string
	}{
		{
			name:           "all_dependencies_ready",
			checks:         map[string]handlers.Checker{"inventory_api": ok, "redis": ok},
			expectedStatus: http.StatusOK,
			expectedReady:  true,
			expectedStates: map[string]string{"inventory_api": "ready", "redis": "ready"},
		},
		{
			name:           "inventory_api_down",
			checks:         map[string]handlers.Checker{"inventory_api": failing, "redis": ok},
			expectedStatus: http.StatusServiceUnavailable,
			expectedReady:  false,
			expectedStates: map[string]string{"inventory_api": "not ready", "redis": "ready"},
		},
		{
			name:           "no_checks_configured",
			checks:         nil,
			expectedStatus: http.StatusOK,
			expectedReady:  true,
			expectedStates: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.NewHealthHandler(tt.checks, helpers.LoadTestConfig(), helpers.TestLogger())

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			w := httptest.NewRecorder()

			handler.Readiness(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var status handlers.ReadinessStatus
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
			assert.Equal(t, tt.expectedReady, status.Ready)

			states := make(map[string]string, len(status.Services))
			for name, info := range status.Services {
				states[name] = info.Status
			}
			assert.Equal(t, tt.expectedStates, states)
		})
	}
}

func TestHealthHandler_ReadinessProbesInventoryAPI(t *testing.T) {
	api := helpers.NewFakeInventoryAPI(t, helpers.SuccessEnvelope(nil))
	client := inventoryapi.NewClient(inventoryapi.Config{BaseURL: api.URL}, helpers.TestLogger())

	handler := handlers.NewHealthHandler(map[string]handlers.Checker{"inventory_api": client}, helpers.LoadTestConfig(), helpers.TestLogger())

	w := httptest.NewRecorder()
	handler.Readiness(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/", api.LastRequest(t).Path)
}
