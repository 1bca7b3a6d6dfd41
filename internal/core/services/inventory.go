// internal/core/services/inventory.go
package services

import (
	"context"
	"log/slog"

	"github.com/ammerola/inventory-voice/internal/core/domain"
	"github.com/ammerola/inventory-voice/internal/core/ports"
)

// Remote API paths
const (
	productsPath  = "/api/products"
	quantityPath  = "/api/products/quantity"
	salesPath     = "/api/sales"
	analyticsPath = "/api/analytics"
)

// InventoryTools implements every voice operation against the remote
// inventory API. It holds no per-call state and is safe for concurrent use.
type InventoryTools struct {
	api    ports.InventoryAPI
	logger *slog.Logger
}

// NewInventoryTools creates the operation catalog
func NewInventoryTools(api ports.InventoryAPI, logger *slog.Logger) *InventoryTools {
	return &InventoryTools{
		api:    api,
		logger: logger.With(slog.String("service", "inventory_tools")),
	}
}

// call performs one exchange and turns any failure into a ToolError whose
// message starts with failurePrefix.
func (t *InventoryTools) call(ctx context.Context, method, endpoint string, body any, failurePrefix string) (domain.Envelope, error) {
	result := t.api.Call(ctx, method, endpoint, body)

	env, ok := result.Envelope()
	if !ok {
		msg, _ := result.Failure()
		return domain.Envelope{}, domain.NewToolError("%s: %s", failurePrefix, msg)
	}

	if !env.Succeeded() {
		t.logger.InfoContext(ctx, "inventory API reported failure",
			slog.String("endpoint", endpoint),
			slog.String("error", env.ErrorMessage()))
		return domain.Envelope{}, domain.NewToolError("%s: %s", failurePrefix, env.ErrorMessage())
	}

	return env, nil
}
