// internal/core/ports/inventory_api.go
package ports

import (
	"context"
	"encoding/json"

	"github.com/ammerola/inventory-voice/internal/core/domain"
)

// InventoryAPI is the outbound port to the remote inventory service.
// Call never returns an error: transport faults come back as a failed Result.
type InventoryAPI interface {
	Call(ctx context.Context, method, endpoint string, body any) domain.Result
}

// ToolRegistry is the inbound port used by the runtime-facing surfaces
type ToolRegistry interface {
	Definitions() []domain.Tool
	Instructions() string
	Invoke(ctx context.Context, name string, args json.RawMessage) (string, error)
}
