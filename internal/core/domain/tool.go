// internal/core/domain/tool.go
package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownTool is returned when the runtime asks for a tool that is not registered
var ErrUnknownTool = errors.New("unknown tool")

// ToolHandler runs one tool with its raw JSON arguments
type ToolHandler func(ctx context.Context, args json.RawMessage) (string, error)

// Tool represents a function that the voice runtime can invoke during a
// conversation.
type Tool struct {
	// Name is the unique identifier for the tool (e.g., "record_sale").
	Name string `json:"name"`

	// Description helps the language model decide when to use the tool.
	Description string `json:"description"`

	// Parameters is the JSON schema for the tool's arguments.
	Parameters map[string]any `json:"parameters"`

	// Handler is called when the runtime invokes this tool.
	Handler ToolHandler `json:"-"`
}

// ToolCall represents an invocation of a tool by the runtime
type ToolCall struct {
	// ID matches results back to the call that produced them.
	ID        string
	Name      string
	Arguments json.RawMessage
}

// ToolResult represents the outcome of a tool invocation
type ToolResult struct {
	CallID string
	Result string
	Error  error
}

// ToolError is a failure meant to be narrated to the user as-is
type ToolError struct {
	Message string
}

// NewToolError creates a user-facing tool error
func NewToolError(format string, args ...any) *ToolError {
	return &ToolError{Message: fmt.Sprintf(format, args...)}
}

func (e *ToolError) Error() string {
	return e.Message
}

// IsToolError reports whether err carries a user-facing message
func IsToolError(err error) (*ToolError, bool) {
	var te *ToolError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
