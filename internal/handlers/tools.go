// internal/handlers/tools.go
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ammerola/inventory-voice/internal/core/domain"
	"github.com/ammerola/inventory-voice/internal/core/ports"
)

const defaultMaxBodyBytes = 64 << 10

// ToolHandler exposes the tool catalog over plain HTTP
type ToolHandler struct {
	registry     ports.ToolRegistry
	logger       *slog.Logger
	maxBodyBytes int64
}

// NewToolHandler creates a new tool handler
func NewToolHandler(registry ports.ToolRegistry, logger *slog.Logger, maxBodyBytes int64) *ToolHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &ToolHandler{
		registry:     registry,
		logger:       logger.With(slog.String("handler", "tools")),
		maxBodyBytes: maxBodyBytes,
	}
}

// ToolsResponse lists the advertised tools and the instructions that go
// with them
type ToolsResponse struct {
	Instructions string        `json:"instructions"`
	Tools        []domain.Tool `json:"tools"`
}

// ListTools handles GET /api/v1/tools
func (h *ToolHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, ToolsResponse{
		Instructions: h.registry.Instructions(),
		Tools:        h.registry.Definitions(),
	})
}

// InvokeTool handles POST /api/v1/tools/{name}. The body is the tool's JSON
// arguments; an empty body means no arguments.
func (h *ToolHandler) InvokeTool(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := r.PathValue("name")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	body = bytes.TrimSpace(body)
	if len(body) > 0 && !json.Valid(body) {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.registry.Invoke(ctx, name, body)
	if err != nil {
		status, message := toolFailure(name, err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "tool invocation failed",
				slog.String("tool", name),
				slog.String("error", err.Error()))
		}
		respondError(w, h.logger, status, message)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{"result": result})
}

// toolFailure maps an invocation error to a status and the text the runtime
// should narrate.
func toolFailure(name string, err error) (int, string) {
	if toolErr, ok := domain.IsToolError(err); ok {
		return http.StatusUnprocessableEntity, toolErr.Message
	}
	if errors.Is(err, domain.ErrUnknownTool) {
		return http.StatusNotFound, "Unknown tool: " + name
	}
	return http.StatusInternalServerError, "Tool invocation failed"
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"error": message})
}
