// internal/handlers/realtime.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ammerola/inventory-voice/internal/core/ports"
	"github.com/ammerola/inventory-voice/internal/pkg/logger"
)

// Realtime message types
const (
	MessageFunctionCall       = "function_call"
	MessageFunctionCallOutput = "function_call_output"
	MessageError              = "error"
)

const realtimeWriteWait = 10 * time.Second

// RealtimeMessage is a frame received from the voice runtime. Arguments may
// arrive either as a JSON-encoded string or as an inline object.
type RealtimeMessage struct {
	Type      string          `json:"type"`
	CallID    string          `json:"call_id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// RealtimeReply is a frame sent back to the voice runtime
type RealtimeReply struct {
	Type   string `json:"type"`
	CallID string `json:"call_id,omitempty"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// RealtimeHandler bridges function calls from a realtime voice session to
// the tool registry over a WebSocket.
type RealtimeHandler struct {
	registry        ports.ToolRegistry
	logger          *slog.Logger
	upgrader        websocket.Upgrader
	maxMessageBytes int64
}

// NewRealtimeHandler creates a new realtime handler
func NewRealtimeHandler(registry ports.ToolRegistry, logger *slog.Logger, allowedOrigins []string, maxMessageBytes int64) *RealtimeHandler {
	if maxMessageBytes <= 0 {
		maxMessageBytes = defaultMaxBodyBytes
	}
	return &RealtimeHandler{
		registry: registry,
		logger:   logger.With(slog.String("handler", "realtime")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		maxMessageBytes: maxMessageBytes,
	}
}

// session serializes writes on one connection
type session struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	logger *slog.Logger
}

func (s *session) send(ctx context.Context, reply RealtimeReply) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(realtimeWriteWait))
	if err := s.conn.WriteJSON(reply); err != nil {
		s.logger.DebugContext(ctx, "failed to write realtime reply",
			slog.String("call_id", reply.CallID),
			slog.String("error", err.Error()))
	}
}

// ServeWS handles GET /api/v1/realtime
func (h *RealtimeHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.WarnContext(r.Context(), "websocket upgrade failed",
			slog.String("error", err.Error()))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(h.maxMessageBytes)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	s := &session{conn: conn, logger: h.logger}
	var wg sync.WaitGroup
	defer wg.Wait()

	h.logger.InfoContext(ctx, "realtime session opened")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.WarnContext(ctx, "realtime session closed unexpectedly",
					slog.String("error", err.Error()))
			} else {
				h.logger.InfoContext(ctx, "realtime session closed")
			}
			cancel()
			return
		}

		var msg RealtimeMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.send(ctx, RealtimeReply{Type: MessageError, Error: "Invalid message"})
			continue
		}

		if msg.Type != MessageFunctionCall {
			h.logger.DebugContext(ctx, "ignoring realtime message",
				slog.String("type", msg.Type))
			continue
		}

		wg.Add(1)
		go func(msg RealtimeMessage) {
			defer wg.Done()
			h.handleCall(ctx, s, msg)
		}(msg)
	}
}

// handleCall runs one function call. Each call is independent; replies are
// matched by call_id and may arrive in any order.
func (h *RealtimeHandler) handleCall(ctx context.Context, s *session, msg RealtimeMessage) {
	ctx = context.WithValue(ctx, logger.ContextKeyCallID, msg.CallID)

	reply := RealtimeReply{Type: MessageFunctionCallOutput, CallID: msg.CallID}

	args, err := callArguments(msg.Arguments)
	if err != nil {
		reply.Error = "Invalid arguments for " + msg.Name
		s.send(ctx, reply)
		return
	}

	result, err := h.registry.Invoke(ctx, msg.Name, args)
	if err != nil {
		status, message := toolFailure(msg.Name, err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "tool invocation failed",
				slog.String("tool", msg.Name),
				slog.String("error", err.Error()))
		}
		reply.Error = message
	} else {
		reply.Output = result
	}

	s.send(ctx, reply)
}

// callArguments unwraps string-encoded arguments
func callArguments(raw json.RawMessage) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return raw, nil
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, err
	}
	return json.RawMessage(encoded), nil
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}
