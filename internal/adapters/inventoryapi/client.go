// internal/adapters/inventoryapi/client.go
package inventoryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/inventory-voice/internal/core/domain"
	"github.com/ammerola/inventory-voice/internal/core/ports"
	"github.com/ammerola/inventory-voice/internal/pkg/logger"
)

// Default transport settings
const (
	DefaultTimeout        = 30 * time.Second
	DefaultConnectTimeout = 10 * time.Second
	maxResponseBytes      = 10 << 20 // 10 MB
)

// Config holds the remote API settings
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	RequestIDHeader string
}

// Client performs one HTTP exchange per call against the inventory API.
// No connection outlives the call that opened it.
type Client struct {
	baseURL         string
	requestIDHeader string
	httpClient      *http.Client
	logger          *slog.Logger
}

var _ ports.InventoryAPI = (*Client)(nil)

// NewClient creates a new inventory API client
func NewClient(cfg Config, log *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	header := cfg.RequestIDHeader
	if header == "" {
		header = "X-Request-ID"
	}

	return &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		requestIDHeader: header,
		httpClient: &http.Client{
			Timeout: timeout,
			// Each exchange dials its own connection and closes it afterwards.
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: DefaultConnectTimeout,
				}).DialContext,
				DisableKeepAlives:     true,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: log.With(slog.String("component", "inventory_api")),
	}
}

// BaseURL returns the configured API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call sends one request and decodes the response envelope. Any fault
// becomes a Failure result; the HTTP status code is not inspected.
func (c *Client) Call(ctx context.Context, method, endpoint string, body any) domain.Result {
	start := time.Now()

	env, err := c.do(ctx, method, endpoint, body)
	if err != nil {
		c.logger.ErrorContext(ctx, "inventory API request failed",
			slog.String("method", method),
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return domain.Failure(err.Error())
	}

	c.logger.DebugContext(ctx, "inventory API request completed",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Bool("success", env.Succeeded()),
		slog.Duration("duration", time.Since(start)))

	return domain.Success(env)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any) (domain.Envelope, error) {
	var reader io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPut) {
		data, err := json.Marshal(body)
		if err != nil {
			return domain.Envelope{}, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("failed to build request: %w", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(c.requestIDHeader, requestID(ctx))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("failed to read response: %w", err)
	}

	env, err := domain.DecodeEnvelope(data)
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err)
	}
	return env, nil
}

// Ping checks that the API root answers at all
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to build ping request: %w", err)
	}
	req.Header.Set(c.requestIDHeader, requestID(ctx))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("inventory API unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("inventory API unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

func requestID(ctx context.Context) string {
	if id := logger.RequestID(ctx); id != "" {
		return id
	}
	return uuid.New().String()
}
