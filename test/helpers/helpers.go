// test/helpers/helpers.go
package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/inventory-voice/internal/pkg/config"
)

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestRedis creates an in-memory Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:          "inventory-voice-test",
			Environment:   "test",
			Version:       "test",
			LogLevel:      "debug",
			LogFormat:     "text",
			LogSampleRate: 1,
			Debug:         true,
		},
		InventoryAPI: config.InventoryAPIConfig{
			BaseURL: "http://localhost:3000",
			Timeout: 5 * time.Second,
		},
		Cache: config.CacheConfig{
			Enabled: false,
			TTL:     time.Minute,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			PoolSize: 10,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			RequestIDHeader:   "X-Request-ID",
		},
		Server: config.ServerConfig{
			Host:            "localhost",
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			MaxMessageBytes: 64 * 1024,
		},
	}
}

// RecordedRequest is one request received by a FakeInventoryAPI
type RecordedRequest struct {
	Method    string
	Path      string
	RawQuery  string
	RequestID string
	Body      map[string]any
}

// FakeInventoryAPI is an httptest server answering every request with a
// canned envelope and recording what it received.
type FakeInventoryAPI struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	response []byte
	requests []RecordedRequest
}

// NewFakeInventoryAPI starts a fake API that answers with the given envelope
func NewFakeInventoryAPI(t testing.TB, envelope any) *FakeInventoryAPI {
	t.Helper()

	f := &FakeInventoryAPI{status: http.StatusOK}
	f.Respond(t, http.StatusOK, envelope)

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := RecordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			RawQuery:  r.URL.RawQuery,
			RequestID: r.Header.Get("X-Request-ID"),
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}

		f.mu.Lock()
		f.requests = append(f.requests, rec)
		status, body := f.status, f.response
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(f.Close)

	return f
}

// Respond replaces the canned response. A string envelope is sent verbatim.
func (f *FakeInventoryAPI) Respond(t testing.TB, status int, envelope any) {
	t.Helper()

	var body []byte
	switch v := envelope.(type) {
	case string:
		body = []byte(v)
	case []byte:
		body = v
	default:
		data, err := json.Marshal(v)
		require.NoError(t, err, "Failed to encode canned envelope")
		body = data
	}

	f.mu.Lock()
	f.status = status
	f.response = body
	f.mu.Unlock()
}

// Requests returns a copy of every request received so far
func (f *FakeInventoryAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// LastRequest returns the most recent request
func (f *FakeInventoryAPI) LastRequest(t testing.TB) RecordedRequest {
	t.Helper()

	reqs := f.Requests()
	require.NotEmpty(t, reqs, "Fake inventory API received no requests")
	return reqs[len(reqs)-1]
}

// SuccessEnvelope builds {"success": true, "data": data}
func SuccessEnvelope(data any) map[string]any {
	return map[string]any{"success": true, "data": data}
}

// FailureEnvelope builds {"success": false, "error": message}
func FailureEnvelope(message string) map[string]any {
	return map[string]any{"success": false, "error": message}
}

// CreateTestProduct creates a product record as the API returns it
func CreateTestProduct(overrides ...func(map[string]any)) map[string]any {
	product := map[string]any{
		"_id":      "665f1c2e9b1d4a0012345678",
		"name":     "Cotton Bed Cover",
		"sku":      "BC-001",
		"type":     "bed-covers",
		"quantity": 25,
		"price":    50,
		"cost":     30,
	}
	for _, override := range overrides {
		override(product)
	}
	return product
}

// CreateTestProducts creates count distinct products
func CreateTestProducts(count int) []any {
	products := make([]any, 0, count)
	for i := 1; i <= count; i++ {
		products = append(products, CreateTestProduct(func(p map[string]any) {
			p["name"] = fmt.Sprintf("Product %d", i)
			p["sku"] = fmt.Sprintf("SKU-%03d", i)
			p["quantity"] = i
		}))
	}
	return products
}

// CreateTestSales creates count sale records with a nested product
func CreateTestSales(count int) []any {
	sales := make([]any, 0, count)
	for i := 1; i <= count; i++ {
		sales = append(sales, map[string]any{
			"productId":      map[string]any{"name": fmt.Sprintf("Product %d", i)},
			"quantity":       i,
			"totalSaleValue": 50 * i,
			"profit":         20 * i,
		})
	}
	return sales
}
