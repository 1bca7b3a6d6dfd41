//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/ammerola/inventory-voice/internal/adapters/inventoryapi"
	redis_a "github.com/ammerola/inventory-voice/internal/adapters/redis_adapter"
	"github.com/ammerola/inventory-voice/internal/core/services"
	"github.com/ammerola/inventory-voice/internal/handlers"
	"github.com/ammerola/inventory-voice/internal/handlers/middleware"
	"github.com/ammerola/inventory-voice/test/helpers"
)

type VoiceWorkflowE2ESuite struct {
	suite.Suite
	inventory *fakeInventory
	upstream  *httptest.Server
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testRedis *helpers.TestRedis
}

func (s *VoiceWorkflowE2ESuite) SetupSuite() {
	s.testRedis = helpers.SetupTestRedis(s.T())
	s.client = &http.Client{Timeout: 10 * time.Second}
}

func (s *VoiceWorkflowE2ESuite) SetupTest() {
	s.testRedis.Server.FlushAll()
	s.inventory, s.upstream = newFakeInventory()
	s.server = s.startTestServer()
	s.baseURL = s.server.URL + "/api/v1"
}

func (s *VoiceWorkflowE2ESuite) TearDownTest() {
	s.server.Close()
	s.upstream.Close()
}

func (s *VoiceWorkflowE2ESuite) TestSellingFlow() {
	result := s.invokeOK("add_product", map[string]any{
		"name":           "Silk Saree",
		"type":           "sarees",
		"quantity":       12,
		"price":          80,
		"cost":           50,
		"sku":            "SS-001",
		"cost_breakdown": `[{"category":"Silk","amount":40},{"category":"Weaving","amount":10}]`,
	})
	s.Equal("Successfully added 12 units of 'Silk Saree' (SKU: SS-001) to inventory at $80.00 per unit. Cost breakdown: Silk: $40.00, Weaving: $10.00.", result)

	s.Equal("Inventory Summary: 1 products, Total value: $960.00, Low stock items: 0",
		s.invokeOK("get_inventory_summary", nil))

	s.Equal("Sale recorded! Sold 3 units of SS-001. Total: $240.00, Profit: $90.00",
		s.invokeOK("record_sale", map[string]any{"product_name": "SS-001", "quantity": 3}))

	// The sale invalidated the cached summary
	s.Equal("Inventory Summary: 1 products, Total value: $720.00, Low stock items: 1",
		s.invokeOK("get_inventory_summary", nil))

	s.Equal("1 low stock alert(s):\n- Silk Saree (Quantity: 9, SKU: SS-001)\n",
		s.invokeOK("get_low_stock_alerts", nil))

	status, message := s.invoke("record_sale", map[string]any{"product_name": "SS-001", "quantity": 50})
	s.Equal(http.StatusUnprocessableEntity, status)
	s.Equal("Failed to record sale: Insufficient stock", message)
}

func (s *VoiceWorkflowE2ESuite) TestAnalyticsAreCachedBetweenWrites() {
	s.invokeOK("add_product", map[string]any{"name": "Bath Towel", "type": "towels", "quantity": 40, "price": 12})

	first := s.invokeOK("get_inventory_summary", nil)
	second := s.invokeOK("get_inventory_summary", nil)

	s.Equal(first, second)
	s.Equal(1, s.inventory.summaryHits())
}

func (s *VoiceWorkflowE2ESuite) TestUnknownProduct() {
	status, message := s.invoke("get_product", map[string]any{"product_identifier": "Velvet Cushion"})
	s.Equal(http.StatusUnprocessableEntity, status)
	s.Equal("Product not found: Product not found", message)

	s.Equal("No products found matching your search.",
		s.invokeOK("search_products", map[string]any{"search_term": "velvet"}))
}

func (s *VoiceWorkflowE2ESuite) TestRealtimeConcurrentCalls() {
	for i := 1; i <= 3; i++ {
		s.invokeOK("add_product", map[string]any{
			"name": fmt.Sprintf("Cushion Cover %d", i), "type": "cushion-covers", "quantity": 20, "price": 15,
		})
	}

	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(s.baseURL, "http")+"/realtime", nil)
	s.Require().NoError(err)
	resp.Body.Close()
	defer conn.Close()

	var writeMu sync.Mutex
	var wg sync.WaitGroup
	for i := 1; i <= 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			args, _ := json.Marshal(map[string]any{"product_identifier": fmt.Sprintf("Cushion Cover %d", i)})

			writeMu.Lock()
			defer writeMu.Unlock()
			s.NoError(conn.WriteJSON(handlers.RealtimeMessage{
				Type:      handlers.MessageFunctionCall,
				CallID:    fmt.Sprintf("call_%d", i),
				Name:      "get_product",
				Arguments: json.RawMessage(fmt.Sprintf("%q", args)),
			}))
		}(i)
	}
	wg.Wait()

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	outputs := make(map[string]string)
	for len(outputs) < 3 {
		var reply handlers.RealtimeReply
		s.Require().NoError(conn.ReadJSON(&reply))
		s.Empty(reply.Error)
		outputs[reply.CallID] = reply.Output
	}

	for i := 1; i <= 3; i++ {
		s.Contains(outputs[fmt.Sprintf("call_%d", i)], fmt.Sprintf("Product: Cushion Cover %d, SKU: GEN-00%d", i, i))
	}
}

func (s *VoiceWorkflowE2ESuite) TestHealthCheck() {
	resp, err := s.client.Get(s.server.URL + "/ready")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var status handlers.ReadinessStatus
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&status))
	s.True(status.Ready)
	s.Contains(status.Services, "inventory_api")
	s.Contains(status.Services, "redis")
}

// Helper methods

func (s *VoiceWorkflowE2ESuite) startTestServer() *httptest.Server {
	cfg := helpers.LoadTestConfig()
	log := helpers.TestLogger()

	client := inventoryapi.NewClient(inventoryapi.Config{BaseURL: s.upstream.URL}, log)
	cache := redis_a.NewCache(s.testRedis.Client, time.Minute, log)
	api := redis_a.NewAnalyticsCache(client, cache, time.Minute, log)

	registry := services.NewRegistry(services.NewInventoryTools(api, log), log)
	tools := handlers.NewToolHandler(registry, log, cfg.Server.MaxMessageBytes)
	realtime := handlers.NewRealtimeHandler(registry, log, cfg.Security.AllowedOrigins, cfg.Server.MaxMessageBytes)
	health := handlers.NewHealthHandler(map[string]handlers.Checker{"inventory_api": client, "redis": cache}, cfg, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ready", health.Readiness)
	mux.HandleFunc("POST /api/v1/tools/{name}", tools.InvokeTool)
	mux.HandleFunc("GET /api/v1/realtime", realtime.ServeWS)

	return httptest.NewServer(middleware.Chain(mux, middleware.Recovery(log), middleware.RequestID("")))
}

func (s *VoiceWorkflowE2ESuite) invoke(tool string, args map[string]any) (int, string) {
	var body []byte
	if args != nil {
		var err error
		body, err = json.Marshal(args)
		s.Require().NoError(err)
	}

	resp, err := s.client.Post(s.baseURL+"/tools/"+tool, "application/json", bytes.NewReader(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	var out map[string]string
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	if resp.StatusCode == http.StatusOK {
		return resp.StatusCode, out["result"]
	}
	return resp.StatusCode, out["error"]
}

func (s *VoiceWorkflowE2ESuite) invokeOK(tool string, args map[string]any) string {
	status, text := s.invoke(tool, args)
	s.Require().Equal(http.StatusOK, status, text)
	return text
}

func TestVoiceWorkflowE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(VoiceWorkflowE2ESuite))
}
