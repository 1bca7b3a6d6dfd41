//go:build e2e
// +build e2e

package e2e_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

const lowStockThreshold = 10

type fakeProduct struct {
	ID            string            `json:"_id"`
	Name          string            `json:"name"`
	SKU           string            `json:"sku"`
	Type          string            `json:"type"`
	Quantity      int               `json:"quantity"`
	Price         float64           `json:"price"`
	Cost          float64           `json:"cost"`
	CostBreakdown []json.RawMessage `json:"costBreakdown,omitempty"`
}

// fakeInventory is a small in-memory inventory service speaking the
// {success, data, error} envelope.
type fakeInventory struct {
	mu       sync.Mutex
	products []*fakeProduct
	hits     map[string]int
}

func newFakeInventory() (*fakeInventory, *httptest.Server) {
	f := &fakeInventory{hits: make(map[string]int)}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/products", f.createProduct)
	mux.HandleFunc("GET /api/products", f.listProducts)
	mux.HandleFunc("GET /api/products/{ref}", f.getProduct)
	mux.HandleFunc("POST /api/sales", f.recordSale)
	mux.HandleFunc("GET /api/analytics/summary", f.summary)
	mux.HandleFunc("GET /api/analytics/low-stock", f.lowStock)

	return f, httptest.NewServer(mux)
}

func (f *fakeInventory) summaryHits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits["summary"]
}

func (f *fakeInventory) find(ref string) *fakeProduct {
	for _, p := range f.products {
		if p.ID == ref || strings.EqualFold(p.SKU, ref) || strings.EqualFold(p.Name, ref) {
			return p
		}
	}
	return nil
}

func (f *fakeInventory) createProduct(w http.ResponseWriter, r *http.Request) {
	var p fakeProduct
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, "Invalid product")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	p.ID = fmt.Sprintf("p%d", len(f.products)+1)
	if p.SKU == "" {
		p.SKU = fmt.Sprintf("GEN-%03d", len(f.products)+1)
	}
	f.products = append(f.products, &p)
	writeEnvelope(w, http.StatusCreated, p, "")
}

func (f *fakeInventory) listProducts(w http.ResponseWriter, r *http.Request) {
	search := strings.ToLower(r.URL.Query().Get("search"))

	f.mu.Lock()
	defer f.mu.Unlock()

	matches := []fakeProduct{}
	for _, p := range f.products {
		if search == "" || strings.Contains(strings.ToLower(p.Name), search) || strings.Contains(strings.ToLower(p.SKU), search) {
			matches = append(matches, *p)
		}
	}
	writeEnvelope(w, http.StatusOK, matches, "")
}

func (f *fakeInventory) getProduct(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.find(r.PathValue("ref"))
	if p == nil {
		writeEnvelope(w, http.StatusNotFound, nil, "Product not found")
		return
	}
	writeEnvelope(w, http.StatusOK, *p, "")
}

func (f *fakeInventory) recordSale(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductName string   `json:"productName"`
		Quantity    int      `json:"quantity"`
		SellPrice   *float64 `json:"sellPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, "Invalid sale")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.find(req.ProductName)
	switch {
	case p == nil:
		writeEnvelope(w, http.StatusNotFound, nil, "Product not found")
		return
	case req.Quantity > p.Quantity:
		writeEnvelope(w, http.StatusBadRequest, nil, "Insufficient stock")
		return
	}

	price := p.Price
	if req.SellPrice != nil {
		price = *req.SellPrice
	}
	p.Quantity -= req.Quantity

	writeEnvelope(w, http.StatusCreated, map[string]any{
		"totalSaleValue": price * float64(req.Quantity),
		"profit":         (price - p.Cost) * float64(req.Quantity),
		"productId":      map[string]any{"name": p.Name},
	}, "")
}

func (f *fakeInventory) summary(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.hits["summary"]++
	var value float64
	low := 0
	for _, p := range f.products {
		value += p.Price * float64(p.Quantity)
		if p.Quantity <= lowStockThreshold {
			low++
		}
	}

	writeEnvelope(w, http.StatusOK, map[string]any{
		"totalProducts": len(f.products),
		"totalValue":    value,
		"lowStockCount": low,
	}, "")
}

func (f *fakeInventory) lowStock(w http.ResponseWriter, r *http.Request) {
	threshold := lowStockThreshold
	fmt.Sscanf(r.URL.Query().Get("threshold"), "%d", &threshold)

	f.mu.Lock()
	defer f.mu.Unlock()

	low := []fakeProduct{}
	for _, p := range f.products {
		if p.Quantity <= threshold {
			low = append(low, *p)
		}
	}
	writeEnvelope(w, http.StatusOK, low, "")
}

func writeEnvelope(w http.ResponseWriter, status int, data any, errMsg string) {
	body := map[string]any{"success": errMsg == ""}
	if data != nil {
		body["data"] = data
	}
	if errMsg != "" {
		body["error"] = errMsg
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
