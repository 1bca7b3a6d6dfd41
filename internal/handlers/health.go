// internal/handlers/health.go
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/ammerola/inventory-voice/internal/pkg/config"
)

// Checker is a dependency that can be probed for readiness
type Checker interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	checks    map[string]Checker
	config    *config.Config
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health handler. checks maps a dependency
// name to its probe.
func NewHealthHandler(checks map[string]Checker, cfg *config.Config, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		checks:    checks,
		config:    cfg,
		logger:    logger.With(slog.String("handler", "health")),
		startTime: time.Now(),
	}
}

// HealthStatus represents the health status of the application
type HealthStatus struct {
	Status      string     `json:"status"`
	Version     string     `json:"version"`
	Environment string     `json:"environment"`
	Uptime      string     `json:"uptime"`
	Timestamp   time.Time  `json:"timestamp"`
	System      SystemInfo `json:"system"`
}

// SystemInfo represents system-level information
type SystemInfo struct {
	GoVersion      string `json:"go_version"`
	NumGoroutines  int    `json:"num_goroutines"`
	NumCPU         int    `json:"num_cpu"`
	MemoryAllocMB  uint64 `json:"memory_alloc_mb"`
	MemorySysMB    uint64 `json:"memory_sys_mb"`
	GCPauseTotalMs uint64 `json:"gc_pause_total_ms"`
	NumGC          uint32 `json:"num_gc"`
}

// ServiceInfo represents the status of a dependency
type ServiceInfo struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	ResponseTime string `json:"response_time,omitempty"`
}

// ReadinessStatus is the /ready response body
type ReadinessStatus struct {
	Ready    bool                   `json:"ready"`
	Services map[string]ServiceInfo `json:"services"`
}

// Health handles the /health endpoint. It only reports liveness; the
// inventory API is probed by /ready.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	health := HealthStatus{
		Status:      "healthy",
		Version:     h.config.App.Version,
		Environment: h.config.App.Environment,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:   time.Now(),
		System:      h.getSystemInfo(),
	}

	h.write(r.Context(), w, http.StatusOK, health)
}

// Readiness handles the /ready endpoint
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := ReadinessStatus{
		Ready:    true,
		Services: make(map[string]ServiceInfo, len(h.checks)),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := h.check(ctx, name, h.checks[name])
		if info.Status != "ready" {
			status.Ready = false
		}
		status.Services[name] = info
	}

	statusCode := http.StatusOK
	if !status.Ready {
		statusCode = http.StatusServiceUnavailable
	}

	h.write(ctx, w, statusCode, status)
}

func (h *HealthHandler) check(ctx context.Context, name string, c Checker) ServiceInfo {
	start := time.Now()

	if err := c.Ping(ctx); err != nil {
		h.logger.ErrorContext(ctx, "readiness check failed",
			slog.String("service", name),
			slog.String("error", err.Error()))
		return ServiceInfo{Status: "not ready", Message: err.Error()}
	}

	return ServiceInfo{Status: "ready", ResponseTime: time.Since(start).String()}
}

func (h *HealthHandler) write(ctx context.Context, w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.ErrorContext(ctx, "failed to encode health response",
			slog.String("error", err.Error()))
	}
}

// getSystemInfo returns system-level information
func (h *HealthHandler) getSystemInfo() SystemInfo {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return SystemInfo{
		GoVersion:      runtime.Version(),
		NumGoroutines:  runtime.NumGoroutine(),
		NumCPU:         runtime.NumCPU(),
		MemoryAllocMB:  memStats.Alloc / 1024 / 1024,
		MemorySysMB:    memStats.Sys / 1024 / 1024,
		GCPauseTotalMs: memStats.PauseTotalNs / 1000 / 1000,
		NumGC:          memStats.NumGC,
	}
}
