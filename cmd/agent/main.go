// cmd/agent/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/inventory-voice/internal/adapters/inventoryapi"
	redis_a "github.com/ammerola/inventory-voice/internal/adapters/redis_adapter"
	"github.com/ammerola/inventory-voice/internal/core/ports"
	"github.com/ammerola/inventory-voice/internal/core/services"
	"github.com/ammerola/inventory-voice/internal/handlers"
	"github.com/ammerola/inventory-voice/internal/handlers/middleware"
	"github.com/ammerola/inventory-voice/internal/pkg/config"
	"github.com/ammerola/inventory-voice/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("info", "json", 1)

	slogger.Info("starting inventory voice agent",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if Version != "dev" {
		cfg.App.Version = Version
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat, cfg.App.LogSampleRate)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
		slog.Float64("log_sample_rate", cfg.App.LogSampleRate),
		slog.String("inventory_api", cfg.InventoryAPI.BaseURL),
		slog.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	ctx := context.Background()

	deps, err := initializeDependencies(ctx, cfg, slogger.Logger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server", slog.String("address", cfg.GetServerAddress()))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	redisClient     *redis.Client
	registry        *services.Registry
	toolHandler     *handlers.ToolHandler
	realtimeHandler *handlers.RealtimeHandler
	healthHandler   *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.redisClient != nil {
		d.redisClient.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	client := inventoryapi.NewClient(inventoryapi.Config{
		BaseURL:         cfg.InventoryAPI.BaseURL,
		Timeout:         cfg.InventoryAPI.Timeout,
		RequestIDHeader: cfg.Security.RequestIDHeader,
	}, logger)

	checks := map[string]handlers.Checker{"inventory_api": client}

	var api ports.InventoryAPI = client
	if cfg.Cache.Enabled {
		logger.Info("connecting to Redis", slog.String("address", cfg.GetRedisAddress()))

		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.GetRedisAddress(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			PoolTimeout:  cfg.Redis.PoolTimeout,
		})

		if err := redisClient.Ping(ctx).Err(); err != nil {
			redisClient.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		deps.redisClient = redisClient

		cache := redis_a.NewCache(redisClient, cfg.Cache.TTL, logger)
		api = redis_a.NewAnalyticsCache(client, cache, cfg.Cache.TTL, logger)
		checks["redis"] = cache
	}

	tools := services.NewInventoryTools(api, logger)
	deps.registry = services.NewRegistry(tools, logger)

	deps.toolHandler = handlers.NewToolHandler(deps.registry, logger, cfg.Server.MaxMessageBytes)
	deps.realtimeHandler = handlers.NewRealtimeHandler(deps.registry, logger, cfg.Security.AllowedOrigins, cfg.Server.MaxMessageBytes)
	deps.healthHandler = handlers.NewHealthHandler(checks, cfg, logger)

	logger.Info("all dependencies initialized successfully",
		slog.Int("tools", len(deps.registry.Definitions())))
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, slogger *logger.Logger) *http.Server {
	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        newRouter(cfg, deps, slogger),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}
}

// newRouter registers every route behind the middleware chain
func newRouter(cfg *config.Config, deps *dependencies, slogger *logger.Logger) http.Handler {
	mux := http.NewServeMux()
	registerRoutes(mux, deps, cfg)

	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(slogger.Logger),
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Logger(slogger),
	}
	if cfg.Security.SecureHeaders {
		chain = append(chain, middleware.SecureHeaders)
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		chain = append(chain, middleware.CORS(cfg.Security.AllowedOrigins))
	}
	if cfg.Security.RateLimitRequests > 0 {
		chain = append(chain, middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration))
	}

	return middleware.Chain(mux, chain...)
}

func registerRoutes(mux *http.ServeMux, deps *dependencies, cfg *config.Config) {
	apiV1 := "/api/v1"

	if cfg.Server.EnableHealthCheck {
		mux.HandleFunc("GET /health", deps.healthHandler.Health)
		mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)
		mux.HandleFunc("GET "+apiV1+"/health", deps.healthHandler.Health)
	}

	mux.HandleFunc("GET "+apiV1+"/tools", deps.toolHandler.ListTools)
	mux.HandleFunc("POST "+apiV1+"/tools/{name}", deps.toolHandler.InvokeTool)
	mux.HandleFunc("GET "+apiV1+"/realtime", deps.realtimeHandler.ServeWS)
}
