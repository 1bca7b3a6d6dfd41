// internal/adapters/redis_adapter/analytics.go
package redis_a

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ammerola/inventory-voice/internal/core/domain"
	"github.com/ammerola/inventory-voice/internal/core/ports"
)

const analyticsPath = "/api/analytics/"

// Low stock answers drive restocking, so they are always fetched fresh.
var uncachedAnalytics = []string{
	"/api/analytics/low-stock",
}

// AnalyticsCache is a read-through cache in front of the inventory API.
// Only successful analytics reads are stored; any write through it
// drops every cached analytics answer.
// Writes made by other API clients are not seen, so answers can be stale
// for up to the TTL when the inventory has other writers.
type AnalyticsCache struct {
	next   ports.InventoryAPI
	cache  ports.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.InventoryAPI = (*AnalyticsCache)(nil)

// NewAnalyticsCache wraps next with a cache
func NewAnalyticsCache(next ports.InventoryAPI, cache ports.CacheRepository, ttl time.Duration, logger *slog.Logger) *AnalyticsCache {
	return &AnalyticsCache{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "analytics_cache")),
	}
}

// Call serves cacheable reads from Redis and forwards everything else
func (a *AnalyticsCache) Call(ctx context.Context, method, endpoint string, body any) domain.Result {
	if method != http.MethodGet {
		result := a.next.Call(ctx, method, endpoint, body)
		if env, ok := result.Envelope(); ok && env.Succeeded() {
			a.invalidate(ctx)
		}
		return result
	}

	if !cacheable(endpoint) {
		return a.next.Call(ctx, method, endpoint, body)
	}

	key := BuildKey(PrefixAnalytics, endpoint)

	var raw json.RawMessage
	err := a.cache.Get(ctx, key, &raw)
	switch {
	case err == nil:
		if env, decodeErr := domain.DecodeEnvelope(raw); decodeErr == nil {
			return domain.Success(env)
		}
		a.logger.WarnContext(ctx, "discarding unreadable cache entry", slog.String("key", key))
	case !errors.Is(err, ErrCacheMiss):
		a.logger.WarnContext(ctx, "cache unavailable, calling API directly",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}

	result := a.next.Call(ctx, method, endpoint, body)
	env, ok := result.Envelope()
	if !ok || !env.Succeeded() {
		return result
	}

	if err := a.cache.SetWithTTL(ctx, key, json.RawMessage(env.Raw()), a.ttl); err != nil {
		a.logger.WarnContext(ctx, "failed to cache analytics response",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
	return result
}

func (a *AnalyticsCache) invalidate(ctx context.Context) {
	pattern := BuildKey(PrefixAnalytics, "*")
	if err := a.cache.DeletePattern(ctx, pattern); err != nil {
		a.logger.WarnContext(ctx, "failed to invalidate analytics cache",
			slog.String("pattern", pattern),
			slog.String("error", err.Error()))
	}
}

func cacheable(endpoint string) bool {
	if !strings.HasPrefix(endpoint, analyticsPath) {
		return false
	}
	for _, prefix := range uncachedAnalytics {
		if strings.HasPrefix(endpoint, prefix) {
			return false
		}
	}
	return true
}
