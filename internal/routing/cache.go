package routing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kilat-Pet-Delivery/service-estimate/internal/domain/quote"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RouteCache stores successful route lookups.
type RouteCache interface {
	// Get returns the cached route and true on a hit.
	Get(ctx context.Context, key string) (quote.RouteResult, bool, error)
	// Set stores a route under key.
	Set(ctx context.Context, key string, route quote.RouteResult) error
}

// CachingProvider serves repeat lookups from a RouteCache.
// Cache faults are logged and the wrapped provider is used instead.
type CachingProvider struct {
	next   quote.RouteProvider
	cache  RouteCache
	logger *zap.Logger
}

// NewCachingProvider creates a new CachingProvider.
func NewCachingProvider(next quote.RouteProvider, cache RouteCache, logger *zap.Logger) *CachingProvider {
	return &CachingProvider{next: next, cache: cache, logger: logger}
}

// Route implements quote.RouteProvider.
func (p *CachingProvider) Route(ctx context.Context, origin, destination string) (quote.RouteResult, error) {
	key := CacheKey(origin, destination)

	route, hit, err := p.cache.Get(ctx, key)
	if err != nil {
		p.logger.Warn("route cache read failed", zap.Error(err))
	} else if hit {
		return route, nil
	}

	route, err = p.next.Route(ctx, origin, destination)
	if err != nil {
		return quote.RouteResult{}, err
	}

	if err := p.cache.Set(ctx, key, route); err != nil {
		p.logger.Warn("route cache write failed", zap.Error(err))
	}
	return route, nil
}

// CacheKey derives a case-insensitive key for an address pair.
func CacheKey(origin, destination string) string {
	normalized := strings.ToLower(strings.TrimSpace(origin)) + "\n" + strings.ToLower(strings.TrimSpace(destination))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// RedisRouteCache stores routes as JSON strings with a TTL.
type RedisRouteCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisRouteCache creates a new RedisRouteCache.
func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{client: client, prefix: "estimate:route:", ttl: ttl}
}

// Get implements RouteCache.
func (c *RedisRouteCache) Get(ctx context.Context, key string) (quote.RouteResult, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return quote.RouteResult{}, false, nil
	}
	if err != nil {
		return quote.RouteResult{}, false, fmt.Errorf("redis get: %w", err)
	}

	var route quote.RouteResult
	if err := json.Unmarshal(raw, &route); err != nil {
		return quote.RouteResult{}, false, fmt.Errorf("decode cached route: %w", err)
	}
	return route, true, nil
}

// Set implements RouteCache.
func (c *RedisRouteCache) Set(ctx context.Context, key string, route quote.RouteResult) error {
	raw, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("encode route: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
