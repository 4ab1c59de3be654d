package reconcile

import (
	"time"

	"destination-sync/core/metrics"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCacheEntries is the default schema cache capacity.
	DefaultCacheEntries = 2000
	// DefaultCacheTTL is the default lifetime of a cached schema.
	DefaultCacheTTL = time.Hour
)

// SchemaCache holds remote schemas confirmed by previous reconciliations.
// Entries are scoped to a calling configuration so two configurations never
// share a schema, even for identical event names.
//
// The cache is an optimization only: an empty cache produces the same
// results with more remote calls.
type SchemaCache struct {
	lru     *expirable.LRU[string, CachedSchema]
	sf      singleflight.Group
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewSchemaCache creates a bounded, expiring schema cache.
// Zero values in cfg fall back to DefaultCacheEntries and DefaultCacheTTL.
func NewSchemaCache(cfg CacheConfig, m *metrics.Metrics, logger *zap.Logger) *SchemaCache {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultCacheEntries
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SchemaCache{
		lru:     expirable.NewLRU[string, CachedSchema](cfg.MaxEntries, nil, cfg.TTL),
		metrics: m,
		logger:  logger,
	}
}

// CacheKey builds the cache key for a schema name within a scope.
func CacheKey(scopeID, name string) string {
	return scopeID + ":" + name
}

// Get returns the cached schema for name within scopeID.
// An empty scopeID bypasses the cache and always misses.
func (c *SchemaCache) Get(scopeID, name string) (CachedSchema, bool) {
	if scopeID == "" {
		c.bypass(name)
		return CachedSchema{}, false
	}

	schema, ok := c.lru.Get(CacheKey(scopeID, name))
	if c.metrics != nil {
		if ok {
			c.metrics.CacheHits.Inc()
		} else {
			c.metrics.CacheMisses.Inc()
		}
	}
	return schema, ok
}

// Set stores schema under its Name within scopeID.
// With an empty scopeID the call is a no-op.
func (c *SchemaCache) Set(scopeID string, schema CachedSchema) {
	if scopeID == "" {
		return
	}
	c.lru.Add(CacheKey(scopeID, schema.Name), schema)
}

// Do runs fn at most once at a time per (scopeID, key). Concurrent callers with
// the same scope and key wait for and share the first caller's result.
// Without a scope, fn runs unshared.
func (c *SchemaCache) Do(scopeID, key string, fn func() (CachedSchema, error)) (CachedSchema, error) {
	if scopeID == "" {
		return fn()
	}

	v, err, shared := c.sf.Do(CacheKey(scopeID, key), func() (interface{}, error) {
		return fn()
	})
	if shared {
		c.logger.Debug("Shared in-flight schema reconciliation", zap.String("scope_id", scopeID), zap.String("key", key))
	}
	if err != nil {
		return CachedSchema{}, err
	}
	return v.(CachedSchema), nil
}

// Len returns the number of live entries.
func (c *SchemaCache) Len() int {
	return c.lru.Len()
}

// Purge drops every entry.
func (c *SchemaCache) Purge() {
	c.lru.Purge()
}

func (c *SchemaCache) bypass(name string) {
	if c.metrics != nil {
		c.metrics.CacheBypass.Inc()
	}
	c.logger.Debug("Schema cache bypassed: no scope id configured", zap.String("schema", name))
}
