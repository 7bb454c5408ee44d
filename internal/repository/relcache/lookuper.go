// Package relcache caches anime id mappings in a key-value store.
package relcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/saucenao/internal/db"
	"github.com/kailas-cloud/saucenao/internal/domain/source"
)

// KeyPrefix namespaces every key written by the cache.
const KeyPrefix = "saucenao:relations:anidb:"

// DefaultTTL is used when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// store is the consumer interface for the relation cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// lookuper is the wrapped id mapping client.
type lookuper interface {
	Lookup(ctx context.Context, anidbID int) (source.Relations, error)
}

// CachedLookuper caches id mappings, including empty ones, in a key-value store.
// Store failures are logged and fall through to the inner lookuper.
type CachedLookuper struct {
	inner      lookuper
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner lookuper,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedLookuper {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedLookuper{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Lookup returns a cached mapping or asks the inner lookuper.
// Errors from the inner lookuper are returned and never cached.
func (c *CachedLookuper) Lookup(ctx context.Context, anidbID int) (source.Relations, error) {
	key := cacheKey(anidbID)

	if ids, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return ids, nil
	}

	c.incCache("miss")

	ids, err := c.inner.Lookup(ctx, anidbID)
	if err != nil {
		return nil, fmt.Errorf("lookup relations: %w", err)
	}

	c.putToCache(ctx, key, ids)
	return ids, nil
}

func (c *CachedLookuper) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(anidbID int) string {
	return KeyPrefix + strconv.Itoa(anidbID)
}

func (c *CachedLookuper) getFromCache(ctx context.Context, key string) (source.Relations, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached relations", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var ids source.Relations
	if err := json.Unmarshal(data, &ids); err != nil {
		c.logger.Warn("Failed to parse cached relations", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if ids == nil {
		ids = source.Relations{}
	}
	return ids, true
}

func (c *CachedLookuper) putToCache(ctx context.Context, key string, ids source.Relations) {
	if ids == nil {
		ids = source.Relations{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		c.logger.Warn("Failed to encode relations", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache relations", zap.String("key", key), zap.Error(err))
	}
}
