package store

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/GregMSThompson/sales-weather/internal/metrics"
	"github.com/GregMSThompson/sales-weather/internal/models"
	"github.com/GregMSThompson/sales-weather/pkg/logger"
)

type source interface {
	SalesWeather(ctx context.Context) ([]models.SalesWeatherRecord, error)
	JapanSales(ctx context.Context) ([]models.SalesRecord, error)
	TokyoWeather(ctx context.Context) ([]models.WeatherRecord, error)
}

var allQueries = []string{QuerySalesWeather, QueryJapanSales, QueryTokyoWeather}

// CachedSource memoizes every query of the wrapped source for the lifetime of
// the process. Results are shared snapshots: callers must not modify them.
// Concurrent misses for the same key share one upstream call, which is not
// tied to any single caller's cancellation. Failures are not cached, so the
// next call retries.
type CachedSource struct {
	next    source
	q       Queries
	mu      sync.RWMutex
	entries map[string]any
	// gens is bumped on invalidation; a load only stores its result if the
	// generation it started under is still current.
	gens  map[string]uint64
	group singleflight.Group
}

func NewCachedSource(next source, q Queries) *CachedSource {
	return &CachedSource{
		next:    next,
		q:       q,
		entries: make(map[string]any),
		gens:    make(map[string]uint64),
	}
}

// CacheKey is the memoization key of a query: its name plus every parameter.
func (c *CachedSource) CacheKey(query string) string {
	return fmt.Sprintf("%s%v", query, c.q.params(query))
}

func (c *CachedSource) SalesWeather(ctx context.Context) ([]models.SalesWeatherRecord, error) {
	return memoize(ctx, c, QuerySalesWeather, c.next.SalesWeather)
}

func (c *CachedSource) JapanSales(ctx context.Context) ([]models.SalesRecord, error) {
	return memoize(ctx, c, QueryJapanSales, c.next.JapanSales)
}

func (c *CachedSource) TokyoWeather(ctx context.Context) ([]models.WeatherRecord, error) {
	return memoize(ctx, c, QueryTokyoWeather, c.next.TokyoWeather)
}

// Invalidate drops the cached results of the named queries. Loads already in
// flight still answer their callers but are not stored.
func (c *CachedSource) Invalidate(queries ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, q := range queries {
		key := c.CacheKey(q)
		c.gens[key]++
		delete(c.entries, key)
		c.group.Forget(key)
	}
}

func (c *CachedSource) InvalidateAll() {
	c.Invalidate(allQueries...)
}

func memoize[T any](ctx context.Context, c *CachedSource, query string, load func(context.Context) (T, error)) (T, error) {
	key := c.CacheKey(query)

	c.mu.RLock()
	v, ok := c.entries[key]
	gen := c.gens[key]
	c.mu.RUnlock()
	if ok {
		metrics.CacheLookupsTotal.WithLabelValues(query, "hit").Inc()
		return v.(T), nil
	}
	metrics.CacheLookupsTotal.WithLabelValues(query, "miss").Inc()

	// keeps the logger, drops the first caller's cancellation
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		out, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gens[key] == gen {
			c.entries[key] = out
		}
		c.mu.Unlock()
		return out, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		logger.FromContext(ctx).Debug("query result cached", "query", query, "shared", res.Shared)
		return res.Val.(T), nil
	}
}
