// Package cache holds get-or-fetch caches for data that the portal treats
// as immutable for its lifetime, such as user profiles.
//
// Entries are never invalidated or expired. A fetched value stays until
// the process (or the Redis keyspace) is reset.
package cache

import (
	"context"
	"sync"

	"smartride-portal/pkg/metrics"

	"golang.org/x/sync/singleflight"
)

type FetchFunc[V any] func(ctx context.Context) (V, error)

// Cache returns the cached value for key, calling fetch on a miss. Failed
// fetches are not stored.
type Cache[V any] interface {
	GetOrFetch(ctx context.Context, key string, fetch FetchFunc[V]) (V, error)
}

type Memory[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	group   singleflight.Group
}

func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{entries: make(map[string]V)}
}

func (m *Memory[V]) GetOrFetch(ctx context.Context, key string, fetch FetchFunc[V]) (V, error) {
	m.mu.RLock()
	v, ok := m.entries[key]
	m.mu.RUnlock()
	if ok {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return v, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	// Concurrent misses on one key share a single fetch.
	res, err, _ := m.group.Do(key, func() (any, error) {
		m.mu.RLock()
		v, ok := m.entries[key]
		m.mu.RUnlock()
		if ok {
			return v, nil
		}

		v, err := fetch(ctx)
		if err != nil {
			return v, err
		}
		m.mu.Lock()
		m.entries[key] = v
		m.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
