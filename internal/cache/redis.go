package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"smartride-portal/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Redis shares the cache between portal instances. Values are stored as
// JSON with no expiry.
type Redis[V any] struct {
	client *redis.Client
	prefix string
	log    *zap.Logger
	group  singleflight.Group
}

func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func NewRedis[V any](client *redis.Client, prefix string, log *zap.Logger) *Redis[V] {
	return &Redis[V]{
		client: client,
		prefix: prefix,
		log:    log.With(zap.String("cache", prefix)),
	}
}

func (c *Redis[V]) GetOrFetch(ctx context.Context, key string, fetch FetchFunc[V]) (V, error) {
	fullKey := c.prefix + ":" + key

	if v, ok := c.get(ctx, fullKey); ok {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return v, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	res, err, _ := c.group.Do(fullKey, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return v, err
		}
		c.set(ctx, fullKey, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// get treats any Redis problem as a miss; the backend stays the source of truth.
func (c *Redis[V]) get(ctx context.Context, key string) (V, bool) {
	var v V
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Cache read failed", zap.Error(err), zap.String("key", key))
		}
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		c.log.Warn("Cache entry unreadable", zap.Error(err), zap.String("key", key))
		return v, false
	}
	return v, true
}

func (c *Redis[V]) set(ctx context.Context, key string, v V) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("Cache entry not encodable", zap.Error(err), zap.String("key", key))
		return
	}
	// SetNX keeps the first stored value if two instances race.
	if err := c.client.SetNX(ctx, key, data, 0).Err(); err != nil {
		c.log.Warn("Cache write failed", zap.Error(err), zap.String("key", key))
	}
}
