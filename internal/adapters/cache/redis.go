package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(addr, password string, dbIndex int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           dbIndex,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return rdb, nil
}

// RedisCounter keeps fixed-window counters in Redis so several API
// processes share one budget per client.
type RedisCounter struct {
	rdb    *redis.Client
	prefix string
}

var _ Counter = (*RedisCounter)(nil)

func NewRedisCounter(rdb *redis.Client, prefix string) *RedisCounter {
	if prefix == "" {
		prefix = "rate_limit"
	}
	return &RedisCounter{rdb: rdb, prefix: prefix}
}

func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	fullKey := fmt.Sprintf("%s:%s", r.prefix, key)

	count, err := r.rdb.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, 0, err
	}

	if count == 1 {
		if err := r.rdb.Expire(ctx, fullKey, window).Err(); err != nil {
			// a key without expiry would block the client forever
			r.rdb.Del(ctx, fullKey)
			return 0, 0, err
		}
	}

	ttl, err := r.rdb.TTL(ctx, fullKey).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}

	return count, ttl, nil
}

func (r *RedisCounter) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
