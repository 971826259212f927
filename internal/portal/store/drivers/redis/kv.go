// Package redis implements store.KV on Redis for deployments that run more
// than one portal instance behind a load balancer.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/store"
	"github.com/redis/go-redis/v9"
)

// KV stores values under Prefix+key and relies on Redis expiry.
type KV struct {
	client *redis.Client
	prefix string
}

// NewKV connects using a redis:// or rediss:// URL and pings the server.
func NewKV(ctx context.Context, url, prefix string) (*KV, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &KV{client: client, prefix: prefix}, nil
}

func (k *KV) key(key string) string { return k.prefix + key }

func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := k.client.Get(ctx, k.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	return v, err
}

func (k *KV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return k.client.Set(ctx, k.key(key), value, ttl).Err()
}

func (k *KV) Delete(ctx context.Context, key string) error {
	return k.client.Del(ctx, k.key(key)).Err()
}

// DeleteExpired is a no-op; Redis evicts expired keys itself.
func (k *KV) DeleteExpired(context.Context) (int64, error) { return 0, nil }

// Ping is used by the readiness probe.
func (k *KV) Ping(ctx context.Context) error {
	return k.client.Ping(ctx).Err()
}

func (k *KV) Close() error { return k.client.Close() }

var _ store.KV = (*KV)(nil)
