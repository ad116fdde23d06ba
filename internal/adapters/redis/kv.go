package rediskv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// KV is the durable key-value slot on Redis. Values are stored without a
// TTL; the only consumer is the session mirror, which owns its lifecycle.
type KV struct{ c *redis.Client }

func New(addr, pass string, db int) *KV {
	return &KV{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := k.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	return k.c.Set(ctx, key, value, 0).Err()
}

func (k *KV) Remove(ctx context.Context, key string) error {
	return k.c.Del(ctx, key).Err()
}
