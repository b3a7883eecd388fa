package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "greenbean:session:"

// RedisBackend stores sessions as redis keys expiring with the session
type RedisBackend struct {
	client *redis.Client
}

func NewRedis(addr string, db int) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "connect redis %s", addr)
	}
	return &RedisBackend{client: client}, nil
}

func (b *RedisBackend) Load(ctx context.Context, id string) ([]byte, error) {
	data, err := b.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, errors.Wrap(err, "load session")
}

func (b *RedisBackend) Save(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	return errors.Wrap(b.client.Set(ctx, redisKeyPrefix+id, data, ttl).Err(), "save session")
}

func (b *RedisBackend) Delete(ctx context.Context, id string) error {
	return errors.Wrap(b.client.Del(ctx, redisKeyPrefix+id).Err(), "delete session")
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
