package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisStore struct {
	c   *redis.Client
	ttl time.Duration
}

func NewRedisStore(c *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{c: c, ttl: ttl}
}

func key(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}

func (s *RedisStore) Get(ctx context.Context, sid, field string) (string, error) {
	val, err := s.c.HGet(ctx, key(sid), field).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrMiss
		}
		return "", err
	}
	return val, nil
}

// Set writes the field and refreshes the session expiry atomically.
func (s *RedisStore) Set(ctx context.Context, sid, field, value string) error {
	_, err := s.c.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key(sid), field, value)
		pipe.Expire(ctx, key(sid), s.ttl)
		return nil
	})
	return err
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.c.Del(ctx, key(sid)).Err()
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.c.Ping(ctx).Err()
}
