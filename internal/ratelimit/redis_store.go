package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a Store backed by Redis, for deployments running
// more than one API instance. Window expiry rides on key TTLs, so
// ResetExpired is a no-op.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client, prefix: "ratelimit:"}
}

func (s *redisStore) Increment(ctx context.Context, identifier, bucket string, window time.Duration) (int, time.Time, error) {
	key := s.prefix + storeKey(identifier, bucket)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, err
		}
	}

	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, err
	}
	if ttl < 0 {
		// Key exists without a TTL, most likely an interrupted first
		// increment. Re-arm the window rather than leaving it unbounded.
		ttl = window
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, err
		}
	}
	return int(count), time.Now().Add(ttl), nil
}

func (s *redisStore) Get(ctx context.Context, identifier, bucket string) (int, time.Time, error) {
	key := s.prefix + storeKey(identifier, bucket)

	count, err := s.client.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, time.Time{}, nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}

	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, err
	}
	if ttl < 0 {
		return 0, time.Time{}, nil
	}
	return count, time.Now().Add(ttl), nil
}

func (s *redisStore) ResetExpired(ctx context.Context) error {
	return nil
}
