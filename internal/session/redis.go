package session

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "sess:"

// RedisStore keeps sessions in Redis with a sliding expiry: every Resolve
// refreshes the TTL so active users stay logged in.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore wraps the given client. The TTL applies to every session.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: clampTTL(ttl)}
}

func (s *RedisStore) Create(ctx context.Context, userID uint64) (string, error) {
	id, err := newID()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, redisPrefix+id, strconv.FormatUint(userID, 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *RedisStore) Resolve(ctx context.Context, id string) (uint64, error) {
	val, err := s.rdb.Get(ctx, redisPrefix+id).Result()
	if err == redis.Nil {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		// A corrupt value is as good as no session.
		_ = s.rdb.Del(ctx, redisPrefix+id).Err()
		return 0, ErrNotFound
	}
	_ = s.rdb.Expire(ctx, redisPrefix+id, s.ttl).Err()
	return userID, nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, redisPrefix+id).Err()
}
