package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

// SessionStore implements ports.SessionStore; expiry is left to Redis.
type SessionStore struct {
	rdb redis.Cmdable
}

func NewSessionStore(rdb redis.Cmdable) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func sessionKey(token string) string {
	return keyPrefix + "session:" + token
}

func (s *SessionStore) Create(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, sessionKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *SessionStore) Lookup(ctx context.Context, token string) (int64, error) {
	id, err := s.rdb.Get(ctx, sessionKey(token)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("redis get session: %w", err)
	}
	return id, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
