package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

// Cache implements ports.CatalogCache with one JSON value per mood.
type Cache struct {
	rdb redis.Cmdable
}

func NewCache(rdb redis.Cmdable) *Cache {
	return &Cache{rdb: rdb}
}

func songsKey(mood domain.Mood) string {
	return keyPrefix + "songs:" + string(mood)
}

func (c *Cache) Get(ctx context.Context, mood domain.Mood) ([]domain.Song, bool, error) {
	data, err := c.rdb.Get(ctx, songsKey(mood)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get songs: %w", err)
	}
	var songs []domain.Song
	if err := json.Unmarshal(data, &songs); err != nil {
		return nil, false, fmt.Errorf("decode cached songs: %w", err)
	}
	return songs, true, nil
}

func (c *Cache) Set(ctx context.Context, mood domain.Mood, songs []domain.Song, ttl time.Duration) error {
	data, err := json.Marshal(songs)
	if err != nil {
		return fmt.Errorf("encode songs: %w", err)
	}
	if err := c.rdb.Set(ctx, songsKey(mood), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set songs: %w", err)
	}
	return nil
}
