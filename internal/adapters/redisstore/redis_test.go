package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
	"github.com/ewilliams-labs/moodtune/internal/core/ports"
)

var (
	_ ports.CatalogCache = (*Cache)(nil)
	_ ports.SessionStore = (*SessionStore)(nil)
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "moodtune:songs:calm", songsKey(domain.MoodCalm))
	assert.Equal(t, "moodtune:session:abc", sessionKey("abc"))
}

// Runs against a live server when MOODTUNE_TEST_REDIS_ADDR is set.
func TestRedis_Integration(t *testing.T) {
	addr := os.Getenv("MOODTUNE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("MOODTUNE_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := NewClient(ctx, addr)
	require.NoError(t, err)
	defer rdb.Close()

	cache := NewCache(rdb)
	mood := domain.Mood("it-" + uuid.NewString())
	_, ok, err := cache.Get(ctx, mood)
	require.NoError(t, err)
	assert.False(t, ok)

	songs := []domain.Song{{Name: "a", URL: "http://a", Mood: domain.MoodCalm, DurationSec: 61}}
	require.NoError(t, cache.Set(ctx, mood, songs, time.Minute))
	got, ok, err := cache.Get(ctx, mood)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, songs, got)

	sessions := NewSessionStore(rdb)
	token := uuid.NewString()
	require.NoError(t, sessions.Create(ctx, token, 42, time.Minute))
	id, err := sessions.Lookup(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	require.NoError(t, sessions.Delete(ctx, token))
	_, err = sessions.Lookup(ctx, token)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
