package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

func TestOrchestrator_Favorites(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	o := newTestOrchestrator(store, nil)

	added, err := o.AddFavorite(ctx, 1, loveSong("beta"))
	require.NoError(t, err)
	assert.True(t, added)
	added, err = o.AddFavorite(ctx, 1, loveSong("beta"))
	require.NoError(t, err)
	assert.False(t, added)

	state, err := o.ToggleFavorite(ctx, 1, loveSong("alpha"))
	require.NoError(t, err)
	assert.True(t, state)

	favs, err := o.Favorites(ctx, 1, "", domain.SortName)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, "alpha", favs[0].Name)
	assert.Equal(t, fixedNow, favs[0].AddedAt)

	favs, err = o.Favorites(ctx, 1, "BET", domain.SortRecent)
	require.NoError(t, err)
	require.Len(t, favs, 1)

	state, err = o.ToggleFavorite(ctx, 1, loveSong("alpha"))
	require.NoError(t, err)
	assert.False(t, state)

	removed, err := o.RemoveFavorite(ctx, 1, loveSong("beta").URL)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = o.RemoveFavorite(ctx, 1, loveSong("beta").URL)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = o.AddFavorite(ctx, 1, domain.Song{Name: "x", URL: "u", Mood: "nope"})
	require.ErrorIs(t, err, domain.ErrInvalidMood)
}

func TestOrchestrator_ShuffledFavorites(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	// intn returning 0 rotates the list: each step swaps i with index 0
	o := newTestOrchestrator(store, nil, WithRandom(func(int) int { return 0 }))
	for _, n := range []string{"a", "b", "c"} {
		_, err := o.AddFavorite(ctx, 3, loveSong(n))
		require.NoError(t, err)
	}

	songs, err := o.ShuffledFavorites(ctx, 3)
	require.NoError(t, err)
	names := make([]string, len(songs))
	for i, s := range songs {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"b", "c", "a"}, names)

	stored, err := o.Favorites(ctx, 3, "", "")
	require.NoError(t, err)
	assert.Equal(t, "a", stored[0].Name, "shuffle must not reorder the stored favorites")
}

func TestOrchestrator_HistoryAndStats(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	clock := fixedNow
	o := newTestOrchestrator(store, nil, WithClock(func() time.Time { return clock }))

	require.NoError(t, o.RecordPlay(ctx, 5, loveSong("one")))
	clock = clock.Add(time.Minute)
	require.NoError(t, o.RecordPlay(ctx, 5, loveSong("two")))
	clock = clock.Add(time.Minute)
	require.NoError(t, o.RecordPlay(ctx, 5, loveSong("one")))

	store.durations[loveSong("two").URL] = 180

	h, err := o.History(ctx, 5)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, "one", h[0].Name)
	assert.Equal(t, fixedNow.Add(2*time.Minute), h[0].PlayedAt)
	assert.Equal(t, 180.0, h[1].DurationSec)

	stats, err := o.Stats(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSongs)
	assert.Equal(t, "love", stats.TopMood)
	assert.Equal(t, 1, stats.Streak)

	empty, err := o.History(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, empty)

	require.ErrorIs(t, o.RecordPlay(ctx, 5, domain.Song{Mood: domain.MoodSad}), domain.ErrInvalidArgument)
}
