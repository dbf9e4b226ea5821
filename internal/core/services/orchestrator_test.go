package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestOrchestrator(store *mockStore, catalog *mockCatalog, opts ...Option) *Orchestrator {
	if catalog == nil {
		catalog = &mockCatalog{}
	}
	base := []Option{
		WithBcryptCost(bcrypt.MinCost),
		WithClock(func() time.Time { return fixedNow }),
		WithRandom(func(n int) int { return n - 1 }),
	}
	return NewOrchestrator(store, catalog, &mockSessions{}, append(base, opts...)...)
}

func loveSong(name string) domain.Song {
	return domain.Song{Name: name, URL: "http://music.test/love/" + name + ".mp3", Mood: domain.MoodLove}
}

func TestOrchestrator_AddToPlaylist(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		song    domain.Song
		seed    []domain.PlaylistEntry
		addErr  error
		wantErr error
	}{
		{
			name:   "saves new song",
			userID: 1,
			song:   loveSong("one"),
		},
		{
			name:    "rejects duplicate url",
			userID:  1,
			song:    loveSong("one"),
			seed:    []domain.PlaylistEntry{{ID: 9, UserID: 1, SongName: "one", SongURL: loveSong("one").URL, Mood: domain.MoodLove}},
			wantErr: domain.ErrDuplicateSong,
		},
		{
			name:    "duplicate of another user is allowed",
			userID:  2,
			song:    loveSong("one"),
			seed:    []domain.PlaylistEntry{{ID: 9, UserID: 1, SongName: "one", SongURL: loveSong("one").URL, Mood: domain.MoodLove}},
			wantErr: nil,
		},
		{
			name:    "rejects unknown mood",
			userID:  1,
			song:    domain.Song{Name: "x", URL: "http://x", Mood: "grumpy"},
			wantErr: domain.ErrInvalidMood,
		},
		{
			name:    "rejects missing url",
			userID:  1,
			song:    domain.Song{Name: "x", Mood: domain.MoodSad},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "store rejects a concurrent duplicate",
			userID:  1,
			song:    loveSong("two"),
			addErr:  domain.ErrDuplicateSong,
			wantErr: domain.ErrDuplicateSong,
		},
		{
			name:    "storage failure is wrapped",
			userID:  1,
			song:    loveSong("two"),
			addErr:  errBoom,
			wantErr: errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockStore()
			store.entries = tt.seed
			store.nextID = 100
			store.addErr = tt.addErr
			o := newTestOrchestrator(store, nil)

			entry, err := o.AddToPlaylist(context.Background(), tt.userID, tt.song)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(101), entry.ID)
			assert.Equal(t, tt.userID, entry.UserID)
			assert.Equal(t, tt.song, entry.Song())
		})
	}
}

func TestOrchestrator_GetAndRemovePlaylist(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	o := newTestOrchestrator(store, nil)

	_, err := o.GetPlaylist(ctx, 0)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	pl, err := o.GetPlaylist(ctx, 7)
	require.NoError(t, err)
	assert.NotNil(t, pl.Entries, "empty playlist should serialise as []")
	assert.Empty(t, pl.Entries)

	a, err := o.AddToPlaylist(ctx, 7, loveSong("a"))
	require.NoError(t, err)
	_, err = o.AddToPlaylist(ctx, 7, loveSong("b"))
	require.NoError(t, err)

	require.NoError(t, o.RemoveFromPlaylist(ctx, a.ID))
	pl, err = o.GetPlaylist(ctx, 7)
	require.NoError(t, err)
	require.Len(t, pl.Entries, 1)
	assert.Equal(t, "b", pl.Entries[0].SongName)

	require.ErrorIs(t, o.RemoveFromPlaylist(ctx, a.ID), domain.ErrNotFound)
	require.ErrorIs(t, o.RemoveFromPlaylist(ctx, 0), domain.ErrInvalidArgument)

	store.listErr = errBoom
	_, err = o.GetPlaylist(ctx, 7)
	require.ErrorIs(t, err, errBoom)
}
