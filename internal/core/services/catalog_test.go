package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
	"github.com/ewilliams-labs/moodtune/internal/core/ports"
)

func happyCatalog() *mockCatalog {
	return &mockCatalog{songs: map[domain.Mood][]domain.Song{
		domain.MoodHappy: {
			{Name: "Sunny Day", URL: "http://music.test/happy/sunny.mp3", Mood: domain.MoodHappy},
			{Name: "Bright Side", URL: "http://music.test/happy/bright.mp3", Mood: domain.MoodHappy},
		},
	}}
}

func TestOrchestrator_ListSongs(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	store.durations["http://music.test/happy/sunny.mp3"] = 201.5
	jobs := &mockJobs{}
	o := newTestOrchestrator(store, happyCatalog(), WithJobs(jobs))

	songs, err := o.ListSongs(ctx, domain.MoodHappy)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, 201.5, songs[0].DurationSec)
	assert.Zero(t, songs[1].DurationSec)
	assert.Equal(t, []string{"http://music.test/happy/bright.mp3"}, jobs.submitted)

	_, err = o.ListSongs(ctx, "grumpy")
	require.ErrorIs(t, err, domain.ErrInvalidMood)

	empty, err := o.ListSongs(ctx, domain.MoodSad)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestOrchestrator_ListSongsUsesCache(t *testing.T) {
	ctx := context.Background()
	catalog := happyCatalog()
	cache := &mockCache{}
	o := newTestOrchestrator(newMockStore(), catalog, WithCache(cache, 0))

	_, err := o.ListSongs(ctx, domain.MoodHappy)
	require.NoError(t, err)
	_, err = o.ListSongs(ctx, domain.MoodHappy)
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.calls)
	assert.Equal(t, 1, cache.sets)

	// a broken cache must not break listings
	cache.getErr = errBoom
	songs, err := o.ListSongs(ctx, domain.MoodHappy)
	require.NoError(t, err)
	assert.Len(t, songs, 2)
	assert.Equal(t, 2, catalog.calls)
}

func TestOrchestrator_ListSongsCatalogError(t *testing.T) {
	o := newTestOrchestrator(newMockStore(), &mockCatalog{err: errBoom})
	_, err := o.ListSongs(context.Background(), domain.MoodCalm)
	require.ErrorIs(t, err, errBoom)
}

func TestOrchestrator_SearchSongs(t *testing.T) {
	o := newTestOrchestrator(newMockStore(), happyCatalog())
	songs, err := o.SearchSongs(context.Background(), domain.MoodHappy, "SUN")
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "Sunny Day", songs[0].Name)
}

func TestOrchestrator_RandomSong(t *testing.T) {
	ctx := context.Background()
	o := newTestOrchestrator(newMockStore(), happyCatalog())

	song, err := o.RandomSong(ctx, domain.MoodHappy)
	require.NoError(t, err)
	assert.Equal(t, "Bright Side", song.Name, "random source always picks the last index")

	_, err = o.RandomSong(ctx, domain.MoodSad)
	require.ErrorIs(t, err, ports.ErrNoSongs)
	var noSongs *ports.NoSongsError
	require.True(t, errors.As(err, &noSongs))
	assert.Equal(t, "No songs found for mood: sad", err.Error())
}

func TestOrchestrator_FindSong(t *testing.T) {
	o := newTestOrchestrator(newMockStore(), happyCatalog())
	song, err := o.FindSong(context.Background(), "http://music.test/happy/bright.mp3")
	require.NoError(t, err)
	assert.Equal(t, domain.MoodHappy, song.Mood)

	_, err = o.FindSong(context.Background(), "http://music.test/none.mp3")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrchestrator_OpenSongLocal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sunny.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3-bytes"), 0o600))

	catalog := happyCatalog()
	catalog.paths = map[string]string{"http://music.test/happy/sunny.mp3": path}
	o := newTestOrchestrator(newMockStore(), catalog)

	song, rc, err := o.OpenSong(context.Background(), "http://music.test/happy/sunny.mp3")
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "Sunny Day", song.Name)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "ID3-bytes", string(data))
}

func TestOrchestrator_OpenSongRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calm/rain.mp3" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("remote-audio"))
	}))
	defer srv.Close()

	catalog := &mockCatalog{songs: map[domain.Mood][]domain.Song{
		domain.MoodCalm: {
			{Name: "Rain", URL: srv.URL + "/calm/rain.mp3", Mood: domain.MoodCalm},
			{Name: "Gone", URL: srv.URL + "/calm/gone.mp3", Mood: domain.MoodCalm},
		},
	}}
	o := newTestOrchestrator(newMockStore(), catalog, WithHTTPClient(srv.Client()))

	_, rc, err := o.OpenSong(context.Background(), srv.URL+"/calm/rain.mp3")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "remote-audio", string(data))

	_, _, err = o.OpenSong(context.Background(), srv.URL+"/calm/gone.mp3")
	require.Error(t, err)
}
