package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"

	"github.com/Strum355/log"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
	"github.com/ewilliams-labs/moodtune/internal/core/ports"
)

// ListSongs returns the catalog songs for mood with any known durations.
func (o *Orchestrator) ListSongs(ctx context.Context, mood domain.Mood) ([]domain.Song, error) {
	if !mood.Valid() {
		return nil, fmt.Errorf("service: %w: %q", domain.ErrInvalidMood, mood)
	}

	songs, err := o.cachedListing(ctx, mood)
	if err != nil {
		return nil, err
	}

	songs = slices.Clone(songs)
	o.mergeDurations(ctx, songs)
	if o.jobs != nil {
		for _, s := range songs {
			if s.DurationSec == 0 {
				o.jobs.SubmitAnalysis(s.URL, o.localPath(s.URL))
			}
		}
	}
	return songs, nil
}

func (o *Orchestrator) cachedListing(ctx context.Context, mood domain.Mood) ([]domain.Song, error) {
	if o.cache != nil {
		cached, ok, err := o.cache.Get(ctx, mood)
		if err != nil {
			log.WithError(err).Warn("catalog cache read failed, falling back to catalog")
		} else if ok {
			return cached, nil
		}
	}

	songs, err := o.catalog.ListSongs(ctx, mood)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list songs: %w", err)
	}
	if songs == nil {
		songs = []domain.Song{}
	}

	if o.cache != nil {
		if err := o.cache.Set(ctx, mood, songs, o.cacheTTL); err != nil {
			log.WithError(err).Warn("catalog cache write failed")
		}
	}
	return songs, nil
}

// SearchSongs lists mood and keeps the songs whose name contains term.
func (o *Orchestrator) SearchSongs(ctx context.Context, mood domain.Mood, term string) ([]domain.Song, error) {
	songs, err := o.ListSongs(ctx, mood)
	if err != nil {
		return nil, err
	}
	return domain.FilterSongs(songs, term), nil
}

// RandomSong picks uniformly among the songs of mood.
func (o *Orchestrator) RandomSong(ctx context.Context, mood domain.Mood) (domain.Song, error) {
	songs, err := o.ListSongs(ctx, mood)
	if err != nil {
		return domain.Song{}, err
	}
	if len(songs) == 0 {
		return domain.Song{}, &ports.NoSongsError{Mood: mood}
	}
	return songs[o.intn(len(songs))], nil
}

// FindSong looks url up across every mood listing.
func (o *Orchestrator) FindSong(ctx context.Context, url string) (domain.Song, error) {
	for _, mood := range domain.AllMoods() {
		songs, err := o.cachedListing(ctx, mood)
		if err != nil {
			return domain.Song{}, err
		}
		for _, s := range songs {
			if s.URL == url {
				return s, nil
			}
		}
	}
	return domain.Song{}, fmt.Errorf("service: song %q: %w", url, domain.ErrNotFound)
}

// OpenSong returns the audio bytes of a catalog song, from disk when the
// catalog is local and over HTTP otherwise.
func (o *Orchestrator) OpenSong(ctx context.Context, url string) (domain.Song, io.ReadCloser, error) {
	song, err := o.FindSong(ctx, url)
	if err != nil {
		return domain.Song{}, nil, err
	}

	if path := o.localPath(url); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return domain.Song{}, nil, fmt.Errorf("service: open song file: %w", err)
		}
		return song, f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Song{}, nil, fmt.Errorf("service: build song request: %w", err)
	}
	// #nosec G107 -- URL comes from the catalog listing, not from the caller
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return domain.Song{}, nil, fmt.Errorf("service: fetch song: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return domain.Song{}, nil, fmt.Errorf("service: fetch song status %d", resp.StatusCode)
	}
	return song, resp.Body, nil
}

func (o *Orchestrator) localPath(url string) string {
	if r, ok := o.catalog.(ports.LocalPathResolver); ok {
		if path, ok := r.LocalPath(url); ok {
			return path
		}
	}
	return ""
}

func (o *Orchestrator) mergeDurations(ctx context.Context, songs []domain.Song) {
	if len(songs) == 0 {
		return
	}
	urls := make([]string, len(songs))
	for i, s := range songs {
		urls[i] = s.URL
	}
	durations, err := o.meta.Durations(ctx, urls)
	if err != nil {
		log.WithError(err).Warn("failed to load song durations")
		return
	}
	for i := range songs {
		if d, ok := durations[songs[i].URL]; ok && songs[i].DurationSec == 0 {
			songs[i].DurationSec = d
		}
	}
}
