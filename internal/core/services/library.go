package services

import (
	"context"
	"fmt"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

// Favorites returns the user's favorites filtered by term and ordered by sortBy.
func (o *Orchestrator) Favorites(ctx context.Context, userID int64, term, sortBy string) (domain.Favorites, error) {
	favs, err := o.library.GetFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load favorites: %w", err)
	}
	return favs.Filter(term, sortBy), nil
}

// AddFavorite reports false when the song was already a favorite.
func (o *Orchestrator) AddFavorite(ctx context.Context, userID int64, song domain.Song) (bool, error) {
	if err := validateSong(song); err != nil {
		return false, err
	}
	var added bool
	err := o.updateFavorites(ctx, userID, func(f domain.Favorites) domain.Favorites {
		f, added = f.Add(song, o.now())
		return f
	})
	return added, err
}

// RemoveFavorite reports false when url was not a favorite.
func (o *Orchestrator) RemoveFavorite(ctx context.Context, userID int64, url string) (bool, error) {
	var removed bool
	err := o.updateFavorites(ctx, userID, func(f domain.Favorites) domain.Favorites {
		f, removed = f.Remove(url)
		return f
	})
	return removed, err
}

// ToggleFavorite returns whether song is a favorite after the call.
func (o *Orchestrator) ToggleFavorite(ctx context.Context, userID int64, song domain.Song) (bool, error) {
	if err := validateSong(song); err != nil {
		return false, err
	}
	var state bool
	err := o.updateFavorites(ctx, userID, func(f domain.Favorites) domain.Favorites {
		f, state = f.Toggle(song, o.now())
		return f
	})
	return state, err
}

// ShuffledFavorites returns the user's favorite songs in random order.
func (o *Orchestrator) ShuffledFavorites(ctx context.Context, userID int64) ([]domain.Song, error) {
	favs, err := o.library.GetFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load favorites: %w", err)
	}
	songs := favs.Songs()
	for i := len(songs) - 1; i > 0; i-- {
		j := o.intn(i + 1)
		songs[i], songs[j] = songs[j], songs[i]
	}
	return songs, nil
}

func (o *Orchestrator) updateFavorites(ctx context.Context, userID int64, mutate func(domain.Favorites) domain.Favorites) error {
	o.libraryMu.Lock()
	defer o.libraryMu.Unlock()

	favs, err := o.library.GetFavorites(ctx, userID)
	if err != nil {
		return fmt.Errorf("service: failed to load favorites: %w", err)
	}
	if err := o.library.SaveFavorites(ctx, userID, mutate(favs)); err != nil {
		return fmt.Errorf("service: failed to save favorites: %w", err)
	}
	return nil
}

// History returns the user's plays, most recent first.
func (o *Orchestrator) History(ctx context.Context, userID int64) (domain.History, error) {
	h, err := o.library.GetHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load history: %w", err)
	}
	if h == nil {
		h = domain.History{}
	}
	songs := make([]domain.Song, len(h))
	for i := range h {
		songs[i] = h[i].Song
	}
	o.mergeDurations(ctx, songs)
	for i := range h {
		h[i].Song = songs[i]
	}
	return h, nil
}

// RecordPlay adds song to the front of the user's history.
func (o *Orchestrator) RecordPlay(ctx context.Context, userID int64, song domain.Song) error {
	if err := validateSong(song); err != nil {
		return err
	}
	o.libraryMu.Lock()
	defer o.libraryMu.Unlock()

	h, err := o.library.GetHistory(ctx, userID)
	if err != nil {
		return fmt.Errorf("service: failed to load history: %w", err)
	}
	if err := o.library.SaveHistory(ctx, userID, h.Record(song, o.now())); err != nil {
		return fmt.Errorf("service: failed to save history: %w", err)
	}
	return nil
}

// Stats aggregates the user's history as of now.
func (o *Orchestrator) Stats(ctx context.Context, userID int64) (domain.Stats, error) {
	h, err := o.History(ctx, userID)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.ComputeStats(h, o.now()), nil
}

func validateSong(song domain.Song) error {
	if song.URL == "" || song.Name == "" {
		return fmt.Errorf("service: %w: song name and url are required", domain.ErrInvalidArgument)
	}
	if !song.Mood.Valid() {
		return fmt.Errorf("service: %w: %q", domain.ErrInvalidMood, song.Mood)
	}
	return nil
}
