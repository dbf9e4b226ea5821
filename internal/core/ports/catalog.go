package ports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

// ErrNoSongs indicates a catalog has nothing for the requested mood.
var ErrNoSongs = errors.New("no songs found")

// NoSongsError provides context for an empty mood listing.
type NoSongsError struct {
	Mood domain.Mood
}

func (e NoSongsError) Error() string {
	if e.Mood == "" {
		return ErrNoSongs.Error()
	}
	return fmt.Sprintf("No songs found for mood: %s", e.Mood)
}

func (e NoSongsError) Is(target error) bool {
	return target == ErrNoSongs
}

// SongCatalog lists the songs available for a mood.
type SongCatalog interface {
	ListSongs(ctx context.Context, mood domain.Mood) ([]domain.Song, error)
}

// LocalPathResolver is implemented by catalogs whose songs live on disk.
type LocalPathResolver interface {
	LocalPath(url string) (string, bool)
}

// CatalogCache stores mood listings. Get reports a miss with ok=false.
type CatalogCache interface {
	Get(ctx context.Context, mood domain.Mood) (songs []domain.Song, ok bool, err error)
	Set(ctx context.Context, mood domain.Mood, songs []domain.Song, ttl time.Duration) error
}
