package ports

import (
	"context"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByID(ctx context.Context, id int64) (domain.User, error)
	UpdateTheme(ctx context.Context, userID int64, theme string) error
}

type PlaylistRepository interface {
	AddEntry(ctx context.Context, e domain.PlaylistEntry) (domain.PlaylistEntry, error)
	ListEntries(ctx context.Context, userID int64) ([]domain.PlaylistEntry, error)
	DeleteEntry(ctx context.Context, id int64) error
}

// LibraryRepository persists the per-user favorites and history lists.
// Save methods replace the stored list as a whole.
type LibraryRepository interface {
	GetFavorites(ctx context.Context, userID int64) (domain.Favorites, error)
	SaveFavorites(ctx context.Context, userID int64, f domain.Favorites) error
	GetHistory(ctx context.Context, userID int64) (domain.History, error)
	SaveHistory(ctx context.Context, userID int64, h domain.History) error
}

type SongMetaRepository interface {
	SaveDuration(ctx context.Context, url string, seconds float64) error
	Durations(ctx context.Context, urls []string) (map[string]float64, error)
}

// Store is everything a storage driver provides.
type Store interface {
	UserRepository
	PlaylistRepository
	LibraryRepository
	SongMetaRepository
	Close() error
}
