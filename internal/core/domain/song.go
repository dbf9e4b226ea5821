package domain

import "time"

// Song is a catalog entry. The URL identifies it.
type Song struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Mood        Mood    `json:"mood"`
	DurationSec float64 `json:"durationSec,omitempty"`
}

// HistoryEntry is a song with the time it was last played.
type HistoryEntry struct {
	Song
	PlayedAt time.Time `json:"playedAt"`
}

// FavoriteEntry is a song with the time it was favorited.
type FavoriteEntry struct {
	Song
	AddedAt time.Time `json:"addedAt"`
}

// User is a registered listener.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Theme        string    `json:"theme"`
	CreatedAt    time.Time `json:"createdAt"`
}
