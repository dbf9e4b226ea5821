package postgres

import (
	"time"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

type userModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	Theme        string `gorm:"not null;default:default"`
	CreatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func (m userModel) toDomain() domain.User {
	return domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Theme:        m.Theme,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

type playlistEntryModel struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	UserID   int64  `gorm:"uniqueIndex:idx_playlist_entries_user_url;not null"`
	SongName string `gorm:"not null"`
	SongURL  string `gorm:"uniqueIndex:idx_playlist_entries_user_url;not null"`
	Mood     string `gorm:"not null"`
}

func (playlistEntryModel) TableName() string { return "playlist_entries" }

func (m playlistEntryModel) toDomain() domain.PlaylistEntry {
	return domain.PlaylistEntry{
		ID:       m.ID,
		UserID:   m.UserID,
		SongName: m.SongName,
		SongURL:  m.SongURL,
		Mood:     domain.Mood(m.Mood),
	}
}

type favoriteModel struct {
	UserID   int64 `gorm:"primaryKey"`
	Position int   `gorm:"primaryKey"`
	Name     string
	URL      string
	Mood     string
	AddedAt  time.Time
}

func (favoriteModel) TableName() string { return "favorites" }

type historyModel struct {
	UserID   int64 `gorm:"primaryKey"`
	Position int   `gorm:"primaryKey"`
	Name     string
	URL      string
	Mood     string
	PlayedAt time.Time
}

func (historyModel) TableName() string { return "history" }

type songMetaModel struct {
	URL         string `gorm:"primaryKey"`
	DurationSec float64
	UpdatedAt   time.Time
}

func (songMetaModel) TableName() string { return "song_meta" }

func favoriteRows(userID int64, f domain.Favorites) []favoriteModel {
	rows := make([]favoriteModel, len(f))
	for i, e := range f {
		rows[i] = favoriteModel{UserID: userID, Position: i, Name: e.Name, URL: e.URL, Mood: string(e.Mood), AddedAt: e.AddedAt}
	}
	return rows
}

func historyRows(userID int64, h domain.History) []historyModel {
	rows := make([]historyModel, len(h))
	for i, e := range h {
		rows[i] = historyModel{UserID: userID, Position: i, Name: e.Name, URL: e.URL, Mood: string(e.Mood), PlayedAt: e.PlayedAt}
	}
	return rows
}
