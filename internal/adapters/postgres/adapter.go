// Package postgres provides a gorm-backed PostgreSQL implementation of the storage ports.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Strum355/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

const connectAttempts = 10

// Adapter implements ports.Store for PostgreSQL.
type Adapter struct {
	db *gorm.DB
}

// NewAdapter connects to dsn, waiting for the server to accept
// connections, and migrates the schema.
func NewAdapter(ctx context.Context, dsn string) (*Adapter, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if err = sqlDB.PingContext(ctx); err == nil {
					break
				}
			} else {
				err = dbErr
			}
		}
		log.Info(fmt.Sprintf("waiting for postgres (attempt %d/%d)", attempt, connectAttempts))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&userModel{}, &playlistEntryModel{}, &favoriteModel{}, &historyModel{}, &songMetaModel{},
	); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return &Adapter{db: db}, nil
}

func (a *Adapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (a *Adapter) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	m := userModel{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Theme:        u.Theme,
		CreatedAt:    u.CreatedAt,
	}
	if m.Theme == "" {
		m.Theme = domain.DefaultTheme
	}
	if err := a.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.User{}, domain.ErrUsernameTaken
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return m.toDomain(), nil
}

func (a *Adapter) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return a.firstUser(ctx, "username = ?", username)
}

func (a *Adapter) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return a.firstUser(ctx, "id = ?", id)
}

func (a *Adapter) firstUser(ctx context.Context, query string, arg any) (domain.User, error) {
	var m userModel
	if err := a.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return m.toDomain(), nil
}

func (a *Adapter) UpdateTheme(ctx context.Context, userID int64, theme string) error {
	res := a.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", userID).Update("theme", theme)
	if res.Error != nil {
		return fmt.Errorf("failed to update theme: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (a *Adapter) AddEntry(ctx context.Context, e domain.PlaylistEntry) (domain.PlaylistEntry, error) {
	m := playlistEntryModel{UserID: e.UserID, SongName: e.SongName, SongURL: e.SongURL, Mood: string(e.Mood)}
	if err := a.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.PlaylistEntry{}, domain.ErrDuplicateSong
		}
		return domain.PlaylistEntry{}, fmt.Errorf("failed to insert playlist entry: %w", err)
	}
	return m.toDomain(), nil
}

func (a *Adapter) ListEntries(ctx context.Context, userID int64) ([]domain.PlaylistEntry, error) {
	var rows []playlistEntryModel
	if err := a.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load playlist: %w", err)
	}
	entries := make([]domain.PlaylistEntry, len(rows))
	for i, r := range rows {
		entries[i] = r.toDomain()
	}
	return entries, nil
}

func (a *Adapter) DeleteEntry(ctx context.Context, id int64) error {
	res := a.db.WithContext(ctx).Delete(&playlistEntryModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete playlist entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (a *Adapter) GetFavorites(ctx context.Context, userID int64) (domain.Favorites, error) {
	var rows []favoriteModel
	if err := a.db.WithContext(ctx).Where("user_id = ?", userID).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	favs := make(domain.Favorites, len(rows))
	for i, r := range rows {
		favs[i] = domain.FavoriteEntry{
			Song:    domain.Song{Name: r.Name, URL: r.URL, Mood: domain.Mood(r.Mood)},
			AddedAt: r.AddedAt.UTC(),
		}
	}
	return favs, nil
}

func (a *Adapter) SaveFavorites(ctx context.Context, userID int64, f domain.Favorites) error {
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&favoriteModel{}).Error; err != nil {
			return err
		}
		if len(f) == 0 {
			return nil
		}
		return tx.Create(favoriteRows(userID, f)).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

func (a *Adapter) GetHistory(ctx context.Context, userID int64) (domain.History, error) {
	var rows []historyModel
	if err := a.db.WithContext(ctx).Where("user_id = ?", userID).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	h := make(domain.History, len(rows))
	for i, r := range rows {
		h[i] = domain.HistoryEntry{
			Song:     domain.Song{Name: r.Name, URL: r.URL, Mood: domain.Mood(r.Mood)},
			PlayedAt: r.PlayedAt.UTC(),
		}
	}
	return h, nil
}

func (a *Adapter) SaveHistory(ctx context.Context, userID int64, h domain.History) error {
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&historyModel{}).Error; err != nil {
			return err
		}
		if len(h) == 0 {
			return nil
		}
		return tx.Create(historyRows(userID, h)).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

func (a *Adapter) SaveDuration(ctx context.Context, url string, seconds float64) error {
	m := songMetaModel{URL: url, DurationSec: seconds}
	err := a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{"duration_sec", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("failed to save duration: %w", err)
	}
	return nil
}

func (a *Adapter) Durations(ctx context.Context, urls []string) (map[string]float64, error) {
	out := make(map[string]float64, len(urls))
	if len(urls) == 0 {
		return out, nil
	}
	var rows []songMetaModel
	if err := a.db.WithContext(ctx).Where("url IN ?", urls).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load durations: %w", err)
	}
	for _, r := range rows {
		out[r.URL] = r.DurationSec
	}
	return out, nil
}
