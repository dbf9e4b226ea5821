package sqlite

import (
	"context"
	"fmt"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

func (a *Adapter) AddEntry(ctx context.Context, e domain.PlaylistEntry) (domain.PlaylistEntry, error) {
	res, err := a.db.ExecContext(ctx,
		"INSERT INTO playlist_entries (user_id, song_name, song_url, mood) VALUES (?, ?, ?, ?)",
		e.UserID, e.SongName, e.SongURL, string(e.Mood))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.PlaylistEntry{}, domain.ErrDuplicateSong
		}
		return domain.PlaylistEntry{}, fmt.Errorf("failed to insert playlist entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.PlaylistEntry{}, fmt.Errorf("failed to read playlist entry id: %w", err)
	}
	e.ID = id
	return e, nil
}

func (a *Adapter) ListEntries(ctx context.Context, userID int64) ([]domain.PlaylistEntry, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT id, user_id, song_name, song_url, mood FROM playlist_entries WHERE user_id = ? ORDER BY id ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist: %w", err)
	}
	defer rows.Close()

	entries := []domain.PlaylistEntry{}
	for rows.Next() {
		var e domain.PlaylistEntry
		var mood string
		if err := rows.Scan(&e.ID, &e.UserID, &e.SongName, &e.SongURL, &mood); err != nil {
			return nil, fmt.Errorf("failed to scan playlist entry: %w", err)
		}
		e.Mood = domain.Mood(mood)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate playlist entries: %w", err)
	}
	return entries, nil
}

func (a *Adapter) DeleteEntry(ctx context.Context, id int64) error {
	res, err := a.db.ExecContext(ctx, "DELETE FROM playlist_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete playlist entry: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
