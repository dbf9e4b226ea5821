package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

// Favorites and history are stored one row per entry and replaced as a
// whole on save; position keeps the list order.

func (a *Adapter) GetFavorites(ctx context.Context, userID int64) (domain.Favorites, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT name, url, mood, added_at FROM favorites WHERE user_id = ? ORDER BY position ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	defer rows.Close()

	favs := domain.Favorites{}
	for rows.Next() {
		var e domain.FavoriteEntry
		var mood string
		var added int64
		if err := rows.Scan(&e.Name, &e.URL, &mood, &added); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		e.Mood = domain.Mood(mood)
		e.AddedAt = time.UnixMilli(added).UTC()
		favs = append(favs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}
	return favs, nil
}

func (a *Adapter) SaveFavorites(ctx context.Context, userID int64, f domain.Favorites) error {
	return a.replaceList(ctx, "favorites", "added_at", userID, len(f), func(i int) []any {
		e := f[i]
		return []any{e.Name, e.URL, string(e.Mood), e.AddedAt.UnixMilli()}
	})
}

func (a *Adapter) GetHistory(ctx context.Context, userID int64) (domain.History, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT name, url, mood, played_at FROM history WHERE user_id = ? ORDER BY position ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	h := domain.History{}
	for rows.Next() {
		var e domain.HistoryEntry
		var mood string
		var played int64
		if err := rows.Scan(&e.Name, &e.URL, &mood, &played); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Mood = domain.Mood(mood)
		e.PlayedAt = time.UnixMilli(played).UTC()
		h = append(h, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return h, nil
}

func (a *Adapter) SaveHistory(ctx context.Context, userID int64, h domain.History) error {
	return a.replaceList(ctx, "history", "played_at", userID, len(h), func(i int) []any {
		e := h[i]
		return []any{e.Name, e.URL, string(e.Mood), e.PlayedAt.UnixMilli()}
	})
}

// replaceList rewrites every row of userID in table inside one transaction.
// table and timeColumn are package constants, never user input.
func (a *Adapter) replaceList(ctx context.Context, table, timeColumn string, userID int64, n int, row func(i int) []any) (err error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin %s transaction: %w", table, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	var stmt *sql.Stmt
	stmt, err = tx.PrepareContext(ctx,
		"INSERT INTO "+table+" (user_id, position, name, url, mood, "+timeColumn+") VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare %s insert: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		args := append([]any{userID, i}, row(i)...)
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert %s row: %w", table, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}
	return nil
}
