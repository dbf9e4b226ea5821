package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (a *Adapter) SaveDuration(ctx context.Context, url string, seconds float64) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO song_meta (url, duration_sec) VALUES (?, ?)
		ON CONFLICT(url) DO UPDATE SET duration_sec = excluded.duration_sec, updated_at = CURRENT_TIMESTAMP
	`, url, seconds)
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
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(urls)), ",")
	args := make([]any, len(urls))
	for i, u := range urls {
		args[i] = u
	}
	rows, err := a.db.QueryContext(ctx,
		"SELECT url, duration_sec FROM song_meta WHERE url IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load durations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var url string
		var d float64
		if err := rows.Scan(&url, &d); err != nil {
			return nil, fmt.Errorf("failed to scan duration: %w", err)
		}
		out[url] = d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate durations: %w", err)
	}
	return out, nil
}
