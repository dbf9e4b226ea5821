package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

func (a *Adapter) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	if u.Theme == "" {
		u.Theme = domain.DefaultTheme
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	res, err := a.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, theme, created_at) VALUES (?, ?, ?, ?, ?)",
		u.Username, u.Email, u.PasswordHash, u.Theme, u.CreatedAt.UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrUsernameTaken
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to read user id: %w", err)
	}
	u.ID = id
	u.CreatedAt = time.UnixMilli(u.CreatedAt.UnixMilli()).UTC()
	return u, nil
}

func (a *Adapter) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return a.getUser(ctx, "username = ?", username)
}

func (a *Adapter) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return a.getUser(ctx, "id = ?", id)
}

func (a *Adapter) getUser(ctx context.Context, where string, arg any) (domain.User, error) {
	row := a.db.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, theme, created_at FROM users WHERE "+where, arg)
	var u domain.User
	var created int64
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Theme, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	u.CreatedAt = time.UnixMilli(created).UTC()
	return u, nil
}

func (a *Adapter) UpdateTheme(ctx context.Context, userID int64, theme string) error {
	res, err := a.db.ExecContext(ctx, "UPDATE users SET theme = ? WHERE id = ?", theme, userID)
	if err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update theme: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
