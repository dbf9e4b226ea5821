package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

const (
	defaultBcryptCost = bcrypt.DefaultCost
	minUsernameLen    = 3
	maxUsernameLen    = 32
	minPasswordLen    = 6
)

// LoginResult is returned to a client that authenticated successfully.
type LoginResult struct {
	User  domain.User
	Token string
}

// Register creates a user with a bcrypt-hashed password.
func (o *Orchestrator) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	switch {
	case len(username) < minUsernameLen || len(username) > maxUsernameLen:
		return domain.User{}, fmt.Errorf("service: %w: username must be %d-%d characters", domain.ErrInvalidArgument, minUsernameLen, maxUsernameLen)
	case !strings.Contains(email, "@"):
		return domain.User{}, fmt.Errorf("service: %w: email is invalid", domain.ErrInvalidArgument)
	case len(password) < minPasswordLen:
		return domain.User{}, fmt.Errorf("service: %w: password must be at least %d characters", domain.ErrInvalidArgument, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), o.bcryptCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service: hash password: %w", err)
	}

	user, err := o.users.CreateUser(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Theme:        domain.DefaultTheme,
		CreatedAt:    o.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return domain.User{}, fmt.Errorf("service: %w", err)
		}
		return domain.User{}, fmt.Errorf("service: failed to create user: %w", err)
	}
	return user, nil
}

// Login checks credentials and opens a session. Unknown users and wrong
// passwords fail with the same error.
func (o *Orchestrator) Login(ctx context.Context, username, password string) (LoginResult, error) {
	user, err := o.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return LoginResult{}, fmt.Errorf("service: %w", domain.ErrInvalidCredentials)
		}
		return LoginResult{}, fmt.Errorf("service: failed to load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, fmt.Errorf("service: %w", domain.ErrInvalidCredentials)
	}

	token := uuid.NewString()
	if err := o.sessions.Create(ctx, token, user.ID, o.sessionTTL); err != nil {
		return LoginResult{}, fmt.Errorf("service: failed to open session: %w", err)
	}
	return LoginResult{User: user, Token: token}, nil
}

// Authenticate resolves a session token to its user id.
func (o *Orchestrator) Authenticate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, fmt.Errorf("service: %w", domain.ErrUnauthorized)
	}
	userID, err := o.sessions.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, fmt.Errorf("service: %w", domain.ErrUnauthorized)
		}
		return 0, fmt.Errorf("service: failed to look up session: %w", err)
	}
	return userID, nil
}

func (o *Orchestrator) Logout(ctx context.Context, token string) error {
	if err := o.sessions.Delete(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("service: failed to close session: %w", err)
	}
	return nil
}

func (o *Orchestrator) GetUser(ctx context.Context, userID int64) (domain.User, error) {
	user, err := o.users.GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("service: failed to load user: %w", err)
	}
	return user, nil
}

// SetTheme stores the user's theme choice.
func (o *Orchestrator) SetTheme(ctx context.Context, userID int64, themeID string) (domain.Theme, error) {
	theme, err := domain.LookupTheme(themeID)
	if err != nil {
		return domain.Theme{}, fmt.Errorf("service: %w", err)
	}
	if err := o.users.UpdateTheme(ctx, userID, theme.ID); err != nil {
		return domain.Theme{}, fmt.Errorf("service: failed to save theme: %w", err)
	}
	return theme, nil
}
