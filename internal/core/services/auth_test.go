package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

func TestOrchestrator_Register(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "alice", "alice@example.com", "secret1", nil},
		{"short username", "al", "al@example.com", "secret1", domain.ErrInvalidArgument},
		{"bad email", "alice", "alice.example.com", "secret1", domain.ErrInvalidArgument},
		{"short password", "alice", "alice@example.com", "abc", domain.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrchestrator(newMockStore(), nil)
			u, err := o.Register(context.Background(), tt.username, tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, u.ID)
			assert.Equal(t, domain.DefaultTheme, u.Theme)
			assert.Equal(t, fixedNow, u.CreatedAt)
			assert.NotEqual(t, tt.password, u.PasswordHash)
		})
	}
}

func TestOrchestrator_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	o := newTestOrchestrator(newMockStore(), nil)
	_, err := o.Register(ctx, "alice", "a@example.com", "secret1")
	require.NoError(t, err)
	_, err = o.Register(ctx, "alice", "b@example.com", "secret2")
	require.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestOrchestrator_LoginLifecycle(t *testing.T) {
	ctx := context.Background()
	o := newTestOrchestrator(newMockStore(), nil)
	user, err := o.Register(ctx, "bob", "bob@example.com", "hunter22")
	require.NoError(t, err)

	_, err = o.Login(ctx, "bob", "wrong-pass")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = o.Login(ctx, "nobody", "hunter22")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	res, err := o.Login(ctx, " bob ", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, user.ID, res.User.ID)

	id, err := o.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	require.NoError(t, o.Logout(ctx, res.Token))
	_, err = o.Authenticate(ctx, res.Token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = o.Authenticate(ctx, "")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestOrchestrator_SetTheme(t *testing.T) {
	ctx := context.Background()
	o := newTestOrchestrator(newMockStore(), nil)
	user, err := o.Register(ctx, "carol", "c@example.com", "secret1")
	require.NoError(t, err)

	theme, err := o.SetTheme(ctx, user.ID, "ocean")
	require.NoError(t, err)
	assert.Equal(t, "ocean", theme.ID)

	got, err := o.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ocean", got.Theme)

	_, err = o.SetTheme(ctx, user.ID, "neon")
	require.ErrorIs(t, err, domain.ErrInvalidTheme)

	_, err = o.SetTheme(ctx, 999, "dark")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
