package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
	"github.com/ewilliams-labs/moodtune/internal/core/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSessionStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Create(ctx, "a", 1, time.Hour))
	require.NoError(t, s.Create(ctx, "b", 2, time.Minute))

	id, err := s.Lookup(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	now = now.Add(2 * time.Minute)
	_, err = s.Lookup(ctx, "b")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Create(ctx, "c", 3, time.Minute))
	now = now.Add(5 * time.Minute)
	assert.Equal(t, 1, s.Sweep())

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Lookup(ctx, "a")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
