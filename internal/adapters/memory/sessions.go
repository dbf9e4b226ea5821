// Package memory holds in-process adapters used when Redis is not configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

type session struct {
	userID  int64
	expires time.Time
}

// SessionStore implements ports.SessionStore in memory. Expired tokens
// are removed lazily on lookup and by Sweep.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]session{}, now: time.Now}
}

func (s *SessionStore) Create(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session{userID: userID, expires: s.now().Add(ttl)}
	return nil
}

func (s *SessionStore) Lookup(ctx context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if !s.now().Before(sess.expires) {
		delete(s.sessions, token)
		return 0, domain.ErrNotFound
	}
	return sess.userID, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Sweep drops expired sessions and reports how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for token, sess := range s.sessions {
		if !now.Before(sess.expires) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *SessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
