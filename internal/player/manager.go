package player

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Manager owns one Session per user, created on first use.
type Manager struct {
	lib  Library
	bus  *Bus
	now  func() time.Time
	intn func(int) int

	mu       sync.Mutex
	sessions map[int64]*Session
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithRandom replaces the random source; intn must return a value in [0,n).
func WithRandom(intn func(int) int) Option {
	return func(m *Manager) { m.intn = intn }
}

func NewManager(lib Library, opts ...Option) *Manager {
	m := &Manager{
		lib:      lib,
		bus:      NewBus(),
		now:      time.Now,
		intn:     rand.IntN,
		sessions: map[int64]*Session{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session returns the session of userID, creating it if needed.
func (m *Manager) Session(userID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = newSession(userID, m.lib, m.bus, m.now, m.intn)
		m.sessions[userID] = s
	}
	return s
}

// Drop forgets the session of userID, typically on logout.
func (m *Manager) Drop(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Events is the bus every session publishes to.
func (m *Manager) Events() *Bus {
	return m.bus
}
