package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

// --- Mocks ---

// mockStore is an in-memory ports.Store.
type mockStore struct {
	mu        sync.Mutex
	users     map[int64]domain.User
	entries   []domain.PlaylistEntry
	favorites map[int64]domain.Favorites
	history   map[int64]domain.History
	durations map[string]float64
	nextID    int64

	addErr  error
	listErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		users:     map[int64]domain.User{},
		favorites: map[int64]domain.Favorites{},
		history:   map[int64]domain.History{},
		durations: map[string]float64{},
	}
}

func (m *mockStore) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return domain.User{}, domain.ErrUsernameTaken
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.users[u.ID] = u
	return u, nil
}

func (m *mockStore) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *mockStore) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockStore) UpdateTheme(ctx context.Context, userID int64, theme string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Theme = theme
	m.users[userID] = u
	return nil
}

func (m *mockStore) AddEntry(ctx context.Context, e domain.PlaylistEntry) (domain.PlaylistEntry, error) {
	if m.addErr != nil {
		return domain.PlaylistEntry{}, m.addErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	m.entries = append(m.entries, e)
	return e, nil
}

func (m *mockStore) ListEntries(ctx context.Context, userID int64) ([]domain.PlaylistEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.PlaylistEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockStore) DeleteEntry(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) GetFavorites(ctx context.Context, userID int64) (domain.Favorites, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.favorites[userID], nil
}

func (m *mockStore) SaveFavorites(ctx context.Context, userID int64, f domain.Favorites) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favorites[userID] = f
	return nil
}

func (m *mockStore) GetHistory(ctx context.Context, userID int64) (domain.History, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history[userID], nil
}

func (m *mockStore) SaveHistory(ctx context.Context, userID int64, h domain.History) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[userID] = h
	return nil
}

func (m *mockStore) SaveDuration(ctx context.Context, url string, seconds float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[url] = seconds
	return nil
}

func (m *mockStore) Durations(ctx context.Context, urls []string) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]float64{}
	for _, u := range urls {
		if d, ok := m.durations[u]; ok {
			out[u] = d
		}
	}
	return out, nil
}

func (m *mockStore) Close() error { return nil }

// mockCatalog serves fixed listings and counts calls.
type mockCatalog struct {
	songs map[domain.Mood][]domain.Song
	paths map[string]string
	err   error
	calls int
}

func (m *mockCatalog) ListSongs(ctx context.Context, mood domain.Mood) ([]domain.Song, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.songs[mood], nil
}

func (m *mockCatalog) LocalPath(url string) (string, bool) {
	p, ok := m.paths[url]
	return p, ok
}

type mockCache struct {
	data   map[domain.Mood][]domain.Song
	getErr error
	sets   int
}

func (m *mockCache) Get(ctx context.Context, mood domain.Mood) ([]domain.Song, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	s, ok := m.data[mood]
	return s, ok, nil
}

func (m *mockCache) Set(ctx context.Context, mood domain.Mood, songs []domain.Song, ttl time.Duration) error {
	if m.data == nil {
		m.data = map[domain.Mood][]domain.Song{}
	}
	m.data[mood] = songs
	m.sets++
	return nil
}

type mockSessions struct {
	mu     sync.Mutex
	tokens map[string]int64
	err    error
}

func (m *mockSessions) Create(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		m.tokens = map[string]int64{}
	}
	m.tokens[token] = userID
	return nil
}

func (m *mockSessions) Lookup(ctx context.Context, token string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.tokens[token]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

func (m *mockSessions) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}

type mockJobs struct {
	submitted []string
	paths     []string
}

func (m *mockJobs) SubmitAnalysis(url, path string) {
	m.submitted = append(m.submitted, url)
	m.paths = append(m.paths, path)
}

var errBoom = errors.New("boom")
