package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
	"github.com/ewilliams-labs/moodtune/internal/core/ports"
)

const (
	defaultSessionTTL = 24 * time.Hour
	defaultCacheTTL   = 5 * time.Minute
)

// Orchestrator coordinates the catalog, the per-user library and the
// storage ports behind the HTTP API.
type Orchestrator struct {
	users     ports.UserRepository
	playlists ports.PlaylistRepository
	library   ports.LibraryRepository
	meta      ports.SongMetaRepository
	catalog   ports.SongCatalog
	sessions  ports.SessionStore

	cache      ports.CatalogCache
	cacheTTL   time.Duration
	jobs       ports.JobSubmitter
	sessionTTL time.Duration
	bcryptCost int
	httpClient *http.Client
	now        func() time.Time
	intn       func(n int) int

	// serialises read-modify-write of favorites and history
	libraryMu sync.Mutex
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithCache enables caching of mood listings.
func WithCache(cache ports.CatalogCache, ttl time.Duration) Option {
	return func(o *Orchestrator) {
		o.cache = cache
		if ttl > 0 {
			o.cacheTTL = ttl
		}
	}
}

// WithJobs submits duration analysis for songs listed without one.
func WithJobs(jobs ports.JobSubmitter) Option {
	return func(o *Orchestrator) { o.jobs = jobs }
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(o *Orchestrator) {
		if ttl > 0 {
			o.sessionTTL = ttl
		}
	}
}

func WithBcryptCost(cost int) Option {
	return func(o *Orchestrator) { o.bcryptCost = cost }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.httpClient = c
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithRandom replaces the source of random picks; intn must return a value in [0,n).
func WithRandom(intn func(n int) int) Option {
	return func(o *Orchestrator) { o.intn = intn }
}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator(store ports.Store, catalog ports.SongCatalog, sessions ports.SessionStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		users:      store,
		playlists:  store,
		library:    store,
		meta:       store,
		catalog:    catalog,
		sessions:   sessions,
		cacheTTL:   defaultCacheTTL,
		sessionTTL: defaultSessionTTL,
		bcryptCost: defaultBcryptCost,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
		intn:       rand.IntN,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AddToPlaylist saves song to the user's server-side playlist. A URL that
// is already saved yields domain.ErrDuplicateSong.
func (o *Orchestrator) AddToPlaylist(ctx context.Context, userID int64, song domain.Song) (domain.PlaylistEntry, error) {
	entry, err := domain.NewPlaylistEntry(userID, song)
	if err != nil {
		return domain.PlaylistEntry{}, fmt.Errorf("service: %w", err)
	}

	pl, err := o.GetPlaylist(ctx, userID)
	if err != nil {
		return domain.PlaylistEntry{}, err
	}
	if err := pl.Add(entry); err != nil {
		return domain.PlaylistEntry{}, fmt.Errorf("service: domain rule violation: %w", err)
	}

	// the store enforces uniqueness too, for concurrent adds
	saved, err := o.playlists.AddEntry(ctx, entry)
	if errors.Is(err, domain.ErrDuplicateSong) {
		return domain.PlaylistEntry{}, fmt.Errorf("service: domain rule violation: %w", err)
	}
	if err != nil {
		return domain.PlaylistEntry{}, fmt.Errorf("service: failed to save playlist entry: %w", err)
	}
	return saved, nil
}

// GetPlaylist loads the entries saved by userID, oldest first.
func (o *Orchestrator) GetPlaylist(ctx context.Context, userID int64) (domain.Playlist, error) {
	if userID <= 0 {
		return domain.Playlist{}, fmt.Errorf("service: %w: user id is required", domain.ErrInvalidArgument)
	}
	entries, err := o.playlists.ListEntries(ctx, userID)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("service: failed to load playlist: %w", err)
	}
	if entries == nil {
		entries = []domain.PlaylistEntry{}
	}
	return domain.Playlist{UserID: userID, Entries: entries}, nil
}

// RemoveFromPlaylist deletes one entry by its server-assigned id.
func (o *Orchestrator) RemoveFromPlaylist(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("service: %w: entry id is required", domain.ErrInvalidArgument)
	}
	if err := o.playlists.DeleteEntry(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("service: playlist entry %d: %w", id, err)
		}
		return fmt.Errorf("service: failed to remove playlist entry: %w", err)
	}
	return nil
}
