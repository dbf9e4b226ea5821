// Package rest exposes the mood player over HTTP.
package rest

import (
	"net/http"
	"time"

	"github.com/ewilliams-labs/moodtune/internal/core/services"
	"github.com/ewilliams-labs/moodtune/internal/player"
)

const defaultCORSOrigin = "http://localhost:3000"

// SongFiles resolves "<mood>/<file>" below the song root to a file on disk.
type SongFiles interface {
	Resolve(rel string) (string, bool)
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc        *services.Orchestrator
	players    *player.Manager
	files      SongFiles
	corsOrigin string
	now        func() time.Time
	router     *http.ServeMux
}

type Option func(*Handler)

// WithCORSOrigin sets the Access-Control-Allow-Origin value.
func WithCORSOrigin(origin string) Option {
	return func(h *Handler) {
		if origin != "" {
			h.corsOrigin = origin
		}
	}
}

// WithSongFiles serves the catalog's mp3 files under /songs/.
func WithSongFiles(files SongFiles) Option {
	return func(h *Handler) { h.files = files }
}

func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Orchestrator, players *player.Manager, opts ...Option) *Handler {
	h := &Handler{
		svc:        svc,
		players:    players,
		corsOrigin: defaultCORSOrigin,
		now:        time.Now,
		router:     http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.withRequestLog(h.withCORS(h.router)).ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)

	// Accounts
	h.router.HandleFunc("POST /api/users/register", h.Register)
	h.router.HandleFunc("POST /api/users/login", h.Login)
	h.router.HandleFunc("POST /api/users/logout", h.Logout)
	h.router.HandleFunc("GET /api/users/me", h.authed(h.Me))
	h.router.HandleFunc("PUT /api/users/theme", h.authed(h.SetTheme))
	h.router.HandleFunc("GET /api/themes", h.ListThemes)
	h.router.HandleFunc("GET /api/moods", h.ListMoods)

	// Catalog
	h.router.HandleFunc("GET /songs", h.ListSongs)
	h.router.HandleFunc("GET /play", h.PlayRandom)
	h.router.HandleFunc("GET /songs/{mood}/{file}", h.ServeSong)

	// Server-side playlist
	h.router.HandleFunc("POST /api/playlist/add", h.AddToPlaylist)
	h.router.HandleFunc("GET /api/playlist/get", h.GetPlaylist)
	h.router.HandleFunc("DELETE /api/playlist/remove/{id}", h.RemoveFromPlaylist)

	// Favorites, history and statistics
	h.router.HandleFunc("GET /api/favorites", h.authed(h.ListFavorites))
	h.router.HandleFunc("POST /api/favorites", h.authed(h.AddFavorite))
	h.router.HandleFunc("DELETE /api/favorites", h.authed(h.RemoveFavorite))
	h.router.HandleFunc("POST /api/favorites/toggle", h.authed(h.ToggleFavorite))
	h.router.HandleFunc("GET /api/history", h.authed(h.ListHistory))
	h.router.HandleFunc("POST /api/history", h.authed(h.RecordPlay))
	h.router.HandleFunc("GET /api/stats", h.authed(h.Stats))

	// Player
	h.router.HandleFunc("GET /api/player", h.authed(h.PlayerState))
	h.router.HandleFunc("GET /api/player/events", h.authed(h.PlayerEvents))
	h.router.HandleFunc("POST /api/player/{action}", h.authed(h.PlayerAction))
	h.router.HandleFunc("POST /api/voice", h.authed(h.Voice))
	h.router.HandleFunc("POST /api/face", h.authed(h.Face))

	h.router.HandleFunc("GET /api/visualizer", h.authed(h.Visualizer))
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Moodtune is live 🎶"})
}
