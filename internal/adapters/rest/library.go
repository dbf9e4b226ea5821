package rest

import (
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

type songRequest struct {
	Song domain.Song `json:"song"`
}

type favoriteResponse struct {
	domain.FavoriteEntry
	AddedAgo string `json:"addedAgo"`
}

type historyResponse struct {
	domain.HistoryEntry
	PlayedAgo    string `json:"playedAgo"`
	DurationText string `json:"durationText,omitempty"`
}

type favoriteStateResponse struct {
	URL      string `json:"url"`
	Favorite bool   `json:"favorite"`
	Changed  bool   `json:"changed"`
}

func (h *Handler) ago(t time.Time) string {
	return humanize.RelTime(t, h.now(), "ago", "from now")
}

// ListFavorites handles GET /api/favorites?q=&sort=
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request, userID int64) {
	q := r.URL.Query()
	favs, err := h.svc.Favorites(r.Context(), userID, q.Get("q"), q.Get("sort"))
	if err != nil {
		fail(w, r, err)
		return
	}
	out := make([]favoriteResponse, len(favs))
	for i, f := range favs {
		out[i] = favoriteResponse{FavoriteEntry: f, AddedAgo: h.ago(f.AddedAt)}
	}
	writeJSON(w, http.StatusOK, out)
}

// AddFavorite handles POST /api/favorites
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request, userID int64) {
	var req songRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	added, err := h.svc.AddFavorite(r.Context(), userID, req.Song)
	if err != nil {
		fail(w, r, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, favoriteStateResponse{URL: req.Song.URL, Favorite: true, Changed: added})
}

// RemoveFavorite handles DELETE /api/favorites?url=
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request, userID int64) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	removed, err := h.svc.RemoveFavorite(r.Context(), userID, url)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, favoriteStateResponse{URL: url, Favorite: false, Changed: removed})
}

// ToggleFavorite handles POST /api/favorites/toggle
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request, userID int64) {
	var req songRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	state, err := h.svc.ToggleFavorite(r.Context(), userID, req.Song)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, favoriteStateResponse{URL: req.Song.URL, Favorite: state, Changed: true})
}

// ListHistory handles GET /api/history
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request, userID int64) {
	hist, err := h.svc.History(r.Context(), userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	out := make([]historyResponse, len(hist))
	for i, e := range hist {
		out[i] = historyResponse{HistoryEntry: e, PlayedAgo: h.ago(e.PlayedAt)}
		if e.DurationSec > 0 {
			out[i].DurationText = domain.FormatClock(e.DurationSec)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// RecordPlay handles POST /api/history
func (h *Handler) RecordPlay(w http.ResponseWriter, r *http.Request, userID int64) {
	var req songRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.RecordPlay(r.Context(), userID, req.Song); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request, userID int64) {
	stats, err := h.svc.Stats(r.Context(), userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
