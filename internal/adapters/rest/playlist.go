package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

// addToPlaylistRequest accepts userId as a number or a numeric string.
type addToPlaylistRequest struct {
	UserID   json.Number `json:"userId"`
	SongName string      `json:"songName"`
	SongURL  string      `json:"songUrl"`
	Mood     string      `json:"mood"`
}

type addToPlaylistResponse struct {
	resultResponse
	ID int64 `json:"id"`
}

// AddToPlaylist handles POST /api/playlist/add
func (h *Handler) AddToPlaylist(w http.ResponseWriter, r *http.Request) {
	var req addToPlaylistRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID, err := req.UserID.Int64()
	if err != nil {
		writeResult(w, http.StatusBadRequest, "userId must be a number")
		return
	}

	entry, err := h.svc.AddToPlaylist(r.Context(), userID, domain.Song{
		Name: req.SongName,
		URL:  req.SongURL,
		Mood: domain.Mood(req.Mood),
	})
	if err != nil {
		failResult(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, addToPlaylistResponse{
		resultResponse: resultResponse{Success: true, Message: "Added to playlist"},
		ID:             entry.ID,
	})
}

// GetPlaylist handles GET /api/playlist/get?userId=
func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "userId must be a number")
		return
	}

	pl, err := h.svc.GetPlaylist(r.Context(), userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pl.Entries)
}

// RemoveFromPlaylist handles DELETE /api/playlist/remove/{id}
func (h *Handler) RemoveFromPlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeResult(w, http.StatusBadRequest, "id must be a number")
		return
	}

	if err := h.svc.RemoveFromPlaylist(r.Context(), id); err != nil {
		failResult(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, "Removed from playlist")
}
