package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Strum355/log"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
	"github.com/ewilliams-labs/moodtune/internal/player"
)

const (
	eventBuffer       = 16
	eventKeepAlive    = 25 * time.Second
	playerActionUsage = "action must be one of play, pause, resume, toggle, stop, next, shuffle, enqueue, seek, volume, mood, progress, favorites, save"
)

// playerRequest carries the optional arguments of a player action.
type playerRequest struct {
	Song     *domain.Song `json:"song,omitempty"`
	Percent  *float64     `json:"percent,omitempty"`
	Volume   *float64     `json:"volume,omitempty"`
	Mood     domain.Mood  `json:"mood,omitempty"`
	URL      string       `json:"url,omitempty"`
	Position float64      `json:"position,omitempty"`
	Duration float64      `json:"duration,omitempty"`
}

// PlayerState handles GET /api/player
func (h *Handler) PlayerState(w http.ResponseWriter, r *http.Request, userID int64) {
	writeJSON(w, http.StatusOK, h.players.Session(userID).Snapshot())
}

// PlayerAction handles POST /api/player/{action}. The body is optional
// for actions without arguments.
func (h *Handler) PlayerAction(w http.ResponseWriter, r *http.Request, userID int64) {
	var req playerRequest
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}

	snap, err := h.runAction(r.Context(), h.players.Session(userID), r.PathValue("action"), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) runAction(ctx context.Context, s *player.Session, action string, req playerRequest) (player.Snapshot, error) {
	switch action {
	case "play":
		if req.Song == nil {
			return s.Resume(ctx)
		}
		song, err := h.completeSong(ctx, *req.Song)
		if err != nil {
			return s.Snapshot(), err
		}
		return s.Play(ctx, song)
	case "pause":
		return s.Pause(), nil
	case "resume":
		return s.Resume(ctx)
	case "toggle":
		return s.Toggle(ctx)
	case "stop":
		return s.Stop(), nil
	case "next":
		return s.Next(ctx)
	case "shuffle":
		return s.Shuffle(ctx)
	case "enqueue":
		if req.Song == nil {
			return s.Snapshot(), fmt.Errorf("%w: song is required", domain.ErrInvalidArgument)
		}
		song, err := h.completeSong(ctx, *req.Song)
		if err != nil {
			return s.Snapshot(), err
		}
		return s.Enqueue(song)
	case "seek":
		if req.Percent == nil {
			return s.Snapshot(), fmt.Errorf("%w: percent is required", domain.ErrInvalidArgument)
		}
		return s.Seek(*req.Percent)
	case "volume":
		if req.Volume == nil {
			return s.Snapshot(), fmt.Errorf("%w: volume is required", domain.ErrInvalidArgument)
		}
		return s.SetVolume(*req.Volume), nil
	case "mood":
		return s.ChangeMood(ctx, req.Mood)
	case "progress":
		return s.Progress(ctx, req.URL, req.Position, req.Duration)
	case "favorites":
		return s.PlayFavorites(ctx)
	case "save":
		return s.AddCurrentToPlaylist(ctx)
	}
	return s.Snapshot(), fmt.Errorf("%w: %s", domain.ErrInvalidArgument, playerActionUsage)
}

// completeSong fills in a song given only by URL from the catalog.
func (h *Handler) completeSong(ctx context.Context, song domain.Song) (domain.Song, error) {
	if song.URL == "" {
		return song, fmt.Errorf("%w: song url is required", domain.ErrInvalidArgument)
	}
	if song.Name != "" && song.Mood.Valid() {
		return song, nil
	}
	return h.svc.FindSong(ctx, song.URL)
}

// PlayerEvents handles GET /api/player/events as a server-sent event
// stream of the user's player changes.
func (h *Handler) PlayerEvents(w http.ResponseWriter, r *http.Request, userID int64) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, cancel := h.players.Events().Subscribe(userID, eventBuffer)
	defer cancel()

	hdr := w.Header()
	hdr.Set("Content-Type", "text/event-stream")
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// current state first so clients need no separate GET
	if err := writeEvent(w, "snapshot", h.players.Session(userID).Snapshot()); err != nil {
		return
	}
	flusher.Flush()

	keepAlive := time.NewTicker(eventKeepAlive)
	defer keepAlive.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, e.Action, e); err != nil {
				log.WithContext(r.Context()).WithError(err).Warn("player event stream closed")
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
