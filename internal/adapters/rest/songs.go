package rest

import (
	"errors"
	"net/http"
	"path"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
	"github.com/ewilliams-labs/moodtune/internal/core/ports"
)

// ListSongs handles GET /songs?mood=&q=
// An unknown mood lists nothing, as the song folders never had one.
func (h *Handler) ListSongs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("mood") {
		writeError(w, http.StatusBadRequest, "mood is required")
		return
	}
	mood, err := domain.ParseMood(q.Get("mood"))
	if err != nil {
		writeJSON(w, http.StatusOK, []domain.Song{})
		return
	}

	songs, err := h.svc.SearchSongs(r.Context(), mood, q.Get("q"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

// PlayRandom handles GET /play?mood= and answers in plain text: the URL
// of a random song, or a message when the mood has none.
func (h *Handler) PlayRandom(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("mood")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "mood is required")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	mood, err := domain.ParseMood(raw)
	if err != nil {
		w.Write([]byte(ports.NoSongsError{Mood: domain.Mood(raw)}.Error()))
		return
	}
	song, err := h.svc.RandomSong(r.Context(), mood)
	if err != nil {
		if errors.Is(err, ports.ErrNoSongs) {
			w.Write([]byte(ports.NoSongsError{Mood: mood}.Error()))
			return
		}
		fail(w, r, err)
		return
	}
	w.Write([]byte(song.URL))
}

// ServeSong handles GET /songs/{mood}/{file}
func (h *Handler) ServeSong(w http.ResponseWriter, r *http.Request) {
	if h.files == nil {
		http.NotFound(w, r)
		return
	}
	p, ok := h.files.Resolve(path.Join(r.PathValue("mood"), r.PathValue("file")))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, p)
}
