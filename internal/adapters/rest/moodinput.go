package rest

import (
	"errors"
	"net/http"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
	"github.com/ewilliams-labs/moodtune/internal/core/ports"
	"github.com/ewilliams-labs/moodtune/internal/moodinput"
	"github.com/ewilliams-labs/moodtune/internal/player"
)

type voiceRequest struct {
	Transcript string `json:"transcript"`
}

type voiceResponse struct {
	Transcript string             `json:"transcript"`
	Recognized bool               `json:"recognized"`
	Command    *moodinput.Command `json:"command,omitempty"`
	Message    string             `json:"message,omitempty"`
	Snapshot   player.Snapshot    `json:"snapshot"`
}

type faceRequest struct {
	Expressions map[string]float64 `json:"expressions"`
}

type faceResponse struct {
	Detection moodinput.Detection `json:"detection"`
	Label     string              `json:"label"`
	Triggered bool                `json:"triggered"`
	Message   string              `json:"message,omitempty"`
	Snapshot  player.Snapshot     `json:"snapshot"`
}

// Voice handles POST /api/voice. Unrecognised transcripts are not an
// error: the client simply keeps listening.
func (h *Handler) Voice(w http.ResponseWriter, r *http.Request, userID int64) {
	var req voiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s := h.players.Session(userID)

	cmd, ok := moodinput.ParseCommand(req.Transcript)
	if !ok {
		writeJSON(w, http.StatusOK, voiceResponse{Transcript: req.Transcript, Snapshot: s.Snapshot()})
		return
	}

	resp := voiceResponse{Transcript: req.Transcript, Recognized: true, Command: &cmd}
	snap, err := s.Apply(r.Context(), cmd)
	if err != nil {
		if !softPlayerError(err) {
			fail(w, r, err)
			return
		}
		resp.Message = publicMessage(statusFor(err), err)
	}
	resp.Snapshot = snap
	writeJSON(w, http.StatusOK, resp)
}

// Face handles POST /api/face with the expression scores of one frame.
func (h *Handler) Face(w http.ResponseWriter, r *http.Request, userID int64) {
	var req faceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s := h.players.Session(userID)

	det, ok := moodinput.Classify(req.Expressions)
	resp := faceResponse{Detection: det, Triggered: ok}
	if det.Expression != "" {
		resp.Label = det.Label()
	}
	if !ok {
		resp.Snapshot = s.Snapshot()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	snap, err := s.Apply(r.Context(), moodinput.Command{Type: moodinput.ActionChangeMood, Mood: det.Mood})
	if err != nil {
		if !softPlayerError(err) {
			fail(w, r, err)
			return
		}
		resp.Message = publicMessage(statusFor(err), err)
	}
	resp.Snapshot = snap
	writeJSON(w, http.StatusOK, resp)
}

// softPlayerError reports errors a hands-free command shows as a message
// instead of failing the request.
func softPlayerError(err error) bool {
	return errors.Is(err, ports.ErrNoSongs) ||
		errors.Is(err, player.ErrNothingPlaying) ||
		errors.Is(err, player.ErrNoFavorites) ||
		errors.Is(err, domain.ErrDuplicateSong)
}
