package rest

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/Strum355/log"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
	"github.com/ewilliams-labs/moodtune/internal/core/ports"
	"github.com/ewilliams-labs/moodtune/internal/player"
)

type errorResponse struct {
	Error string `json:"error"`
}

// resultResponse is the envelope the user and playlist endpoints have
// always answered with.
type resultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeResult(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, resultResponse{Success: status < http.StatusBadRequest, Message: msg})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var noSongs *ports.NoSongsError
	switch {
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidMood),
		errors.Is(err, domain.ErrInvalidTheme):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrDuplicateSong),
		errors.Is(err, player.ErrNothingPlaying):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, player.ErrNoFavorites),
		errors.As(err, &noSongs):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// publicMessage hides internal failures from clients.
func publicMessage(status int, err error) string {
	if status == http.StatusInternalServerError {
		return "internal server error"
	}
	var noSongs *ports.NoSongsError
	if errors.As(err, &noSongs) {
		return noSongs.Error()
	}
	return err.Error()
}

// fail logs unexpected errors and writes the mapped status.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithContext(r.Context()).WithError(err).Error("request failed")
	}
	writeError(w, status, publicMessage(status, err))
}

// failResult is fail for endpoints answering with the success envelope.
func failResult(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithContext(r.Context()).WithError(err).Error("request failed")
	}
	writeResult(w, status, publicMessage(status, err))
}

func isJSONContentType(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// decodeJSON enforces the content type and decodes the body into v. It
// writes the error response itself and reports false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
