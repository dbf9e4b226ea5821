package rest

import (
	"net/http"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	resultResponse
	Username string `json:"username"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	resultResponse
	Username string `json:"username"`
	UserID   int64  `json:"userId"`
	Token    string `json:"token"`
	Theme    string `json:"theme"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type moodResponse struct {
	ID       domain.Mood `json:"id"`
	Emoji    string      `json:"emoji"`
	Color    string      `json:"color"`
	Gradient [2]string   `json:"gradient"`
	Palette  [3]string   `json:"palette"`
}

// Register handles POST /api/users/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		failResult(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, registerResponse{
		resultResponse: resultResponse{Success: true, Message: "Registration successful"},
		Username:       user.Username,
	})
}

// Login handles POST /api/users/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		failResult(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		resultResponse: resultResponse{Success: true, Message: "Login successful"},
		Username:       res.User.Username,
		UserID:         res.User.ID,
		Token:          res.Token,
		Theme:          res.User.Theme,
	})
}

// Logout handles POST /api/users/logout. The user's player session is
// dropped along with the token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	userID, authErr := h.svc.Authenticate(r.Context(), token)
	if err := h.svc.Logout(r.Context(), token); err != nil {
		failResult(w, r, err)
		return
	}
	if authErr == nil {
		h.players.Drop(userID)
	}
	writeResult(w, http.StatusOK, "Logged out")
}

// Me handles GET /api/users/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request, userID int64) {
	user, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// SetTheme handles PUT /api/users/theme
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request, userID int64) {
	var req themeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	theme, err := h.svc.SetTheme(r.Context(), userID, req.Theme)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, theme)
}

// ListThemes handles GET /api/themes
func (h *Handler) ListThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Themes())
}

// ListMoods handles GET /api/moods
func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request) {
	moods := domain.AllMoods()
	out := make([]moodResponse, len(moods))
	for i, m := range moods {
		out[i] = moodResponse{ID: m, Emoji: m.Emoji(), Color: m.Color(), Gradient: m.Gradient(), Palette: m.Palette()}
	}
	writeJSON(w, http.StatusOK, out)
}
