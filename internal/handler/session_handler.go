package handler

import (
	"encoding/json"
	"net/http"

	"cucinanostrard/internal/model"
	"cucinanostrard/internal/session"

	"github.com/rs/zerolog"
)

// SessionHandler serves the admin auth endpoints.
type SessionHandler struct {
	manager *session.Manager
	logger  zerolog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(manager *session.Manager, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		manager: manager,
		logger:  logger.With().Str("handler", "session").Logger(),
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Device  string `json:"device"`
	Expires string `json:"expiresAt"`
}

// Login handles POST /api/auth/login. The device identity is the
// caller's User-Agent header.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}

	if !h.manager.Login(req.Password, r.UserAgent()) {
		writeFailure(w, model.ErrInvalidPassword, h.logger)
		return
	}

	current := h.manager.CurrentSession()
	if current == nil {
		writeError(w, http.StatusInternalServerError, "session not persisted", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:   current.ID,
		Device:  current.Device.DeviceName,
		Expires: current.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

type logoutRequest struct {
	SessionID string `json:"sessionId,omitempty"`
}

// Logout handles POST /api/auth/logout. Without a session id in the
// body it revokes the caller's own session, identified by the token
// header the auth middleware already validated.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req logoutRequest
	if r.Body != nil {
		// An empty body targets the caller's session.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	target := req.SessionID
	if target == "" {
		target = r.Header.Get("X-Session-Token")
	}

	h.manager.Logout(target)
	writeJSON(w, http.StatusOK, map[string]bool{"loggedOut": true})
}

// LogoutAll handles POST /api/auth/logout-all: every persisted session
// is revoked unconditionally.
func (h *SessionHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	h.manager.LogoutAllDevices()
	writeJSON(w, http.StatusOK, map[string]bool{"loggedOut": true})
}

// Sessions handles GET /api/auth/sessions: all live sessions with the
// current-device flag derived for this runtime.
func (h *SessionHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	sessions := h.manager.AllSessions()
	if sessions == nil {
		sessions = []model.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}
