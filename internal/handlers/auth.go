package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-console/internal/auth"
	"github.com/ukydev/fleet-console/internal/middleware"
	"github.com/ukydev/fleet-console/internal/models"
)

// SessionStore persists the logged-in session descriptor.
type SessionStore interface {
	Session(ctx context.Context) (*models.Session, error)
	SaveSession(ctx context.Context, sess models.Session) error
	ClearSession(ctx context.Context) error
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService *auth.Service
	sessions    SessionStore
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *auth.Service, sessions SessionStore) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// Login checks the credentials and persists a new session. A previous
// session is replaced.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var loginReq models.LoginRequest
	if err := json.Unmarshal(body, &loginReq); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if loginReq.Username == "" || loginReq.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	sess, err := h.authService.Login(loginReq.Username, loginReq.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.WithField("username", loginReq.Username).Warn("Login failed")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	if err := h.sessions.SaveSession(r.Context(), *sess); err != nil {
		log.WithError(err).Error("Failed to persist session")
		http.Error(w, "Failed to persist session", http.StatusInternalServerError)
		return
	}
	log.WithFields(log.Fields{"username": sess.Username, "role": sess.Role}).Info("User logged in")

	response := models.LoginResponse{
		Token:   sess.Token,
		Session: *sess,
	}
	writeJSON(w, http.StatusOK, response)
}

// Logout removes the persisted session, which invalidates its token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ClearSession(r.Context()); err != nil {
		log.WithError(err).Error("Failed to clear session")
		http.Error(w, "Failed to clear session", http.StatusInternalServerError)
		return
	}
	if claims, ok := middleware.GetUserFromContext(r.Context()); ok {
		log.WithField("username", claims.Username).Info("User logged out")
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me returns the current session descriptor without its token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserFromContext(r.Context()); !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	sess, err := h.sessions.Session(r.Context())
	if err != nil {
		http.Error(w, "Failed to read session", http.StatusInternalServerError)
		return
	}
	if sess == nil {
		http.Error(w, "Not logged in", http.StatusUnauthorized)
		return
	}
	sess.Token = ""
	writeJSON(w, http.StatusOK, sess)
}
