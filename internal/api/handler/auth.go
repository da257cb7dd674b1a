package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tmorey/clubdesk/internal/api/middleware"
	"github.com/tmorey/clubdesk/internal/api/request"
	"github.com/tmorey/clubdesk/internal/api/response"
	"github.com/tmorey/clubdesk/internal/services/session"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	sessions *session.Manager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}
	if req.FirstName == "" {
		WriteError(w, NewInvalidRequestError("first_name is required"))
		return
	}

	store, err := h.sessions.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromStore(store, true))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	store, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromStore(store, true))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetToken(r.Context())
	h.sessions.Logout(r.Context(), token)
	response.NoContent(w)
}
