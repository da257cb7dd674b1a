package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tmorey/clubdesk/internal/api/middleware"
	"github.com/tmorey/clubdesk/internal/api/request"
	"github.com/tmorey/clubdesk/internal/api/response"
	"github.com/tmorey/clubdesk/internal/model"
)

// SessionHandler handles session views and persona switching
type SessionHandler struct{}

// NewSessionHandler creates a new session handler
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	store := middleware.MustGetStore(r.Context())
	response.JSON(w, http.StatusOK, response.SessionFromStore(store, false))
}

// SetPersona handles PUT /api/v1/session/persona
func (h *SessionHandler) SetPersona(w http.ResponseWriter, r *http.Request) {
	var req request.SetPersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	store := middleware.MustGetStore(r.Context())
	if err := store.SetPersona(req.Role); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PermissionsFromSnapshot(store.Permissions()))
}

// Permissions handles GET /api/v1/session/permissions
func (h *SessionHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	store := middleware.MustGetStore(r.Context())
	response.JSON(w, http.StatusOK, response.PermissionsFromSnapshot(store.Permissions()))
}

// Can handles GET /api/v1/session/can?action=...&team_id=...
// Unknown actions resolve to a denial, not an error.
func (h *SessionHandler) Can(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	if action == "" {
		WriteError(w, NewInvalidRequestError("action is required"))
		return
	}
	teamID := r.URL.Query().Get("team_id")

	store := middleware.MustGetStore(r.Context())
	allowed := store.Can(model.Action(action), model.TeamID(teamID))

	response.JSON(w, http.StatusOK, response.CanResult{
		Action:  action,
		TeamID:  teamID,
		Allowed: allowed,
	})
}

// ManagedTeams handles GET /api/v1/session/teams
func (h *SessionHandler) ManagedTeams(w http.ResponseWriter, r *http.Request) {
	store := middleware.MustGetStore(r.Context())
	response.JSON(w, http.StatusOK, response.ManagedTeamsFromModel(store.ManagedTeams()))
}
