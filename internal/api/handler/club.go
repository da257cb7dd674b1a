package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tmorey/clubdesk/internal/api/middleware"
	"github.com/tmorey/clubdesk/internal/api/request"
	"github.com/tmorey/clubdesk/internal/api/response"
	"github.com/tmorey/clubdesk/internal/model"
	"github.com/tmorey/clubdesk/internal/services/club"
)

// ClubHandler handles club endpoints
type ClubHandler struct {
	clubs *club.Service
}

// NewClubHandler creates a new club handler
func NewClubHandler(clubs *club.Service) *ClubHandler {
	return &ClubHandler{
		clubs: clubs,
	}
}

// Create handles POST /api/v1/clubs
func (h *ClubHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	store := middleware.MustGetStore(r.Context())

	created, err := h.clubs.CreateClub(r.Context(), club.Params{
		Name:   req.Name,
		Sport:  req.Sport,
		County: req.County,
		Color:  req.Color,
	}, store.Identity(), store)
	if err != nil {
		WriteError(w, err)
		return
	}

	// Pick up the creator's new admin assignment
	store.FetchProfile(r.Context())

	response.JSON(w, http.StatusCreated, response.ClubFromModel(created))
}

// Get handles GET /api/v1/clubs/{club_id}
func (h *ClubHandler) Get(w http.ResponseWriter, r *http.Request) {
	clubID := model.ClubID(mux.Vars(r)["club_id"])

	found, err := h.clubs.GetClub(r.Context(), clubID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ClubFromModel(found))
}

// Update handles PATCH /api/v1/clubs/{club_id}
func (h *ClubHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	clubID := model.ClubID(mux.Vars(r)["club_id"])

	updated, err := h.clubs.UpdateClub(r.Context(), clubID, club.Updates{
		Name:   req.Name,
		Sport:  req.Sport,
		County: req.County,
		Color:  req.Color,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	// Keep the session's active club in step when it was the one updated
	store := middleware.MustGetStore(r.Context())
	if store.ActiveClub().ID == updated.ID {
		store.SetActiveClub(*updated)
	}

	response.JSON(w, http.StatusOK, response.ClubFromModel(updated))
}
