package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tmorey/clubdesk/internal/api/handler"
	"github.com/tmorey/clubdesk/internal/api/middleware"
	"github.com/tmorey/clubdesk/internal/model"
	"github.com/tmorey/clubdesk/internal/services/club"
	"github.com/tmorey/clubdesk/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	SessionManager *session.Manager
	ClubService    *club.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.SessionManager)
	sessionHandler := handler.NewSessionHandler()
	clubHandler := handler.NewClubHandler(cfg.ClubService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.SessionManager)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required for registering/logging in)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Session routes (all require auth)
	sessions := api.PathPrefix("/session").Subrouter()
	sessions.Use(authMiddleware)
	sessions.HandleFunc("", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/persona", sessionHandler.SetPersona).Methods(http.MethodPut)
	sessions.HandleFunc("/permissions", sessionHandler.Permissions).Methods(http.MethodGet)
	sessions.HandleFunc("/can", sessionHandler.Can).Methods(http.MethodGet)
	sessions.HandleFunc("/teams", sessionHandler.ManagedTeams).Methods(http.MethodGet)

	// Club routes (all require auth)
	clubs := api.PathPrefix("/clubs").Subrouter()
	clubs.Use(authMiddleware)
	clubs.HandleFunc("", clubHandler.Create).Methods(http.MethodPost)
	clubs.HandleFunc("/{club_id}", clubHandler.Get).Methods(http.MethodGet)

	// Club settings changes are guarded by the manage_club action
	clubSettings := api.PathPrefix("/clubs").Subrouter()
	clubSettings.Use(authMiddleware)
	clubSettings.Use(middleware.RequireAction(model.ActionManageClub))
	clubSettings.HandleFunc("/{club_id}", clubHandler.Update).Methods(http.MethodPatch)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
