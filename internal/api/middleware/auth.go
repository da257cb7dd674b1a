package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tmorey/clubdesk/internal/api/apierr"
	"github.com/tmorey/clubdesk/internal/model"
	"github.com/tmorey/clubdesk/internal/services/session"
)

type contextKey string

const (
	storeContextKey contextKey = "session_store"
	tokenContextKey contextKey = "session_token"
)

// Auth creates authentication middleware. The bearer (or cookie) token
// is resolved to its session store via the manager, running InitAuth
// when the token has not been seen; unauthenticated requests are
// denied.
func Auth(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			store := manager.ForToken(r.Context(), token)
			if !store.IsAuthenticated() {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, storeContextKey, store)
			ctx = context.WithValue(ctx, tokenContextKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves a session store if a token is present but
// doesn't require one; anonymous requests get a fresh anonymous store
func OptionalAuth(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			store := manager.ForToken(r.Context(), token)

			ctx := r.Context()
			ctx = context.WithValue(ctx, storeContextKey, store)
			ctx = context.WithValue(ctx, tokenContextKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAction creates route-guard middleware denying sessions that
// cannot perform the action. Must be applied after Auth.
func RequireAction(action model.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := MustGetStore(r.Context())
			if !store.Can(action, "") {
				apierr.WriteError(w, apierr.NewForbiddenError(action))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetStore returns the session store from the request context
func GetStore(ctx context.Context) *session.Store {
	store, _ := ctx.Value(storeContextKey).(*session.Store)
	return store
}

// GetToken returns the session token from the request context
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// MustGetStore returns the session store or panics
func MustGetStore(ctx context.Context) *session.Store {
	store := GetStore(ctx)
	if store == nil {
		panic("no session store in context - auth middleware not applied?")
	}
	return store
}
