package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"buddy/internal/models"
	"buddy/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	UserIDContextKey ContextKey = "user_id"
	RoleContextKey   ContextKey = "role"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens *security.TokenIssuer
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.TokenIssuer) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireAuth verifies the Bearer token and puts the subject and role
// on the request context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, role, err := m.tokens.Verify(token)
		if err != nil {
			if errors.Is(err, security.ErrTokenExpired) {
				respondError(w, http.StatusUnauthorized, "token expired")
				return
			}
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		ctx = context.WithValue(ctx, RoleContextKey, role)
		next(w, r.WithContext(ctx))
	}
}

// RequireParent wraps RequireAuth and rejects non-parent tokens
func (m *Middleware) RequireParent(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		if RoleFromContext(r) != models.RoleParent {
			respondError(w, http.StatusForbidden, "parent account required")
			return
		}
		next(w, r)
	})
}

// RequireChild wraps RequireAuth and rejects non-child tokens
func (m *Middleware) RequireChild(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		if RoleFromContext(r) != models.RoleChild {
			respondError(w, http.StatusForbidden, "child account required")
			return
		}
		next(w, r)
	})
}

// UserIDFromContext returns the authenticated user's id
func UserIDFromContext(r *http.Request) string {
	id, _ := r.Context().Value(UserIDContextKey).(string)
	return id
}

// RoleFromContext returns the authenticated user's role
func RoleFromContext(r *http.Request) models.UserRole {
	role, _ := r.Context().Value(RoleContextKey).(models.UserRole)
	return role
}

// Logging logs every request with its duration
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
