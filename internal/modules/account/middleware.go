package account

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ranimhaddad/tijara-backend/internal/httpx"
)

type contextKey struct{}

var ownerKey contextKey

// RequireOwner authenticates the request with a Bearer token and injects
// the owner id into the request context. Every owner-scoped route sits
// behind it.
func RequireOwner(s Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" {
				httpx.Respond(w, http.StatusUnauthorized, map[string]string{"detail": "missing bearer token"})
				return
			}
			ownerID, err := s.VerifyToken(token)
			if err != nil {
				httpx.Respond(w, http.StatusUnauthorized, map[string]string{"detail": "invalid token"})
				return
			}
			ctx := context.WithValue(r.Context(), ownerKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerID returns the authenticated owner from the context. Routes behind
// RequireOwner always have one; elsewhere it returns uuid.Nil.
func OwnerID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(ownerKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithOwner returns a context carrying the owner id. Test helper.
func WithOwner(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerKey, id)
}
