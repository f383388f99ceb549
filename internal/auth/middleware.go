package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sakif/krishi-mitra/internal/model"
	"github.com/sakif/krishi-mitra/internal/repository"
)

// contextKey is an unexported type for context keys in this package.
// A package-private key type means no other package can read or shadow
// the authenticated user we stash in the request context.
type contextKey string

const userKey contextKey = "user"

const unauthorizedBody = `{"error":"unauthorized","message":"Could not validate credentials"}`

// RequireAuth enforces authentication on protected routes.
//
// It reads the "Authorization: Bearer <token>" header, validates the
// token, and — because a token can outlive its account — resolves the
// subject username against the credential store. Only a token that maps
// to an existing user gets through; everything else is 401 and the chain
// stops. The full user record is stored in the request context so
// handlers never need a second lookup.
//
// This means every authenticated request costs one user read. At this
// scale that's fine, and it's what makes "delete the account" an
// effective kill switch despite stateless tokens.
func RequireAuth(tokens *TokenService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolveUser(r, tokens, users)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, unauthorizedBody, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// RequireAdmin gates a route on the admin role. It must run after
// RequireAuth (it reads the resolved user from the context).
//
// The role is a claim on the user record; in practice only the seeded
// "admin" account carries it, preserving the original single-admin
// behaviour while leaving room for more roles later.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || !user.IsAdmin() {
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"error":"forbidden","message":"Not authorized"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ContextWithUser returns a context carrying the authenticated user.
// RequireAuth uses it on every request; tests use it to fake one.
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext retrieves the authenticated user set by RequireAuth.
// Returns (nil, false) on routes outside the auth middleware.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// resolveUser extracts the bearer token, validates it, and loads the
// user record for its subject.
func resolveUser(r *http.Request, tokens *TokenService, users repository.UserRepository) (*model.User, error) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return nil, errors.New("auth: missing bearer token")
	}

	username, err := tokens.Validate(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return nil, err
	}

	// The subject must still resolve to a live account. A token issued
	// before an admin deleted the user is rejected here.
	return users.GetByUsername(r.Context(), username)
}
