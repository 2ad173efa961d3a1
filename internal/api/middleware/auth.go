package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rohits-web03/docdrop/internal/auth"
	"github.com/rohits-web03/docdrop/internal/models"
	"github.com/rohits-web03/docdrop/internal/repositories"
	"github.com/rohits-web03/docdrop/internal/utils"
)

type contextKey string

const userKey contextKey = "user"

// Gate resolves the acting user from a bearer token and enforces the
// account predicates on top of that resolution.
type Gate struct {
	tokens *auth.TokenService
	users  repositories.UserRepository
}

func NewGate(tokens *auth.TokenService, users repositories.UserRepository) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// RequireUser validates the Authorization header, looks the subject up in
// the store, and stashes the resolved user in the request context. Missing
// headers, bad signatures, expired tokens, and deleted accounts all collapse
// into the same 401 so callers learn nothing about which part failed.
func (g *Gate) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			unauthenticated(w)
			return
		}

		subject, err := g.tokens.Validate(tokenStr)
		if err != nil {
			unauthenticated(w)
			return
		}

		user, err := g.users.FindByEmail(r.Context(), subject)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				unauthenticated(w)
				return
			}
			utils.JSONError(w, http.StatusInternalServerError, "Database error")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireActive rejects soft-disabled accounts. The status is deliberately
// distinct from the generic 401 so a disabled user can tell what happened.
func RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			unauthenticated(w)
			return
		}
		if !user.IsActive {
			utils.JSONError(w, http.StatusBadRequest, "Inactive user")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOps restricts an endpoint to operations users.
func RequireOps(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			unauthenticated(w)
			return
		}
		if !user.IsOpsUser {
			utils.JSONError(w, http.StatusForbidden, "Not an operations user")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the identity resolved by RequireUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// WithUser returns a context carrying user, for handler tests that skip the
// middleware chain.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	utils.JSONError(w, http.StatusUnauthorized, "Could not validate credentials")
}
