package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/chakronwork/SmartStay/internal/domain"
)

type ctxKey int

const identityKey ctxKey = iota

// TokenVerifier turns a bearer token into a verified identity.
type TokenVerifier func(token string) (domain.Identity, error)

// RequireAuth rejects requests without a valid bearer token before any
// handler or data access runs. The problem detail points the caller at
// the login route.
func RequireAuth(verify TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "sign in at /v1/auth/login first")
				return
			}
			id, err := verify(raw)
			if err != nil {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "session expired or invalid; sign in again")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, id)))
		})
	}
}

// RequireRole gates a subtree on the role claim carried in the token.
// Must be mounted below RequireAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok || id.Role != role {
				writeProblem(w, http.StatusForbidden, "Forbidden", "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
