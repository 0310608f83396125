package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskcart/taskcart/token"
)

type contextKey string

const identityContextKey contextKey = "identity"

// RequireAuth verifies the bearer token and stashes the resulting identity in
// the request context. Verification is pure token inspection; handlers that
// need live account state look it up themselves.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			rawToken, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "invalid_token", "missing bearer token")
				return
			}

			identity, err := s.auth.Verify(rawToken)
			if err != nil {
				writeDomainError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next(w, r.WithContext(ctx))
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

// IdentityFromContext returns the verified identity placed by RequireAuth.
func IdentityFromContext(ctx context.Context) (*token.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*token.Identity)
	return identity, ok
}

// mustIdentity fetches the request identity, failing the request when the
// middleware chain was miswired.
func mustIdentity(w http.ResponseWriter, r *http.Request) (*token.Identity, bool) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "no identity in request")
		return nil, false
	}
	return identity, true
}
