package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/maya/media-user-api/internal/domain"
	"github.com/maya/media-user-api/internal/metrics"
	"github.com/maya/media-user-api/internal/token"
)

type contextKey string

const (
	identityKey       contextKey = "identity"
	identityHolderKey contextKey = "identityHolder"
)

// identityHolder is seeded into the context by Logging before routing and
// filled by Auth, which runs on a downstream copy of the request. Sharing
// the pointer is the only way the identity can flow back upstream to the
// log line.
type identityHolder struct {
	identity domain.Identity
	set      bool
}

// authScheme is the Authorization header scheme the API accepts, matched
// case-insensitively: "Authorization: jwt <token>".
const authScheme = "jwt"

// Auth is the token authenticator. It verifies the presented session token
// before any protected handler runs and injects the identity into the
// request context. Verification is stateless: the store is never consulted,
// so a deleted user's token stays valid until it expires.
func Auth(issuer *token.Issuer, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, collector, "authorization header required")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], authScheme) {
				unauthorized(w, collector, "invalid authorization header")
				return
			}

			identity, err := issuer.Verify(parts[1])
			if err != nil {
				unauthorized(w, collector, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			if holder, ok := ctx.Value(identityHolderKey).(*identityHolder); ok {
				holder.identity = identity
				holder.set = true
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity returns the authenticated identity stored by Auth.
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

func unauthorized(w http.ResponseWriter, collector *metrics.Collector, message string) {
	if collector != nil {
		collector.RecordAuthFailure()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
