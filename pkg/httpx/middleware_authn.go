package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/pengkiwi/pengauth/pkg/slogx"
)

// Authenticator resolves a bearer access token to the user id it belongs
// to. Implementations are expected to check signature, expiry, and
// server-side revocation state (the tokenValidFrom watermark) and to
// return an error for any failure.
type Authenticator interface {
	AuthenticateAccessToken(ctx context.Context, token string) (string, error)
}

// AuthnMiddleware enforces bearer authentication and injects the resolved
// user id into the request context.
func AuthnMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			userID, err := a.AuthenticateAccessToken(ctx, raw)
			if err != nil {
				log.Warn("access token rejected", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(withUserID(ctx, userID)))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
