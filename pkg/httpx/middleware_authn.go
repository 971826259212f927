package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/acsportal/pkg/jwtx"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"
)

// RevocationChecker reports whether a token id has been revoked (logout).
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthnMiddleware requires a valid bearer token. revoked may be nil.
func AuthnMiddleware(v jwtx.Verifier, revoked RevocationChecker) Middleware {
	return authn(v, revoked, true)
}

// OptionalAuthn verifies a bearer token when one is sent and otherwise lets
// the request through anonymously. A bad token is still rejected rather than
// silently downgraded to a guest.
func OptionalAuthn(v jwtx.Verifier, revoked RevocationChecker) Middleware {
	return authn(v, revoked, false)
}

func authn(v jwtx.Verifier, revoked RevocationChecker, required bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				if required {
					writeBearerError(w, "missing bearer token")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			if revoked != nil {
				gone, err := revoked.IsRevoked(ctx, claims.ID)
				if err != nil {
					log.Error("revocation lookup failed", "err", err)
					WriteError(w, http.StatusServiceUnavailable, "server_error", "session check unavailable")
					return
				}
				if gone {
					writeBearerError(w, "token revoked")
					return
				}
			}

			ctx = slogx.With(contextWithAuth(ctx, claims), "user_id", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return raw, raw != ""
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
