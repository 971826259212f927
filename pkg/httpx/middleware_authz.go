package httpx

import (
	"net/http"
	"slices"
)

// RequireRole rejects callers whose session role is not one of roles. It
// must sit behind AuthnMiddleware in the chain.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(roles, roleFromCtx(r.Context())) {
				WriteError(w, http.StatusForbidden, "insufficient_role", "this area requires an administrator session")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
