package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/acsportal/pkg/httpx"
	"github.com/aussiebroadwan/acsportal/pkg/jwtx"
)

// jwksMaxAge keeps verifier caches short so rotated keys show up quickly.
const jwksMaxAge = 5 * time.Minute

// JWKSHandler exposes the keys session tokens are signed with, including
// retired keys that are still inside their grace period.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify session tokens.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	jwtx.JWKS	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteCachedJSON(w, http.StatusOK, jwksMaxAge, keys.PublicJWKS())
	}
}
