package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/service"
	"github.com/aussiebroadwan/acsportal/pkg/httpx"
	"github.com/aussiebroadwan/acsportal/pkg/portalsdk"
)

// KeysHandler manages session-token signing keys. Only the master
// administrator session may use it; a member holding the ADMIN role is not
// enough.
type KeysHandler struct {
	Keys *service.KeyRotationService
}

func requireMaster(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok || !claims.Synthetic {
		portalsdk.ErrAccessDenied.WriteError(w)
		return false
	}
	return true
}

// HandleList lists signing keys.
//
//	@Summary		List signing keys
//	@Tags			Keys
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	portalsdk.ListKeysResponse	"Signing keys"
//	@Failure		403	{object}	portalsdk.APIError			"access_denied"
//	@Router			/v1/keys [get].
func (h *KeysHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !requireMaster(w, r) {
		return
	}

	keys, err := h.Keys.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := portalsdk.ListKeysResponse{Keys: make([]portalsdk.SigningKey, 0, len(keys))}
	for _, k := range keys {
		out.Keys = append(out.Keys, toSDKSigningKey(k))
	}
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRotate adds a new signing key.
//
//	@Summary		Rotate signing keys
//	@Tags			Keys
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.RotateKeysRequest		false	"Rotation options"
//	@Success		200		{object}	portalsdk.RotateKeysResponse	"Rotation result"
//	@Failure		403		{object}	portalsdk.APIError				"access_denied"
//	@Router			/v1/keys/rotate [post].
func (h *KeysHandler) HandleRotate(w http.ResponseWriter, r *http.Request) {
	if !requireMaster(w, r) {
		return
	}

	var req portalsdk.RotateKeysRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			writeBadRequest(w, err)
			return
		}
	}

	res, err := h.Keys.Rotate(r.Context(), req.RetireExisting)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := portalsdk.RotateKeysResponse{NewKey: toSDKSigningKey(res.NewKey), ActiveKeys: res.ActiveKeys}
	for _, k := range res.Retired {
		out.Retired = append(out.Retired, toSDKSigningKey(k))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRetire stops a key from signing.
//
//	@Summary		Retire signing key
//	@Tags			Keys
//	@Security		BearerAuth
//	@Param			kid	path	string	true	"Key id"
//	@Success		204	"Retired"
//	@Failure		403	{object}	portalsdk.APIError	"access_denied"
//	@Failure		404	{object}	portalsdk.APIError	"not_found"
//	@Failure		409	{object}	portalsdk.APIError	"last_signing_key"
//	@Router			/v1/keys/{kid}/retire [post].
func (h *KeysHandler) HandleRetire(w http.ResponseWriter, r *http.Request) {
	if !requireMaster(w, r) {
		return
	}

	if err := h.Keys.Retire(r.Context(), r.PathValue("kid")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toSDKSigningKey(k domain.SigningKey) portalsdk.SigningKey {
	out := portalsdk.SigningKey{Kid: k.Kid, Active: k.IsActive()}
	if !k.CreatedAt.IsZero() {
		out.CreatedAt = k.CreatedAt.Format(time.RFC3339)
	}
	if k.RetiredAt != nil {
		out.RetiredAt = k.RetiredAt.Format(time.RFC3339)
	}
	if !k.ExpiresAt.IsZero() {
		out.ExpiresAt = k.ExpiresAt.Format(time.RFC3339)
	}
	return out
}
