package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/service"
	"github.com/aussiebroadwan/acsportal/pkg/portalsdk"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"
)

var serviceErrors = []struct {
	err error
	api *portalsdk.APIError
}{
	{service.ErrInvalidCredentials, portalsdk.ErrInvalidCredentials},
	{service.ErrRegistrationPending, portalsdk.ErrRegistrationPending},
	{service.ErrInvalidMasterPassword, portalsdk.ErrInvalidMasterPassword},
	{service.ErrMasterPasswordNotConfigured, portalsdk.ErrMasterPasswordNotConfigured},
	{service.ErrDirectoryUnavailable, portalsdk.ErrDirectoryUnavailable},
	{service.ErrSelfModificationForbidden, portalsdk.ErrSelfModificationForbidden},
	{service.ErrCPFAlreadyRegistered, portalsdk.ErrCPFAlreadyRegistered},
	{service.ErrMemberNotFound, portalsdk.ErrNotFound},
	{service.ErrIndicatorNotFound, portalsdk.ErrNotFound},
	{service.ErrForbidden, portalsdk.ErrAccessDenied},
	{service.ErrUnknownTarget, portalsdk.ErrUnknownTarget},
	{service.ErrSigningKeyNotFound, portalsdk.ErrNotFound},
	{service.ErrLastSigningKey, portalsdk.ErrLastSigningKey},
	{domain.ErrInvalidTransition, portalsdk.ErrInvalidTransition},
}

// writeServiceError maps a service error onto its API error. Anything not
// recognised is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		portalsdk.ErrValidation.WithDetails(verr.Fields).WriteError(w)
		return
	}

	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			if m.api.StatusCode >= http.StatusInternalServerError {
				slogx.FromContext(r.Context()).Warn("request failed", "err", err)
			}
			m.api.WriteError(w)
			return
		}
	}

	slogx.FromContext(r.Context()).Error("unhandled service error", "err", err)
	portalsdk.ErrServerError.WriteError(w)
}

func writeBadRequest(w http.ResponseWriter, err error) {
	portalsdk.NewInvalidRequest(err.Error()).WriteError(w)
}
