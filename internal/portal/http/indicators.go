package http

import (
	"net/http"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/service"
	"github.com/aussiebroadwan/acsportal/pkg/httpx"
	"github.com/aussiebroadwan/acsportal/pkg/portalsdk"
)

type IndicatorsHandler struct {
	Indicators *service.IndicatorService
}

// HandleList returns both indicator panels.
//
//	@Summary		List indicators
//	@Tags			Indicators
//	@Produce		json
//	@Success		200	{object}	portalsdk.IndicatorsResponse	"APS and dental indicators"
//	@Failure		503	{object}	portalsdk.APIError				"directory_unavailable"
//	@Router			/v1/indicators [get].
func (h *IndicatorsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ind, err := h.Indicators.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKIndicators(ind))
}

// HandleUpdateAPS edits one APS indicator.
//
//	@Summary		Update APS indicator
//	@Tags			Indicators
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			code	path		string					true	"Indicator code, e.g. C1"
//	@Param			request	body		portalsdk.APSIndicator	true	"Indicator"
//	@Success		200		{object}	portalsdk.APSIndicator	"Updated indicator"
//	@Failure		400		{object}	portalsdk.APIError		"validation_error"
//	@Failure		403		{object}	portalsdk.APIError		"insufficient_role"
//	@Failure		404		{object}	portalsdk.APIError		"not_found"
//	@Router			/v1/indicators/aps/{code} [put].
func (h *IndicatorsHandler) HandleUpdateAPS(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.APSIndicator
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	out, err := h.Indicators.UpdateAPS(r.Context(), r.PathValue("code"), domain.APSIndicator{
		Title:       req.Title,
		Description: req.Description,
		CityValue:   req.CityValue,
		Status:      domain.IndicatorStatus(req.Status),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKAPS(out))
}

// HandleUpdateDental edits one dental indicator.
//
//	@Summary		Update dental indicator
//	@Tags			Indicators
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			code	path		string						true	"Indicator code, e.g. B1"
//	@Param			request	body		portalsdk.DentalIndicator	true	"Indicator"
//	@Success		200		{object}	portalsdk.DentalIndicator	"Updated indicator"
//	@Failure		400		{object}	portalsdk.APIError			"validation_error"
//	@Failure		403		{object}	portalsdk.APIError			"insufficient_role"
//	@Failure		404		{object}	portalsdk.APIError			"not_found"
//	@Router			/v1/indicators/dental/{code} [put].
func (h *IndicatorsHandler) HandleUpdateDental(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.DentalIndicator
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	out, err := h.Indicators.UpdateDental(r.Context(), r.PathValue("code"), domain.DentalIndicator{
		Title:  req.Title,
		Status: domain.IndicatorStatus(req.Status),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKDental(out))
}
