package http

import (
	"net/http"

	"github.com/aussiebroadwan/acsportal/internal/portal/service"
	"github.com/aussiebroadwan/acsportal/pkg/httpx"
	"github.com/aussiebroadwan/acsportal/pkg/portalsdk"
)

type NewsHandler struct {
	News *service.NewsService
}

// ServeHTTP returns the latest public-health news. It never fails: when the
// news provider is down the list is empty.
//
//	@Summary		Latest news
//	@Tags			News
//	@Produce		json
//	@Success		200	{object}	portalsdk.NewsResponse	"News items, possibly none"
//	@Failure		429	{object}	portalsdk.APIError		"rate_limit_exceeded"
//	@Router			/v1/news [get].
func (h *NewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, toSDKNews(h.News.Latest(r.Context())))
}

// PayslipHandler redirects to the municipal payslip portal.
//
//	@Summary		Payslip
//	@Tags			News
//	@Success		302
//	@Failure		404	{object}	portalsdk.APIError	"not_found: no payslip URL configured"
//	@Router			/v1/payslip [get].
func PayslipHandler(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if target == "" {
			portalsdk.ErrNotFound.WriteError(w)
			return
		}
		http.Redirect(w, r, target, http.StatusFound)
	}
}
