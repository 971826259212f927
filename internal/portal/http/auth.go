package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/service"
	"github.com/aussiebroadwan/acsportal/pkg/httpx"
	"github.com/aussiebroadwan/acsportal/pkg/jwtx"
	"github.com/aussiebroadwan/acsportal/pkg/portalsdk"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"
)

// AuthHandler serves the Auth Gate: login, master password escalation,
// logout and session inspection.
type AuthHandler struct {
	Auth   *service.AuthService
	Policy *service.Policy
	Tokens *service.TokenService
}

// currentSession is the session the bearer token stands for, Guest without one.
func currentSession(ctx context.Context) (domain.Session, jwtx.Claims, bool) {
	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok {
		return domain.GuestSession(), jwtx.Claims{}, false
	}
	return service.SessionFromClaims(claims), claims, true
}

// actor is the identity an authenticated request acts as.
func actor(ctx context.Context) domain.Identity {
	s, _, _ := currentSession(ctx)
	return *s.User
}

func (h *AuthHandler) issue(w http.ResponseWriter, r *http.Request, s domain.Session, amr ...string) {
	tok, err := h.Tokens.Issue(r.Context(), s, amr...)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := toSDKSession(s)
	resp.Token = tok.Token
	resp.TokenType = "Bearer"
	resp.ExpiresAt = tok.ExpiresAt.Unix()
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleLogin authenticates a member by CPF and password.
//
//	@Summary		Member login
//	@Description	Looks the CPF and password up in the Member Directory and returns a session with a bearer token.
//	@Description	Members that are not Ativo are refused with registration_pending.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.LoginRequest		true	"CPF (any formatting) and password"
//	@Success		200		{object}	portalsdk.SessionResponse	"Authenticated session and token"
//	@Failure		400		{object}	portalsdk.APIError			"Malformed body"
//	@Failure		401		{object}	portalsdk.APIError			"invalid_credentials"
//	@Failure		403		{object}	portalsdk.APIError			"registration_pending"
//	@Failure		409		{object}	portalsdk.APIError			"invalid_transition: already authenticated"
//	@Failure		503		{object}	portalsdk.APIError			"directory_unavailable"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	current, _, _ := currentSession(r.Context())
	next, err := h.Auth.Login(r.Context(), current, req.CPF, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.issue(w, r, next, jwtx.AMRPassword)
}

// HandleMaster escalates to the synthetic administrator.
//
//	@Summary		Master password escalation
//	@Description	Verifies the shared master password (and TOTP code when configured) and returns an administrator session.
//	@Description	Any token presented with the request is revoked.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.MasterRequest		true	"Master password and optional OTP"
//	@Success		200		{object}	portalsdk.SessionResponse	"Administrator session and token"
//	@Failure		400		{object}	portalsdk.APIError			"Malformed body"
//	@Failure		401		{object}	portalsdk.APIError			"invalid_master_password"
//	@Failure		503		{object}	portalsdk.APIError			"master_password_not_configured"
//	@Router			/v1/auth/master [post].
func (h *AuthHandler) HandleMaster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req portalsdk.MasterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	current, claims, hadToken := currentSession(ctx)
	next, err := h.Policy.Escalate(ctx, current, req.Password, req.OTP)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if hadToken {
		if err := h.Tokens.Revoke(ctx, claims); err != nil {
			slogx.FromContext(ctx).Warn("failed to revoke superseded token", "jti", claims.ID, "err", err)
		}
	}

	amr := []string{jwtx.AMRMaster}
	if h.Policy.MasterTOTPSecret != "" {
		amr = append(amr, jwtx.AMROTP)
	}
	h.issue(w, r, next, amr...)
}

// HandleLogout revokes the presented token.
//
//	@Summary		Logout
//	@Description	Revokes the bearer token and returns the Guest session.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	portalsdk.SessionResponse	"Guest session"
//	@Failure		401	{object}	portalsdk.APIError			"invalid_token"
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	current, claims, _ := currentSession(ctx)
	if err := h.Tokens.Revoke(ctx, claims); err != nil {
		slogx.FromContext(ctx).Error("failed to revoke token", "jti", claims.ID, "err", err)
		portalsdk.ErrServerError.WriteError(w)
		return
	}

	slogx.FromContext(ctx).Info("logged out", "user_id", current.ID())
	httpx.WriteJSON(w, http.StatusOK, toSDKSession(current.Logout()))
}

// HandleSession returns the caller's session.
//
//	@Summary		Current session
//	@Description	Returns the session the bearer token stands for, or Guest when no token is sent.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	portalsdk.SessionResponse	"Session"
//	@Failure		401	{object}	portalsdk.APIError			"invalid_token"
//	@Router			/v1/session [get].
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	current, _, _ := currentSession(r.Context())
	httpx.WriteJSON(w, http.StatusOK, toSDKSession(current))
}

// HandleNavigate evaluates the navigation policy for a target.
//
//	@Summary		Navigation decision
//	@Description	Answers whether the caller may open a target directly or must pass the master password challenge first.
//	@Tags			Auth
//	@Produce		json
//	@Param			target	path		string							true	"dashboard, members, indicators, profile, news or payslip"
//	@Success		200		{object}	portalsdk.NavigationResponse	"Decision"
//	@Failure		404		{object}	portalsdk.APIError				"unknown_target"
//	@Router			/v1/navigation/{target} [get].
func (h *AuthHandler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	target := r.PathValue("target")
	current, _, _ := currentSession(r.Context())

	decision, err := h.Policy.Navigate(current, target)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, portalsdk.NavigationResponse{
		Target:    target,
		Allowed:   decision == service.Allow,
		Challenge: decision == service.Challenge,
	})
}
