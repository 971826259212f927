package http

import (
	"net/http"

	"github.com/aussiebroadwan/acsportal/internal/portal/directory"
	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/service"
	"github.com/aussiebroadwan/acsportal/pkg/httpx"
	"github.com/aussiebroadwan/acsportal/pkg/portalsdk"
)

// DirectoryView is the read side of the Member Directory.
type DirectoryView interface {
	CurrentMembers() []domain.Member
	Status() (directory.State, error)
}

type MembersHandler struct {
	Members   *service.MemberService
	Directory DirectoryView
}

// HandleRegister accepts a public self-registration.
//
//	@Summary		Register
//	@Description	Creates a pending ACS member with the default password. A coordinator must approve it before login.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.RegisterRequest	true	"Registration form"
//	@Success		201		{object}	portalsdk.Member			"Pending member"
//	@Failure		400		{object}	portalsdk.APIError			"validation_error with per-field details"
//	@Failure		409		{object}	portalsdk.APIError			"cpf_already_registered"
//	@Failure		429		{object}	portalsdk.APIError			"rate_limit_exceeded"
//	@Router			/v1/members/register [post].
func (h *MembersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	m, err := h.Members.Register(r.Context(), fromSDKRegistration(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toSDKMember(m))
}

// HandleList returns the Directory snapshot.
//
//	@Summary		List members
//	@Description	Returns every member, newest registration first. Passwords are never included.
//	@Tags			Members
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	portalsdk.ListMembersResponse	"Members"
//	@Failure		401	{object}	portalsdk.APIError				"invalid_token"
//	@Failure		403	{object}	portalsdk.APIError				"insufficient_role"
//	@Failure		503	{object}	portalsdk.APIError				"directory_unavailable"
//	@Router			/v1/members [get].
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if state, _ := h.Directory.Status(); state != directory.Ready {
		portalsdk.ErrDirectoryUnavailable.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portalsdk.ListMembersResponse{
		Members: toSDKMembers(h.Directory.CurrentMembers()),
	})
}

// HandleCreate adds a member.
//
//	@Summary		Create member
//	@Tags			Members
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.MemberRequest	true	"Member; id is assigned when empty"
//	@Success		201		{object}	portalsdk.Member		"Created member"
//	@Failure		400		{object}	portalsdk.APIError		"validation_error"
//	@Failure		403		{object}	portalsdk.APIError		"insufficient_role"
//	@Failure		409		{object}	portalsdk.APIError		"cpf_already_registered"
//	@Router			/v1/members [post].
func (h *MembersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "", http.StatusCreated)
}

// HandleUpdate replaces a member.
//
//	@Summary		Update member
//	@Description	Replaces the member record. An empty password keeps the stored one.
//	@Description	Administrators cannot change their own role.
//	@Tags			Members
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Member id"
//	@Param			request	body		portalsdk.MemberRequest	true	"Member"
//	@Success		200		{object}	portalsdk.Member		"Updated member"
//	@Failure		400		{object}	portalsdk.APIError		"validation_error"
//	@Failure		403		{object}	portalsdk.APIError		"insufficient_role or self_modification_forbidden"
//	@Failure		409		{object}	portalsdk.APIError		"cpf_already_registered"
//	@Router			/v1/members/{id} [put].
func (h *MembersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, r.PathValue("id"), http.StatusOK)
}

func (h *MembersHandler) save(w http.ResponseWriter, r *http.Request, id string, status int) {
	var req portalsdk.MemberRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	m := fromSDKMember(req)
	m.ID = id

	saved, err := h.Members.Save(r.Context(), actor(r.Context()), m)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, status, toSDKMember(saved))
}

// HandleDelete removes a member.
//
//	@Summary		Delete member
//	@Tags			Members
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Member id"
//	@Success		204
//	@Failure		403	{object}	portalsdk.APIError	"insufficient_role or self_modification_forbidden"
//	@Failure		404	{object}	portalsdk.APIError	"not_found"
//	@Router			/v1/members/{id} [delete].
func (h *MembersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Members.Delete(r.Context(), actor(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetRole changes a member's role.
//
//	@Summary		Set member role
//	@Tags			Members
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Member id"
//	@Param			request	body		portalsdk.RoleRequest	true	"ADMIN or ACS"
//	@Success		200		{object}	portalsdk.Member		"Updated member"
//	@Failure		400		{object}	portalsdk.APIError		"validation_error"
//	@Failure		403		{object}	portalsdk.APIError		"insufficient_role or self_modification_forbidden"
//	@Failure		404		{object}	portalsdk.APIError		"not_found"
//	@Router			/v1/members/{id}/role [put].
func (h *MembersHandler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.RoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	m, err := h.Members.SetRole(r.Context(), actor(r.Context()), r.PathValue("id"), domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKMember(m))
}

// HandleSetStatus approves or deactivates a member.
//
//	@Summary		Set member status
//	@Tags			Members
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Member id"
//	@Param			request	body		portalsdk.StatusRequest	true	"Ativo, Pendente or Inativo"
//	@Success		200		{object}	portalsdk.Member		"Updated member"
//	@Failure		400		{object}	portalsdk.APIError		"validation_error"
//	@Failure		404		{object}	portalsdk.APIError		"not_found"
//	@Router			/v1/members/{id}/status [put].
func (h *MembersHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.StatusRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	m, err := h.Members.SetStatus(r.Context(), actor(r.Context()), r.PathValue("id"), domain.Status(req.Status))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKMember(m))
}

// HandleSetPassword resets a password. Members may reset their own.
//
//	@Summary		Reset password
//	@Tags			Members
//	@Security		BearerAuth
//	@Accept			json
//	@Param			id		path	string						true	"Member id"
//	@Param			request	body	portalsdk.PasswordRequest	true	"New password"
//	@Success		204
//	@Failure		400	{object}	portalsdk.APIError	"validation_error"
//	@Failure		403	{object}	portalsdk.APIError	"access_denied"
//	@Failure		404	{object}	portalsdk.APIError	"not_found"
//	@Router			/v1/members/{id}/password [put].
func (h *MembersHandler) HandleSetPassword(w http.ResponseWriter, r *http.Request) {
	var req portalsdk.PasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	if err := h.Members.ResetPassword(r.Context(), actor(r.Context()), r.PathValue("id"), req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the caller's own member record.
//
//	@Summary		My profile
//	@Tags			Members
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	portalsdk.Member	"Member"
//	@Failure		401	{object}	portalsdk.APIError	"invalid_token"
//	@Failure		404	{object}	portalsdk.APIError	"not_found: the session has no member record"
//	@Router			/v1/me [get].
func (h *MembersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	m, err := h.Members.Get(r.Context(), actor(r.Context()).ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKMember(m))
}

// HandleCard returns a member's printable ID card.
//
//	@Summary		ID card
//	@Tags			Members
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string				true	"Member id"
//	@Success		200	{object}	portalsdk.Card		"Card"
//	@Failure		403	{object}	portalsdk.APIError	"access_denied"
//	@Failure		404	{object}	portalsdk.APIError	"not_found"
//	@Router			/v1/members/{id}/card [get].
func (h *MembersHandler) HandleCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	who := actor(r.Context())
	if who.Role != domain.RoleAdmin && who.ID != id {
		portalsdk.ErrAccessDenied.WriteError(w)
		return
	}

	card, err := h.Members.Card(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSDKCard(card))
}
