package http

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/acsportal/internal/portal/directory"
	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/pkg/portalsdk"
	"github.com/stretchr/testify/require"
)

type directoryLoading struct{}

func (directoryLoading) Status() (directory.State, error) { return directory.Loading, nil }
func (directoryLoading) FindByCredentials(string, string) (domain.Member, bool) {
	return domain.Member{}, false
}
func (directoryLoading) CurrentMembers() []domain.Member { return nil }

func validRegistration() portalsdk.RegisterRequest {
	return portalsdk.RegisterRequest{
		FullName:  "maria da silva",
		CPF:       "987.654.321-00",
		CNS:       "123456789012345",
		BirthDate: "1990-07-21",
		Gender:    "Feminino",
		Workplace: "ubs centro",
		Team:      "equipe 3",
		MicroArea: "07",
		AreaType:  "Rural",
	}
}

func TestRegisterThenApproveThenLogin(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/v1/members/register", "", validRegistration())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	m := decode[portalsdk.Member](t, rec)
	require.Equal(t, "Pendente", m.Status)
	require.Equal(t, "ACS", m.Role)
	require.Equal(t, "MARIA DA SILVA", m.FullName)

	// Pending until approved.
	requireError(t,
		h.do(http.MethodPost, "/v1/auth/login", "", portalsdk.LoginRequest{CPF: "98765432100", Password: "1234"}),
		http.StatusForbidden, portalsdk.ErrorCodeRegistrationPending)

	admin := h.master()
	rec = h.do(http.MethodPut, "/v1/members/"+m.ID+"/status", admin, portalsdk.StatusRequest{Status: "Ativo"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tok := h.login("98765432100", "1234")

	rec = h.do(http.MethodGet, "/v1/me", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, m.ID, decode[portalsdk.Member](t, rec).ID)

	rec = h.do(http.MethodGet, "/v1/members/"+m.ID+"/card", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	card := decode[portalsdk.Card](t, rec)
	require.Equal(t, "987.654.321-00", card.CPF)
	require.Equal(t, "ZONA RURAL", card.Zone)
	require.Equal(t, "CARTEIRINHA_MARIA_DA_SILVA", card.PrintName)
}

func TestRegisterRejections(t *testing.T) {
	h := newHarness(t, member("acs-1", "98765432100", "", domain.StatusActive, domain.RoleACS))

	rec := h.do(http.MethodPost, "/v1/members/register", "", validRegistration())
	requireError(t, rec, http.StatusConflict, portalsdk.ErrorCodeCPFAlreadyRegistered)

	bad := validRegistration()
	bad.CPF = "123"
	bad.FullName = ""
	rec = h.do(http.MethodPost, "/v1/members/register", "", bad)
	requireError(t, rec, http.StatusBadRequest, portalsdk.ErrorCodeValidation)
	details := decode[portalsdk.APIError](t, rec).Details
	require.Contains(t, details, "cpf")
	require.Contains(t, details, "fullName")
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	h := newHarness(t, member("acs-1", "11122233344", "", domain.StatusActive, domain.RoleACS))
	acs := h.login("11122233344", "1234")

	requireError(t, h.do(http.MethodGet, "/v1/members", "", nil), http.StatusUnauthorized, portalsdk.ErrorCodeInvalidToken)
	requireError(t, h.do(http.MethodGet, "/v1/members", acs, nil), http.StatusForbidden, portalsdk.ErrorCodeInsufficientRole)
	requireError(t, h.do(http.MethodDelete, "/v1/members/acs-1", acs, nil), http.StatusForbidden, portalsdk.ErrorCodeInsufficientRole)

	rec := h.do(http.MethodGet, "/v1/members", h.master(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[portalsdk.ListMembersResponse](t, rec)
	require.Len(t, list.Members, 1)
	require.NotContains(t, rec.Body.String(), "password")
}

func TestAdminCannotDemoteOrDeleteSelf(t *testing.T) {
	h := newHarness(t,
		member("acs-1", "11122233344", "", domain.StatusActive, domain.RoleAdmin),
		member("acs-2", "55566677788", "", domain.StatusActive, domain.RoleACS),
	)
	admin := h.login("11122233344", "1234")

	requireError(t,
		h.do(http.MethodPut, "/v1/members/acs-1/role", admin, portalsdk.RoleRequest{Role: "ACS"}),
		http.StatusForbidden, portalsdk.ErrorCodeSelfModificationForbidden)
	requireError(t,
		h.do(http.MethodDelete, "/v1/members/acs-1", admin, nil),
		http.StatusForbidden, portalsdk.ErrorCodeSelfModificationForbidden)

	rec := h.do(http.MethodPut, "/v1/members/acs-2/role", admin, portalsdk.RoleRequest{Role: "ADMIN"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "ADMIN", decode[portalsdk.Member](t, rec).Role)

	rec = h.do(http.MethodDelete, "/v1/members/acs-2", admin, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, h.dir.CurrentMembers(), 1)

	requireError(t, h.do(http.MethodDelete, "/v1/members/acs-2", admin, nil), http.StatusNotFound, portalsdk.ErrorCodeNotFound)
}

func TestAdminCreateAndUpdate(t *testing.T) {
	h := newHarness(t)
	admin := h.master()

	req := portalsdk.MemberRequest{Member: portalsdk.Member{
		FullName:  "joão pereira",
		CPF:       "22233344455",
		BirthDate: "1979-11-30",
		AreaType:  "Urbana",
		Status:    "Ativo",
		Role:      "ACS",
	}}
	rec := h.do(http.MethodPost, "/v1/members", admin, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[portalsdk.Member](t, rec)
	require.NotEmpty(t, created.ID)
	require.NotEmpty(t, created.RegisteredAt)

	// New members get the default password.
	h.login("22233344455", "1234")

	req.Team = "equipe 9"
	rec = h.do(http.MethodPut, "/v1/members/"+created.ID, admin, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, created.ID, decode[portalsdk.Member](t, rec).ID)
	require.Equal(t, created.RegisteredAt, decode[portalsdk.Member](t, rec).RegisteredAt)
}

func TestPasswordResetAndCardAccess(t *testing.T) {
	h := newHarness(t,
		member("acs-1", "11122233344", "", domain.StatusActive, domain.RoleACS),
		member("acs-2", "55566677788", "", domain.StatusActive, domain.RoleACS),
	)
	tok := h.login("11122233344", "1234")

	requireError(t,
		h.do(http.MethodPut, "/v1/members/acs-2/password", tok, portalsdk.PasswordRequest{Password: "x"}),
		http.StatusForbidden, portalsdk.ErrorCodeAccessDenied)
	requireError(t,
		h.do(http.MethodGet, "/v1/members/acs-2/card", tok, nil),
		http.StatusForbidden, portalsdk.ErrorCodeAccessDenied)

	rec := h.do(http.MethodPut, "/v1/members/acs-1/password", tok, portalsdk.PasswordRequest{Password: "nova-senha"})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	requireError(t,
		h.do(http.MethodPost, "/v1/auth/login", "", portalsdk.LoginRequest{CPF: "11122233344", Password: "1234"}),
		http.StatusUnauthorized, portalsdk.ErrorCodeInvalidCredentials)
	h.login("11122233344", "nova-senha")
}

func TestListMembersWhileLoading(t *testing.T) {
	h := newHarness(t)
	admin := h.master()
	h.router.Directory = directoryLoading{}
	h.router.Mux = http.NewServeMux()
	h.router.ApplyRoutes()

	requireError(t, h.do(http.MethodGet, "/v1/members", admin, nil), http.StatusServiceUnavailable, portalsdk.ErrorCodeDirectoryUnavailable)
}
