package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/directory"
	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newMemberService(t *testing.T) (*MemberService, *countingNotifier) {
	t.Helper()
	n := &countingNotifier{}
	now := time.Date(2026, 1, 13, 9, 0, 0, 0, time.UTC)
	return &MemberService{
		Store:  newTestStore(t),
		Hub:    n,
		Policy: &Policy{},
		Now:    func() time.Time { return now },
	}, n
}

func registration() domain.Registration {
	return domain.Registration{
		FullName:  "maria souza",
		CPF:       "111.222.333-44",
		BirthDate: "1980-05-01",
		Team:      "equipe 1",
		MicroArea: "03",
		AreaType:  domain.AreaUrban,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, n := newMemberService(t)

	m, err := svc.Register(ctx, registration())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(m.ID, "acs-"))
	require.Equal(t, "MARIA SOUZA", m.FullName)
	require.Equal(t, "11122233344", m.CPF)
	require.Equal(t, domain.StatusPending, m.Status)
	require.Equal(t, domain.RoleACS, m.Role)
	require.True(t, cryptox.IsPasswordHash(m.Password))
	require.True(t, directory.MatchPassword(m.Password, domain.DefaultPassword))
	require.EqualValues(t, 1, n.n.Load())

	_, err = svc.Register(ctx, registration())
	require.ErrorIs(t, err, ErrCPFAlreadyRegistered)

	bad := registration()
	bad.CPF = "123"
	_, err = svc.Register(ctx, bad)
	require.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Contains(t, verr.Fields, "cpf")
}

func TestRegisteredMemberCanLoginOnceApproved(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemberService(t)

	m, err := svc.Register(ctx, registration())
	require.NoError(t, err)

	dir := directory.New()
	auth := &AuthService{Directory: dir}
	reload := func() {
		members, err := svc.Store.Members().List(ctx)
		require.NoError(t, err)
		dir.Apply(ctx, directory.Event{Members: members})
	}

	reload()
	_, err = auth.Authenticate(ctx, "111.222.333-44", "1234")
	require.ErrorIs(t, err, ErrRegistrationPending)

	_, err = svc.SetStatus(ctx, adminActor, m.ID, domain.StatusActive)
	require.NoError(t, err)
	reload()

	id, err := auth.Authenticate(ctx, "111.222.333-44", "1234")
	require.NoError(t, err)
	require.Equal(t, m.ID, id.ID)
}

func TestSaveNewAndUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemberService(t)

	created, err := svc.Save(ctx, adminActor, domain.Member{FullName: "joao", CPF: "555.666.777-88"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "JOAO", created.FullName)
	require.Equal(t, domain.StatusActive, created.Status)
	require.False(t, created.RegisteredAt.IsZero())
	require.True(t, directory.MatchPassword(created.Password, "1234"))

	// Empty password on update keeps the stored hash.
	upd := created
	upd.Password = ""
	upd.Team = "equipe 9"
	saved, err := svc.Save(ctx, adminActor, upd)
	require.NoError(t, err)
	require.Equal(t, created.Password, saved.Password)
	require.Equal(t, "EQUIPE 9", saved.Team)
	require.Equal(t, created.RegisteredAt, saved.RegisteredAt)

	// A new plaintext password is hashed.
	upd.Password = "nova"
	saved, err = svc.Save(ctx, adminActor, upd)
	require.NoError(t, err)
	require.True(t, cryptox.IsPasswordHash(saved.Password))
	require.True(t, directory.MatchPassword(saved.Password, "nova"))
}

func TestSaveGuardsOwnRole(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemberService(t)

	self, err := svc.Save(ctx, adminActor, domain.Member{ID: adminActor.ID, FullName: "EU", CPF: "11122233344", Role: domain.RoleAdmin})
	require.NoError(t, err)

	self.Role = domain.RoleACS
	_, err = svc.Save(ctx, adminActor, self)
	require.ErrorIs(t, err, ErrSelfModificationForbidden)

	self.Role = domain.RoleAdmin
	self.Team = "EQUIPE 3"
	_, err = svc.Save(ctx, adminActor, self)
	require.NoError(t, err, "editing other fields of oneself is fine")
}

func TestDeleteAndSetRoleSelfGuard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemberService(t)

	_, err := svc.Save(ctx, adminActor, domain.Member{ID: "acs-42", FullName: "ADMIN", CPF: "11122233344", Role: domain.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.Save(ctx, adminActor, domain.Member{ID: "acs-43", FullName: "OTHER", CPF: "55566677788", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.SetRole(ctx, adminActor, "acs-42", domain.RoleACS)
	require.ErrorIs(t, err, ErrSelfModificationForbidden)
	require.ErrorIs(t, svc.Delete(ctx, adminActor, "acs-42"), ErrSelfModificationForbidden)

	m, err := svc.SetRole(ctx, adminActor, "acs-43", domain.RoleACS)
	require.NoError(t, err)
	require.Equal(t, domain.RoleACS, m.Role)
	require.NoError(t, svc.Delete(ctx, adminActor, "acs-43"))

	_, err = svc.Get(ctx, "acs-43")
	require.ErrorIs(t, err, ErrMemberNotFound)
	require.ErrorIs(t, svc.Delete(ctx, adminActor, "acs-43"), ErrMemberNotFound)

	_, err = svc.SetRole(ctx, adminActor, "acs-42", "ROOT")
	require.ErrorIs(t, err, ErrValidation)
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemberService(t)

	_, err := svc.Save(ctx, adminActor, domain.Member{ID: acsActor.ID, FullName: "ACS", CPF: "11122233344"})
	require.NoError(t, err)
	_, err = svc.Save(ctx, adminActor, domain.Member{ID: "acs-8", FullName: "OTHER", CPF: "55566677788"})
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, acsActor, acsActor.ID, "minha"))
	m, err := svc.Get(ctx, acsActor.ID)
	require.NoError(t, err)
	require.True(t, directory.MatchPassword(m.Password, "minha"))

	require.ErrorIs(t, svc.ResetPassword(ctx, acsActor, "acs-8", "x"), ErrForbidden)
	require.NoError(t, svc.ResetPassword(ctx, adminActor, "acs-8", "x"))
	require.ErrorIs(t, svc.ResetPassword(ctx, adminActor, "acs-8", ""), ErrValidation)
}

func TestCard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemberService(t)

	m, err := svc.Save(ctx, adminActor, domain.Member{FullName: "joão ávila", CPF: "11122233344", AreaType: domain.AreaUrban})
	require.NoError(t, err)

	card, err := svc.Card(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, "111.222.333-44", card.CPF)
	require.Equal(t, "ZONA URBANA", card.Zone)
	require.Equal(t, "CARTEIRINHA_JOAO_AVILA", card.PrintName)

	_, err = svc.Card(ctx, "acs-missing")
	require.ErrorIs(t, err, ErrMemberNotFound)
}
