package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestNavigate(t *testing.T) {
	p := &Policy{}
	acs, _ := domain.GuestSession().Login(domain.Identity{ID: "acs-1", Role: domain.RoleACS})
	admin, _ := domain.GuestSession().Login(domain.Identity{ID: "acs-2", Role: domain.RoleAdmin})

	cases := []struct {
		name    string
		session domain.Session
		target  string
		want    Decision
	}{
		{"acs to members", acs, TargetMembers, Challenge},
		{"guest to members", domain.GuestSession(), TargetMembers, Challenge},
		{"nil session to members", domain.Session{}, TargetMembers, Challenge},
		{"admin to members", admin, TargetMembers, Allow},
		{"synthetic admin to members", acs.Escalate(), TargetMembers, Allow},
		{"acs to dashboard", acs, TargetDashboard, Allow},
		{"guest to news", domain.GuestSession(), TargetNews, Allow},
		{"acs to payslip", acs, TargetPayslip, Allow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.Navigate(tc.session, tc.target)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := p.Navigate(admin, "settings")
	require.ErrorIs(t, err, ErrUnknownTarget)
}

func TestVerifyMasterPassword(t *testing.T) {
	p := &Policy{MasterPassword: "S"}

	id, err := p.VerifyMasterPassword("S", "")
	require.NoError(t, err)
	require.Equal(t, domain.MasterAdminIdentity(), id)

	_, err = p.VerifyMasterPassword("s", "")
	require.ErrorIs(t, err, ErrInvalidMasterPassword)

	_, err = p.VerifyMasterPassword("", "")
	require.ErrorIs(t, err, ErrInvalidMasterPassword)

	unset := &Policy{}
	for _, in := range []string{"", "S", "anything"} {
		_, err := unset.VerifyMasterPassword(in, "")
		require.ErrorIs(t, err, ErrMasterPasswordNotConfigured)
	}
}

func TestVerifyMasterPasswordWithTOTP(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	const secret = "JBSWY3DPEHPK3PXP"
	p := &Policy{MasterPassword: "S", MasterTOTPSecret: secret, Now: func() time.Time { return now }}

	code, err := totp.GenerateCode(secret, now)
	require.NoError(t, err)

	_, err = p.VerifyMasterPassword("S", code)
	require.NoError(t, err)

	_, err = p.VerifyMasterPassword("S", "000000")
	require.ErrorIs(t, err, ErrInvalidMasterPassword)

	_, err = p.VerifyMasterPassword("x", code)
	require.ErrorIs(t, err, ErrInvalidMasterPassword)
}

func TestEscalate(t *testing.T) {
	ctx := context.Background()
	p := &Policy{MasterPassword: "S"}
	acs, _ := domain.GuestSession().Login(domain.Identity{ID: "acs-1", Role: domain.RoleACS})

	s, err := p.Escalate(ctx, acs, "S", "")
	require.NoError(t, err)
	require.True(t, s.IsSyntheticAdmin())

	same, err := p.Escalate(ctx, acs, "bad", "")
	require.ErrorIs(t, err, ErrInvalidMasterPassword)
	require.Equal(t, acs, same)
}

func TestGuardSelfModification(t *testing.T) {
	p := &Policy{}
	actor := domain.Identity{ID: "acs-42", Role: domain.RoleAdmin}

	require.ErrorIs(t, p.GuardSelfModification(actor, "acs-42"), ErrSelfModificationForbidden)
	require.NoError(t, p.GuardSelfModification(actor, "acs-43"))
	require.NoError(t, p.GuardSelfModification(domain.Identity{}, ""))
}
