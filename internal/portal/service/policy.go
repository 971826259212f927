package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/pkg/cryptox"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Navigation targets. Only TargetMembers is gated.
const (
	TargetDashboard  = "dashboard"
	TargetMembers    = "members"
	TargetIndicators = "indicators"
	TargetProfile    = "profile"
	TargetNews       = "news"
	TargetPayslip    = "payslip"
)

var knownTargets = map[string]bool{
	TargetDashboard:  true,
	TargetMembers:    true,
	TargetIndicators: true,
	TargetProfile:    true,
	TargetNews:       true,
	TargetPayslip:    true,
}

type Decision int

const (
	Allow     Decision = iota
	Challenge          // ask for the master password before entering
)

func (d Decision) String() string {
	if d == Challenge {
		return "challenge"
	}
	return "allow"
}

// Policy is the Authorization Policy. MasterPassword is read once at start;
// an empty value disables escalation for the life of the process.
type Policy struct {
	MasterPassword string

	// MasterTOTPSecret, when set, additionally requires a valid TOTP code
	// on escalation.
	MasterTOTPSecret string

	Now func() time.Time
}

func (p *Policy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Navigate decides whether s may enter target directly.
func (p *Policy) Navigate(s domain.Session, target string) (Decision, error) {
	if !knownTargets[target] {
		return Allow, ErrUnknownTarget
	}
	if target == TargetMembers && s.Role() != domain.RoleAdmin {
		return Challenge, nil
	}
	return Allow, nil
}

// VerifyMasterPassword returns the synthetic admin identity when input
// matches the configured master secret exactly.
func (p *Policy) VerifyMasterPassword(input, otpCode string) (domain.Identity, error) {
	if p.MasterPassword == "" {
		return domain.Identity{}, ErrMasterPasswordNotConfigured
	}
	if !cryptox.EqualSecret(p.MasterPassword, input) {
		return domain.Identity{}, ErrInvalidMasterPassword
	}

	if p.MasterTOTPSecret != "" {
		ok, err := totp.ValidateCustom(otpCode, p.MasterTOTPSecret, p.now().UTC(), totp.ValidateOpts{
			Period:    30,
			Skew:      1,
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		})
		if err != nil || !ok {
			return domain.Identity{}, ErrInvalidMasterPassword
		}
	}

	return domain.MasterAdminIdentity(), nil
}

// Escalate verifies the master password and returns current escalated to
// the synthetic admin.
func (p *Policy) Escalate(ctx context.Context, current domain.Session, input, otpCode string) (domain.Session, error) {
	l := slogx.FromContext(ctx)

	if _, err := p.VerifyMasterPassword(input, otpCode); err != nil {
		l.Warn("master password escalation rejected", "err", err, "from", current.ID())
		return current, err
	}

	l.Info("master password escalation granted", "from", current.ID())
	return current.Escalate(), nil
}

// GuardSelfModification stops an actor deleting or re-roling their own
// member record.
func (p *Policy) GuardSelfModification(actor domain.Identity, targetID string) error {
	if actor.ID != "" && actor.ID == targetID {
		return ErrSelfModificationForbidden
	}
	return nil
}
