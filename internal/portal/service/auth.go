package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/acsportal/internal/portal/directory"
	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"
)

// DirectoryReader is the part of the Member Directory the Auth Gate reads.
type DirectoryReader interface {
	Status() (directory.State, error)
	FindByCredentials(cpf, password string) (domain.Member, bool)
}

// AuthService is the Auth Gate: it turns a CPF and password into a session
// identity.
type AuthService struct {
	Directory DirectoryReader
}

// Authenticate checks credentials against the current directory snapshot.
// Unknown CPF and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, cpf, password string) (domain.Identity, error) {
	l := slogx.FromContext(ctx)

	// 1. The snapshot must be usable
	if state, err := s.Directory.Status(); state != directory.Ready {
		l.Warn("login attempted while directory not ready", "state", state.String(), "err", err)
		return domain.Identity{}, ErrDirectoryUnavailable
	}

	// 2. Look the member up by normalised CPF + password rule
	m, ok := s.Directory.FindByCredentials(domain.NormalizeCPF(cpf), password)
	if !ok {
		l.Info("login rejected", slog.String("reason", "invalid_credentials"))
		return domain.Identity{}, ErrInvalidCredentials
	}

	// 3. Pending and inactive members get the same answer
	if !m.IsActive() {
		l.Info("login rejected", slog.String("reason", "registration_pending"), slog.String("member_id", m.ID), slog.String("status", string(m.Status)))
		return domain.Identity{}, ErrRegistrationPending
	}

	if m.Role == "" {
		l.Warn("member has no role, defaulting to ACS", slog.String("member_id", m.ID))
	}

	return m.Identity(), nil
}

// Login authenticates and applies the login transition to current.
func (s *AuthService) Login(ctx context.Context, current domain.Session, cpf, password string) (domain.Session, error) {
	if current.IsAuthenticated() {
		return current, domain.ErrInvalidTransition
	}

	id, err := s.Authenticate(ctx, cpf, password)
	if err != nil {
		return current, err
	}
	return current.Login(id)
}
