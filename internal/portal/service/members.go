package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/store"
	"github.com/aussiebroadwan/acsportal/pkg/cryptox"
	"github.com/aussiebroadwan/acsportal/pkg/idx"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"
)

// MemberIDPrefix prefixes every member id minted here.
const MemberIDPrefix = "acs"

// Notifier is told after every successful directory write.
type Notifier interface {
	Notify(ctx context.Context)
}

// MemberService is the member write path: registration and the admin
// screens.
type MemberService struct {
	Store  store.Store
	Hub    Notifier
	Policy *Policy

	Now func() time.Time
}

func (s *MemberService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Register stores a self-service registration as a pending ACS member with
// the default password.
func (s *MemberService) Register(ctx context.Context, reg domain.Registration) (domain.Member, error) {
	l := slogx.FromContext(ctx)

	// 1. Validate the form
	if err := validationErr(reg.Validate()); err != nil {
		return domain.Member{}, err
	}

	// 2. Build the pending record
	m := reg.Member(s.now())
	m.ID = idx.Prefixed(MemberIDPrefix)

	hash, err := cryptox.HashPassword(domain.DefaultPassword)
	if err != nil {
		return domain.Member{}, fmt.Errorf("hash default password: %w", err)
	}
	m.Password = hash

	// 3. Persist and fan out
	if err := s.Store.Members().Save(ctx, m); err != nil {
		return domain.Member{}, s.mapWriteErr("register member", err)
	}
	s.Hub.Notify(ctx)

	l.Info("member registered", slog.String("member_id", m.ID), slog.String("status", string(m.Status)))
	return m, nil
}

// Save upserts a member on behalf of an admin. New members get an id, the
// default password and a registration time. A plaintext password is hashed;
// an empty one on update keeps what is stored.
func (s *MemberService) Save(ctx context.Context, actor domain.Identity, m domain.Member) (domain.Member, error) {
	l := slogx.FromContext(ctx)

	if err := validationErr(domain.ValidateMember(m)); err != nil {
		return domain.Member{}, err
	}
	m = domain.NormalizeMember(m)

	existing, err := s.lookup(ctx, m.ID)
	switch {
	case errors.Is(err, ErrMemberNotFound):
		if m.ID == "" {
			m.ID = idx.Prefixed(MemberIDPrefix)
		}
		if m.RegisteredAt.IsZero() {
			m.RegisteredAt = s.now()
		}
		if m.Password == "" {
			m.Password = domain.DefaultPassword
		}
	case err != nil:
		return domain.Member{}, err
	default:
		if existing.EffectiveRole() != m.Role {
			if err := s.Policy.GuardSelfModification(actor, m.ID); err != nil {
				return domain.Member{}, err
			}
		}
		if m.Password == "" {
			m.Password = existing.Password
		}
		m.RegisteredAt = existing.RegisteredAt
	}

	if m.Password, err = hashIfPlain(m.Password); err != nil {
		return domain.Member{}, err
	}

	if err := s.Store.Members().Save(ctx, m); err != nil {
		return domain.Member{}, s.mapWriteErr("save member", err)
	}
	s.Hub.Notify(ctx)

	l.Info("member saved", slog.String("member_id", m.ID), slog.String("actor", actor.ID))
	return m, nil
}

// Delete removes a member. An actor cannot delete themself.
func (s *MemberService) Delete(ctx context.Context, actor domain.Identity, id string) error {
	if err := s.Policy.GuardSelfModification(actor, id); err != nil {
		return err
	}

	if err := s.Store.Members().Delete(ctx, id); err != nil {
		return s.mapWriteErr("delete member", err)
	}
	s.Hub.Notify(ctx)

	slogx.FromContext(ctx).Info("member deleted", slog.String("member_id", id), slog.String("actor", actor.ID))
	return nil
}

// SetRole changes a member's role. An actor cannot change their own.
func (s *MemberService) SetRole(ctx context.Context, actor domain.Identity, id string, role domain.Role) (domain.Member, error) {
	if !role.Valid() {
		return domain.Member{}, validationErr(map[string]string{"role": "role must be ADMIN or ACS"})
	}
	if err := s.Policy.GuardSelfModification(actor, id); err != nil {
		return domain.Member{}, err
	}

	return s.update(ctx, id, "set role", func(m *domain.Member) { m.Role = role })
}

// SetStatus approves, reactivates or deactivates a member.
func (s *MemberService) SetStatus(ctx context.Context, actor domain.Identity, id string, status domain.Status) (domain.Member, error) {
	if !status.Valid() {
		return domain.Member{}, validationErr(map[string]string{"status": "status must be Ativo, Pendente or Inativo"})
	}

	m, err := s.update(ctx, id, "set status", func(m *domain.Member) { m.Status = status })
	if err == nil {
		slogx.FromContext(ctx).Info("member status changed", slog.String("member_id", id), slog.String("status", string(status)), slog.String("actor", actor.ID))
	}
	return m, err
}

// ResetPassword sets a new password. Admins may reset anyone; members only
// themselves.
func (s *MemberService) ResetPassword(ctx context.Context, actor domain.Identity, id, password string) error {
	if actor.Role != domain.RoleAdmin && actor.ID != id {
		return ErrForbidden
	}
	if password == "" {
		return validationErr(map[string]string{"password": "password is required"})
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.update(ctx, id, "reset password", func(m *domain.Member) { m.Password = hash })
	return err
}

// Get returns one member.
func (s *MemberService) Get(ctx context.Context, id string) (domain.Member, error) {
	return s.lookup(ctx, id)
}

// Card builds the printable ID card for a member.
func (s *MemberService) Card(ctx context.Context, id string) (domain.Card, error) {
	m, err := s.lookup(ctx, id)
	if err != nil {
		return domain.Card{}, err
	}
	return domain.NewCard(m), nil
}

func (s *MemberService) update(ctx context.Context, id, op string, mutate func(*domain.Member)) (domain.Member, error) {
	m, err := s.lookup(ctx, id)
	if err != nil {
		return domain.Member{}, err
	}

	mutate(&m)
	if err := s.Store.Members().Save(ctx, m); err != nil {
		return domain.Member{}, s.mapWriteErr(op, err)
	}
	s.Hub.Notify(ctx)
	return m, nil
}

func (s *MemberService) lookup(ctx context.Context, id string) (domain.Member, error) {
	if id == "" {
		return domain.Member{}, ErrMemberNotFound
	}
	m, err := s.Store.Members().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Member{}, ErrMemberNotFound
	}
	if err != nil {
		return domain.Member{}, unavailable("get member", err)
	}
	return m, nil
}

func (s *MemberService) mapWriteErr(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrCPFAlreadyRegistered
	case errors.Is(err, store.ErrNotFound):
		return ErrMemberNotFound
	default:
		return unavailable(op, err)
	}
}

func hashIfPlain(pw string) (string, error) {
	if cryptox.IsPasswordHash(pw) {
		return pw, nil
	}
	hash, err := cryptox.HashPassword(pw)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}
