package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/store"
	"github.com/aussiebroadwan/acsportal/pkg/jwtx"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"
)

// KeyRotationService rotates the session-token signing keys at runtime.
//
// With a Store the keys are persisted and a retired key keeps verifying for
// Grace, after which housekeeping purges it. Without one (ephemeral keys) the
// change lives in memory until the next restart.
type KeyRotationService struct {
	Store      store.Store // nil for ephemeral keys
	KeyManager *jwtx.KeyManager
	KeyPrefix  string

	// Grace should cover the session TTL so tokens signed by a retired key
	// stay valid until they expire on their own.
	Grace time.Duration
	Now   func() time.Time
}

// RotationResult reports what a rotation changed.
type RotationResult struct {
	NewKey     domain.SigningKey
	Retired    []domain.SigningKey
	ActiveKeys int
}

func (s *KeyRotationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Rotate adds a new signing key. With retireExisting every other active key
// is retired in the same step.
func (s *KeyRotationService) Rotate(ctx context.Context, retireExisting bool) (RotationResult, error) {
	log := slogx.FromContext(ctx)
	now := s.now()

	// 1. Generate and seal the new key.
	rec, signer, err := jwtx.NewSigningKeyRecord(s.KeyPrefix, now)
	if err != nil {
		return RotationResult{}, fmt.Errorf("rotate: %w", err)
	}
	newKey := store.SigningKeyFromRecord(rec)

	var retiring []string
	if retireExisting {
		for _, old := range s.KeyManager.Signers() {
			retiring = append(retiring, old.KID())
		}
	}

	// 2. Persist the new key and the retirements together.
	var retired []domain.SigningKey
	expiresAt := now.Add(s.Grace)
	if s.Store != nil {
		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.SigningKeys().Create(ctx, newKey); err != nil {
				return err
			}
			for _, kid := range retiring {
				if err := tx.SigningKeys().Retire(ctx, kid, now, expiresAt); err != nil && !errors.Is(err, store.ErrNotFound) {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return RotationResult{}, fmt.Errorf("rotate: %w", err)
		}
	}

	// 3. Swap the in-memory signers. The new key goes in first so there is
	// never a moment with nothing to sign with.
	if err := s.KeyManager.AddSigner(signer); err != nil {
		return RotationResult{}, fmt.Errorf("rotate: %w", err)
	}
	for _, kid := range retiring {
		if err := s.KeyManager.RetireSigner(kid); err != nil {
			log.Warn("retire signer in memory failed", "kid", kid, "err", err)
			continue
		}
		retired = append(retired, domain.SigningKey{Kid: kid, RetiredAt: &now, ExpiresAt: expiresAt})
	}

	log.Info("signing keys rotated", "new_kid", newKey.Kid, "retired", len(retired), "active", s.KeyManager.NumSigners())
	return RotationResult{NewKey: newKey, Retired: retired, ActiveKeys: s.KeyManager.NumSigners()}, nil
}

// List returns the stored keys, or the active in-memory ones without a Store.
// Private key material is stripped.
func (s *KeyRotationService) List(ctx context.Context) ([]domain.SigningKey, error) {
	if s.Store == nil {
		signers := s.KeyManager.Signers()
		out := make([]domain.SigningKey, len(signers))
		for i, sg := range signers {
			out[i] = domain.SigningKey{Kid: sg.KID()}
		}
		return out, nil
	}

	keys, err := s.Store.SigningKeys().List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range keys {
		keys[i].PrivateKeyEncrypted = nil
	}
	return keys, nil
}

// Retire stops kid from signing without adding a replacement.
func (s *KeyRotationService) Retire(ctx context.Context, kid string) error {
	now := s.now()

	// Check memory first: it refuses to drop the last signer.
	if err := s.KeyManager.RetireSigner(kid); err != nil {
		switch {
		case errors.Is(err, jwtx.ErrLastSigner):
			return ErrLastSigningKey
		case errors.Is(err, jwtx.ErrNoKey):
			return ErrSigningKeyNotFound
		default:
			return err
		}
	}

	if s.Store != nil {
		if err := s.Store.SigningKeys().Retire(ctx, kid, now, now.Add(s.Grace)); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrSigningKeyNotFound
			}
			return fmt.Errorf("retire %s: %w", kid, err)
		}
	}

	slogx.FromContext(ctx).Info("signing key retired", "kid", kid)
	return nil
}
