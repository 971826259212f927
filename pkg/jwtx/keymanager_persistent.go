package jwtx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/acsportal/pkg/cryptox"
)

// SigningKeyRecord is a signing key as stored. The private key is sealed
// with cryptox.EncryptPrivateKey.
type SigningKeyRecord struct {
	Kid                 string
	PrivateKeyEncrypted []byte
	CreatedAt           time.Time

	// RetiredAt is nil while the key signs. A retired key still verifies
	// until ExpiresAt, then housekeeping purges it.
	RetiredAt *time.Time
	ExpiresAt time.Time
}

// Expired reports whether a retired key is past its verification window.
func (r SigningKeyRecord) Expired(now time.Time) bool {
	return r.RetiredAt != nil && !now.Before(r.ExpiresAt)
}

// KeyStore is the persistence the manager needs. It is defined here so jwtx
// does not depend on any store package.
type KeyStore interface {
	// ListSigningKeys returns every key not yet purged, retired ones included.
	ListSigningKeys(ctx context.Context) ([]SigningKeyRecord, error)
	CreateSigningKey(ctx context.Context, key SigningKeyRecord) error
}

// PersistentKeyManagerOptions configures NewPersistentKeyManager.
type PersistentKeyManagerOptions struct {
	Store  KeyStore
	Issuer string

	// NumKeys is the target number of active keys, default 1, capped at 5.
	NumKeys int

	KeyPrefix string

	Now func() time.Time
}

// NewPersistentKeyManager loads signing keys from opts.Store so session
// tokens survive a restart. All stored keys verify; only active ones sign.
// Missing active keys are generated and stored.
func NewPersistentKeyManager(ctx context.Context, opts PersistentKeyManagerOptions) (*KeyManager, error) {
	if opts.Store == nil {
		return nil, errors.New("jwtx: Store is required")
	}
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}

	n := min(max(opts.NumKeys, 1), 5)
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "portal"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	now := opts.Now()

	// 1. Load everything, verification needs retired keys too.
	records, err := opts.Store.ListSigningKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("jwtx: failed to load signing keys: %w", err)
	}

	keyset := NewKeySet()
	var signers []Signer

	for _, rec := range records {
		if rec.Expired(now) {
			continue
		}

		pemKey, err := cryptox.DecryptPrivateKey(rec.PrivateKeyEncrypted)
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to decrypt key %s: %w", rec.Kid, err)
		}
		signer, err := NewSignerEdDSA(rec.Kid, pemKey)
		if err != nil {
			return nil, fmt.Errorf("jwtx: key %s: %w", rec.Kid, err)
		}
		if err := keyset.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: key %s: %w", rec.Kid, err)
		}

		// 2. Active keys also sign.
		if rec.RetiredAt == nil {
			signers = append(signers, signer)
		}
	}

	// 3. Top up to the target.
	for len(signers) < n {
		rec, signer, err := NewSigningKeyRecord(opts.KeyPrefix, now)
		if err != nil {
			return nil, err
		}
		if err := opts.Store.CreateSigningKey(ctx, rec); err != nil {
			return nil, fmt.Errorf("jwtx: failed to store new key: %w", err)
		}
		if err := keyset.AddSigner(signer); err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}

	return &KeyManager{
		Verifier: NewVerifierEdDSA(keyset, opts.Issuer),
		KeySet:   keyset,
		signers:  signers,
	}, nil
}

// NewSigningKeyRecord generates a key and returns it sealed for storage
// together with its signer.
func NewSigningKeyRecord(prefix string, now time.Time) (SigningKeyRecord, Signer, error) {
	pemKey, signer, err := GenerateSigner(prefix)
	if err != nil {
		return SigningKeyRecord{}, nil, err
	}

	sealed, err := cryptox.EncryptPrivateKey(pemKey)
	if err != nil {
		return SigningKeyRecord{}, nil, fmt.Errorf("jwtx: failed to encrypt new key: %w", err)
	}

	return SigningKeyRecord{
		Kid:                 signer.KID(),
		PrivateKeyEncrypted: sealed,
		CreatedAt:           now,
	}, signer, nil
}
