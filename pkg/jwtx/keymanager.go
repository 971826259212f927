package jwtx

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/aussiebroadwan/acsportal/pkg/cryptox"
)

// ErrLastSigner is returned when retiring would leave nothing to sign with.
var ErrLastSigner = errors.New("jwtx: cannot retire the last signing key")

// KeyManager owns the signing keys for one server process and the KeySet
// used to verify what they sign.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	mu      sync.RWMutex
	signers []Signer
}

// KeyManagerOptions configures NewEphemeralKeyManager.
type KeyManagerOptions struct {
	// Issuer is stamped into and checked on every token. Required.
	Issuer string

	// NumKeys defaults to 1 and is capped at 5.
	NumKeys int

	// KeyPrefix prefixes generated kids, e.g. "acs".
	KeyPrefix string
}

// NewEphemeralKeyManager generates Ed25519 keys that live only in memory.
// Restarting the server invalidates every outstanding session token; members
// simply log in again.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	n := min(max(opts.NumKeys, 1), 5)
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = "portal"
	}

	keyset := NewKeySet()
	signers := make([]Signer, 0, n)

	for i := range n {
		_, signer, err := GenerateSigner(prefix)
		if err != nil {
			return nil, fmt.Errorf("jwtx: signer %d: %w", i+1, err)
		}
		if err := keyset.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: failed to add signer %d to keyset: %w", i+1, err)
		}
		signers = append(signers, signer)
	}

	return &KeyManager{
		Verifier: NewVerifierEdDSA(keyset, opts.Issuer),
		KeySet:   keyset,
		signers:  signers,
	}, nil
}

// IsReady returns true if the KeyManager has keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

// GetSigner returns one of the active signers, picked at random.
func (km *KeyManager) GetSigner() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	default:
		return km.signers[rand.IntN(len(km.signers))]
	}
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

// Signers returns a copy of the active signers.
func (km *KeyManager) Signers() []Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	out := make([]Signer, len(km.signers))
	copy(out, km.signers)
	return out
}

// AddSigner starts signing with s. Its public key is published in the
// KeySet first so tokens it signs verify immediately.
func (km *KeyManager) AddSigner(s Signer) error {
	if s == nil {
		return errors.New("jwtx: nil signer")
	}

	km.mu.Lock()
	defer km.mu.Unlock()

	if err := km.KeySet.AddSigner(s); err != nil {
		return err
	}
	km.signers = append(km.signers, s)
	return nil
}

// RetireSigner stops signing with kid. The public key stays in the KeySet
// so tokens already issued keep verifying. The last signer cannot be retired.
func (km *KeyManager) RetireSigner(kid string) error {
	km.mu.Lock()
	defer km.mu.Unlock()

	i := slices.IndexFunc(km.signers, func(s Signer) bool { return s.KID() == kid })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNoKey, kid)
	}
	if len(km.signers) == 1 {
		return ErrLastSigner
	}

	km.signers = slices.Delete(slices.Clone(km.signers), i, i+1)
	return nil
}

// GenerateSigner creates a fresh Ed25519 key with a random kid under prefix
// and returns its PEM alongside the signer.
func GenerateSigner(prefix string) ([]byte, Signer, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return nil, nil, fmt.Errorf("jwtx: failed to generate key ID: %w", err)
	}

	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, nil, err
	}

	signer, err := NewSignerEdDSA(prefix+"-"+token, pemKey)
	if err != nil {
		return nil, nil, err
	}
	return pemKey, signer, nil
}
