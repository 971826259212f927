package domain

import "time"

// SigningKey is a session-token signing key at rest. The private key is
// sealed; RetiredAt is nil while the key is signing.
type SigningKey struct {
	Kid                 string
	PrivateKeyEncrypted []byte
	CreatedAt           time.Time
	RetiredAt           *time.Time
	ExpiresAt           time.Time // zero while active
}

// IsActive reports whether the key still signs new tokens.
func (k SigningKey) IsActive() bool { return k.RetiredAt == nil }

// IsExpired reports whether a retired key has left its verification window.
func (k SigningKey) IsExpired(now time.Time) bool {
	return k.RetiredAt != nil && !now.Before(k.ExpiresAt)
}
