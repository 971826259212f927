package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a portal session token stays valid. Field
// workers log in once per shift, so this is deliberately a working day.
const DefaultSessionTTL = 12 * time.Hour

// Authentication Methods Reference values carried in the "amr" claim.
const (
	AMRPassword = "pwd"    // CPF + member password
	AMRMaster   = "master" // shared master password escalation
	AMROTP      = "otp"    // TOTP code accompanied the master password
)

// Claims are the session-token claims issued by the portal.
type Claims struct {
	jwt.RegisteredClaims

	// Name is the display name of the member (fullName).
	Name string `json:"name,omitempty"`

	// Role is "ADMIN" or "ACS".
	Role string `json:"role,omitempty"`

	// AMR records how the session was obtained, see AMRPassword et al.
	AMR []string `json:"amr,omitempty"`

	// Synthetic marks the master-password admin session, which has no
	// backing member record.
	Synthetic bool `json:"synthetic,omitempty"`
}

// SessionClaimsParams groups the inputs of NewSessionClaims.
type SessionClaimsParams struct {
	Subject   string
	Name      string
	Role      string
	AMR       []string
	Synthetic bool
	Issuer    string
	TTL       time.Duration
	Now       time.Time
}

// NewSessionClaims builds minimally-correct claims with a fresh jti.
func NewSessionClaims(p SessionClaimsParams) Claims {
	ttl := p.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := p.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   p.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Name:      p.Name,
		Role:      p.Role,
		AMR:       p.AMR,
		Synthetic: p.Synthetic,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasAMR reports whether method is present in the amr claim.
func (c *Claims) HasAMR(method string) bool {
	return slices.Contains(c.AMR, method)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway adds a small grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
