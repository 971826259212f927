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

const revokedKeyPrefix = "revoked:"

// TokenService issues and revokes session bearer tokens.
type TokenService struct {
	KeyManager *jwtx.KeyManager
	KV         store.KV
	Issuer     string
	TTL        time.Duration
}

// IssuedToken is a signed session token and its claims.
type IssuedToken struct {
	Token     string
	Claims    jwtx.Claims
	ExpiresAt time.Time
}

// Issue signs a session token for s. amr records how it was obtained.
func (t *TokenService) Issue(ctx context.Context, s domain.Session, amr ...string) (IssuedToken, error) {
	if !s.IsAuthenticated() {
		return IssuedToken{}, fmt.Errorf("issue token: %w", domain.ErrInvalidTransition)
	}

	claims := jwtx.NewSessionClaims(jwtx.SessionClaimsParams{
		Subject:   s.User.ID,
		Name:      s.User.Name,
		Role:      string(s.User.Role),
		AMR:       amr,
		Synthetic: s.IsSyntheticAdmin(),
		Issuer:    t.Issuer,
		TTL:       t.TTL,
	})

	signer := t.KeyManager.GetSigner()
	if signer == nil {
		return IssuedToken{}, errors.New("issue token: no signing key")
	}
	tok, err := signer.Sign(claims)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}

	slogx.FromContext(ctx).Debug("session token issued", "sub", claims.Subject, "jti", claims.ID, "kid", signer.KID())
	return IssuedToken{Token: tok, Claims: claims, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Revoke blocks a token id until the token would have expired anyway.
func (t *TokenService) Revoke(ctx context.Context, c jwtx.Claims) error {
	ttl := time.Minute
	if c.ExpiresAt != nil {
		ttl = max(time.Until(c.ExpiresAt.Time), time.Second)
	}
	if err := t.KV.Set(ctx, revokedKeyPrefix+c.ID, []byte(c.Subject), ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked implements httpx.RevocationChecker.
func (t *TokenService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := t.KV.Get(ctx, revokedKeyPrefix+jti)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// SessionFromClaims rebuilds the session a token stands for.
func SessionFromClaims(c jwtx.Claims) domain.Session {
	return domain.Session{User: &domain.Identity{
		ID:   c.Subject,
		Name: c.Name,
		Role: domain.Role(c.Role),
	}}
}
