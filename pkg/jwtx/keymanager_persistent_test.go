package jwtx_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/acsportal/pkg/cryptox"
	"github.com/aussiebroadwan/acsportal/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type memKeyStore struct {
	mu   sync.Mutex
	keys []jwtx.SigningKeyRecord
}

func (m *memKeyStore) ListSigningKeys(context.Context) ([]jwtx.SigningKeyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]jwtx.SigningKeyRecord(nil), m.keys...), nil
}

func (m *memKeyStore) CreateSigningKey(_ context.Context, k jwtx.SigningKeyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, k)
	return nil
}

func persistentOpts(ks jwtx.KeyStore, n int) jwtx.PersistentKeyManagerOptions {
	return jwtx.PersistentKeyManagerOptions{Store: ks, Issuer: exampleIssuer, NumKeys: n, KeyPrefix: "acs"}
}

func TestPersistentKeyManagerSurvivesRestart(t *testing.T) {
	cryptox.SetKeySecretPath(filepath.Join(t.TempDir(), "signing.secret"))
	ctx := context.Background()
	ks := &memKeyStore{}

	first, err := jwtx.NewPersistentKeyManager(ctx, persistentOpts(ks, 2))
	require.NoError(t, err)
	require.Equal(t, 2, first.NumSigners())
	require.Len(t, ks.keys, 2)

	tok, err := first.GetSigner().Sign(jwtx.NewSessionClaims(jwtx.SessionClaimsParams{
		Subject: "acs-1", Role: "ACS", Issuer: exampleIssuer,
	}))
	require.NoError(t, err)

	second, err := jwtx.NewPersistentKeyManager(ctx, persistentOpts(ks, 2))
	require.NoError(t, err)
	require.Len(t, ks.keys, 2, "existing keys are reused")

	claims, err := second.Verifier.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "acs-1", claims.Subject)
}

func TestPersistentKeyManagerRetiredKeys(t *testing.T) {
	cryptox.SetKeySecretPath(filepath.Join(t.TempDir(), "signing.secret"))
	ctx := context.Background()
	now := time.Now()

	retired, _, err := jwtx.NewSigningKeyRecord("acs", now.Add(-time.Hour))
	require.NoError(t, err)
	at := now.Add(-time.Minute)
	retired.RetiredAt = &at
	retired.ExpiresAt = now.Add(time.Hour)

	expired, _, err := jwtx.NewSigningKeyRecord("acs", now.Add(-48*time.Hour))
	require.NoError(t, err)
	old := now.Add(-24 * time.Hour)
	expired.RetiredAt = &old
	expired.ExpiresAt = now.Add(-time.Hour)

	ks := &memKeyStore{keys: []jwtx.SigningKeyRecord{retired, expired}}
	km, err := jwtx.NewPersistentKeyManager(ctx, persistentOpts(ks, 1))
	require.NoError(t, err)

	// The retired key verifies but does not sign; a fresh active key was added.
	require.Equal(t, 1, km.NumSigners())
	require.NotEqual(t, retired.Kid, km.GetSigner().KID())
	_, err = km.KeySet.Get(retired.Kid)
	require.NoError(t, err)
	_, err = km.KeySet.Get(expired.Kid)
	require.ErrorIs(t, err, jwtx.ErrNoKey)
}

func TestPersistentKeyManagerWrongSecret(t *testing.T) {
	ctx := context.Background()
	ks := &memKeyStore{}

	cryptox.SetKeySecretPath(filepath.Join(t.TempDir(), "signing.secret"))
	_, err := jwtx.NewPersistentKeyManager(ctx, persistentOpts(ks, 1))
	require.NoError(t, err)

	cryptox.SetKeySecretPath(filepath.Join(t.TempDir(), "other.secret"))
	_, err = jwtx.NewPersistentKeyManager(ctx, persistentOpts(ks, 1))
	require.Error(t, err)
}

func TestKeyManagerRetireSigner(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: exampleIssuer, NumKeys: 1, KeyPrefix: "acs"})
	require.NoError(t, err)

	old := km.GetSigner()
	require.ErrorIs(t, km.RetireSigner(old.KID()), jwtx.ErrLastSigner)

	_, fresh, err := jwtx.GenerateSigner("acs")
	require.NoError(t, err)
	require.NoError(t, km.AddSigner(fresh))
	require.Equal(t, 2, km.NumSigners())

	tok, err := old.Sign(jwtx.NewSessionClaims(jwtx.SessionClaimsParams{Subject: "acs-1", Role: "ACS", Issuer: exampleIssuer}))
	require.NoError(t, err)

	require.NoError(t, km.RetireSigner(old.KID()))
	require.Equal(t, fresh.KID(), km.GetSigner().KID())

	_, err = km.Verifier.Verify(tok)
	require.NoError(t, err, "retired keys keep verifying")

	require.ErrorIs(t, km.RetireSigner("acs-missing"), jwtx.ErrNoKey)
}
