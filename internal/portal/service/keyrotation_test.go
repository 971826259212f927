package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/store"
	"github.com/aussiebroadwan/acsportal/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newRotation(t *testing.T, persistent bool) (*KeyRotationService, *TokenService) {
	t.Helper()
	ctx := context.Background()

	svc := &KeyRotationService{KeyPrefix: "acs", Grace: time.Hour}
	var (
		km  *jwtx.KeyManager
		err error
	)
	if persistent {
		st := newTestStore(t)
		svc.Store = st
		km, err = jwtx.NewPersistentKeyManager(ctx, jwtx.PersistentKeyManagerOptions{
			Store: store.NewKeyStoreAdapter(st), Issuer: testIssuer, NumKeys: 1, KeyPrefix: "acs",
		})
	} else {
		km, err = jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer, NumKeys: 1, KeyPrefix: "acs"})
	}
	require.NoError(t, err)
	svc.KeyManager = km

	tokens := &TokenService{KeyManager: km, KV: newTestStore(t).KV(), Issuer: testIssuer, TTL: time.Hour}
	return svc, tokens
}

func memberSession() domain.Session {
	return domain.Session{User: &domain.Identity{ID: "acs-1", Name: "MARIA", Role: domain.RoleACS}}
}

func TestRotateRetiringExistingKeepsOldTokensValid(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newRotation(t, true)

	before, err := tokens.Issue(ctx, memberSession(), jwtx.AMRPassword)
	require.NoError(t, err)
	oldKid := svc.KeyManager.GetSigner().KID()

	res, err := svc.Rotate(ctx, true)
	require.NoError(t, err)
	require.Equal(t, 1, res.ActiveKeys)
	require.Len(t, res.Retired, 1)
	require.Equal(t, oldKid, res.Retired[0].Kid)
	require.Equal(t, res.NewKey.Kid, svc.KeyManager.GetSigner().KID())

	_, err = svc.KeyManager.Verifier.Verify(before.Token)
	require.NoError(t, err)

	keys, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 2)
	for _, k := range keys {
		require.Nil(t, k.PrivateKeyEncrypted)
		require.Equal(t, k.Kid != oldKid, k.IsActive())
	}
}

func TestRotateWithoutRetiringAddsKey(t *testing.T) {
	svc, _ := newRotation(t, true)

	res, err := svc.Rotate(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 2, res.ActiveKeys)
	require.Empty(t, res.Retired)
}

func TestRetireKey(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRotation(t, true)
	only := svc.KeyManager.GetSigner().KID()

	require.ErrorIs(t, svc.Retire(ctx, only), ErrLastSigningKey)
	require.ErrorIs(t, svc.Retire(ctx, "acs-nope"), ErrSigningKeyNotFound)

	_, err := svc.Rotate(ctx, false)
	require.NoError(t, err)
	require.NoError(t, svc.Retire(ctx, only))
	require.Equal(t, 1, svc.KeyManager.NumSigners())

	stored, err := svc.Store.SigningKeys().Get(ctx, only)
	require.NoError(t, err)
	require.False(t, stored.IsActive())
}

func TestRotateEphemeral(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRotation(t, false)

	res, err := svc.Rotate(ctx, true)
	require.NoError(t, err)
	require.Equal(t, 1, res.ActiveKeys)

	keys, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	require.Equal(t, res.NewKey.Kid, keys[0].Kid)
}
