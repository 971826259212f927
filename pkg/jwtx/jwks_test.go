package jwtx_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/aussiebroadwan/acsportal/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestEd25519JWKFields(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	jwk := jwtx.NewEd25519JWK("acs-1", "sig", "EdDSA", pub)
	require.Equal(t, "OKP", jwk.Kty)
	require.Equal(t, "Ed25519", jwk.Crv)
	require.Equal(t, "acs-1", jwk.Kid)
	require.NotEmpty(t, jwk.X)
}

func TestKeySetPublishesAndReloadsJWKS(t *testing.T) {
	signer := newTestSigner(t, "acs-published")

	ks := jwtx.NewKeySet()
	require.False(t, ks.IsReady())
	require.NoError(t, ks.AddSigner(signer))
	require.True(t, ks.IsReady())

	// What the JWKS endpoint serves must be enough for a client to verify.
	body, err := json.Marshal(ks.PublicJWKS())
	require.NoError(t, err)

	var doc jwtx.JWKS
	require.NoError(t, json.Unmarshal(body, &doc))

	client := jwtx.NewKeySet()
	require.NoError(t, client.ResetFromJWKS(doc))

	want, err := ks.Get("acs-published")
	require.NoError(t, err)
	got, err := client.Get("acs-published")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestKeySetRejectsForeignKeys(t *testing.T) {
	ks := jwtx.NewKeySet()

	_, err := ks.Get("missing")
	require.ErrorIs(t, err, jwtx.ErrNoKey)

	require.Error(t, ks.AddJWK(jwtx.JWK{Kty: "RSA", Kid: "rsa-1"}))
	require.Error(t, ks.AddJWK(jwtx.JWK{Kty: "OKP", Crv: "Ed25519", Kid: "short", X: "AAAA"}))
	require.False(t, ks.IsReady())
}
