package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/acsportal/pkg/cryptox"
	"github.com/aussiebroadwan/acsportal/pkg/httpx"
	"github.com/aussiebroadwan/acsportal/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://portal.test"

type revokedSet map[string]bool

func (s revokedSet) IsRevoked(_ context.Context, jti string) (bool, error) {
	return s[jti], nil
}

type failingRevocations struct{}

func (failingRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("kv down")
}

func newSignerAndVerifier(t *testing.T) (*jwtx.EdDSASigner, jwtx.Verifier) {
	t.Helper()
	pem, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("k1", pem)
	require.NoError(t, err)

	ks := jwtx.NewKeySet()
	require.NoError(t, ks.AddSigner(signer))
	return signer, jwtx.NewVerifierEdDSA(ks, testIssuer)
}

func issue(t *testing.T, s *jwtx.EdDSASigner, role string) (string, jwtx.Claims) {
	t.Helper()
	c := jwtx.NewSessionClaims(jwtx.SessionClaimsParams{
		Subject: "acs-1",
		Name:    "Maria",
		Role:    role,
		AMR:     []string{jwtx.AMRPassword},
		Issuer:  testIssuer,
		TTL:     time.Hour,
		Now:     time.Now(),
	})
	tok, err := s.Sign(c)
	require.NoError(t, err)
	return tok, c
}

func withBearer(tok string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	return req
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	signer, verifier := newSignerAndVerifier(t)
	tok, claims := issue(t, signer, "ACS")

	var seen jwtx.Claims
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = httpx.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token passes claims through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(verifier, nil)(capture).ServeHTTP(rec, withBearer(tok))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "acs-1", seen.Subject)
		require.Equal(t, "ACS", seen.Role)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(verifier, nil)(capture).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.True(t, strings.HasPrefix(rec.Header().Get("WWW-Authenticate"), "Bearer "))
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(verifier, nil)(capture).ServeHTTP(rec, withBearer("a.b.c"))
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body httpx.ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "invalid_token", body.Error)
	})

	t.Run("revoked token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(verifier, revokedSet{claims.ID: true})(capture).ServeHTTP(rec, withBearer(tok))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revocation lookup failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(verifier, failingRevocations{})(capture).ServeHTTP(rec, withBearer(tok))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestOptionalAuthn(t *testing.T) {
	_, verifier := newSignerAndVerifier(t)

	var authed bool
	h := httpx.OptionalAuthn(verifier, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, authed = httpx.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, authed)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, withBearer("junk"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	signer, verifier := newSignerAndVerifier(t)
	acsTok, _ := issue(t, signer, "ACS")
	adminTok, _ := issue(t, signer, "ADMIN")

	h := httpx.Chain(okHandler(), httpx.AuthnMiddleware(verifier, nil), httpx.RequireRole("ADMIN"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withBearer(acsTok))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, withBearer(adminTok))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana"}`))
	require.NoError(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &dst))
	require.Equal(t, "Ana", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	require.Error(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &dst))
}
