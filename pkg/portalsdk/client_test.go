package portalsdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/acsportal/pkg/portalsdk"
	"github.com/stretchr/testify/require"
)

func TestLoginSendsCredentialsAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req portalsdk.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "12345678901", req.CPF)
		require.Equal(t, "1234", req.Password)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(portalsdk.SessionResponse{
			User:          &portalsdk.Identity{ID: "acs-1", Name: "ANA", Role: "ACS"},
			Authenticated: true,
			Token:         "tok",
			TokenType:     "Bearer",
		})
	}))
	defer srv.Close()

	out, err := portalsdk.NewClient(srv.URL+"/").Login(context.Background(), "12345678901", "1234")
	require.NoError(t, err)
	require.Equal(t, "acs-1", out.User.ID)
	require.Equal(t, "tok", out.Token)
}

func TestErrorsParseIntoAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		portalsdk.ErrRegistrationPending.WriteError(w)
	}))
	defer srv.Close()

	_, err := portalsdk.NewClient(srv.URL).Login(context.Background(), "1", "2")
	require.ErrorIs(t, err, portalsdk.ErrRegistrationPending)

	var apiErr *portalsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestNonJSONErrorFallsBackToServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := portalsdk.NewClient(srv.URL).Indicators(context.Background())
	var apiErr *portalsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, portalsdk.ErrorCodeServerError, apiErr.Code)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestBearerTokenAndPaths(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		seen = append(seen, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"acs-2","status":"Ativo","role":"ADMIN"}`))
		}
	}))
	defer srv.Close()

	c := portalsdk.NewClient(srv.URL).WithToken("tok")
	ctx := context.Background()

	m, err := c.SetRole(ctx, "acs-2", "ADMIN")
	require.NoError(t, err)
	require.Equal(t, "ADMIN", m.Role)
	require.NoError(t, c.DeleteMember(ctx, "acs-2"))

	require.Equal(t, []string{"PUT /v1/members/acs-2/role", "DELETE /v1/members/acs-2"}, seen)
}

func TestSaveMemberCreateVersusUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			require.Equal(t, "/v1/members", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"acs-new"}`))
			return
		}
		require.Equal(t, "/v1/members/acs-9", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"acs-9"}`))
	}))
	defer srv.Close()

	c := portalsdk.NewClient(srv.URL)
	created, err := c.SaveMember(context.Background(), portalsdk.MemberRequest{})
	require.NoError(t, err)
	require.Equal(t, "acs-new", created.ID)

	updated, err := c.SaveMember(context.Background(), portalsdk.MemberRequest{Member: portalsdk.Member{ID: "acs-9"}})
	require.NoError(t, err)
	require.Equal(t, "acs-9", updated.ID)
}

func TestPayslipURLDoesNotFollowRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://contracheque.example.org", http.StatusFound)
	}))
	defer srv.Close()

	u, err := portalsdk.NewClient(srv.URL).PayslipURL(context.Background())
	require.NoError(t, err)
	require.Equal(t, "https://contracheque.example.org", u)
}

func TestRotateAndRetireKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer master-tok", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/v1/keys/rotate":
			var req portalsdk.RotateKeysRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.True(t, req.RetireExisting)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(portalsdk.RotateKeysResponse{
				NewKey:     portalsdk.SigningKey{Kid: "acs-new", Active: true},
				Retired:    []portalsdk.SigningKey{{Kid: "acs-old"}},
				ActiveKeys: 1,
			})
		case "/v1/keys/acs-old/retire":
			portalsdk.ErrLastSigningKey.WriteError(w)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := portalsdk.NewClient(srv.URL).WithToken("master-tok")
	res, err := c.RotateKeys(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, "acs-new", res.NewKey.Kid)
	require.Len(t, res.Retired, 1)

	require.ErrorIs(t, c.RetireKey(context.Background(), "acs-old"), portalsdk.ErrLastSigningKey)
}
