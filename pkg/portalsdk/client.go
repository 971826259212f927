// Package portalsdk is a Go client for the ACS portal HTTP API.
package portalsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/acsportal/pkg/jwtx"
)

// Client talks to one portal server. Token, when set, is sent as a bearer
// token on every request.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// NewClient creates a client with a 10s timeout. Redirects are not followed
// so PayslipURL can report the Location header.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// WithToken returns a copy of c that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.Token = token
	return &cp
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

func (c *Client) do(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// call performs the request and decodes a JSON reply into out (if non-nil).
func (c *Client) call(ctx context.Context, method, path string, in, out any, expectedStatus int) error {
	resp, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out, expectedStatus)
}

func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		if err := parseErrorResponse(resp, bodyBytes); err != nil {
			return err
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if target == nil || len(bodyBytes) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ============================================================================
// Session
// ============================================================================

// Login exchanges CPF and password for a bearer token.
func (c *Client) Login(ctx context.Context, cpf, password string) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.call(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{CPF: cpf, Password: password}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Master escalates to the synthetic administrator.
func (c *Client) Master(ctx context.Context, password, otp string) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.call(ctx, http.MethodPost, "/v1/auth/master", MasterRequest{Password: password, OTP: otp}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the current token.
func (c *Client) Logout(ctx context.Context) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.call(ctx, http.MethodPost, "/v1/auth/logout", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Session returns the session the server sees for the current token.
func (c *Client) Session(ctx context.Context) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.call(ctx, http.MethodGet, "/v1/session", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Navigate asks whether the current session may open target.
func (c *Client) Navigate(ctx context.Context, target string) (*NavigationResponse, error) {
	var out NavigationResponse
	if err := c.call(ctx, http.MethodGet, "/v1/navigation/"+url.PathEscape(target), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Members
// ============================================================================

// Register submits a self-registration. The member starts Pendente.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Member, error) {
	var out Member
	if err := c.call(ctx, http.MethodPost, "/v1/members/register", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListMembers(ctx context.Context) ([]Member, error) {
	var out ListMembersResponse
	if err := c.call(ctx, http.MethodGet, "/v1/members", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Members, nil
}

// SaveMember creates the member when req.ID is empty, otherwise replaces it.
func (c *Client) SaveMember(ctx context.Context, req MemberRequest) (*Member, error) {
	var out Member
	var err error
	if req.ID == "" {
		err = c.call(ctx, http.MethodPost, "/v1/members", req, &out, http.StatusCreated)
	} else {
		err = c.call(ctx, http.MethodPut, memberPath(req.ID, ""), req, &out, http.StatusOK)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMember(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, memberPath(id, ""), nil, nil, http.StatusNoContent)
}

func (c *Client) SetRole(ctx context.Context, id, role string) (*Member, error) {
	var out Member
	if err := c.call(ctx, http.MethodPut, memberPath(id, "/role"), RoleRequest{Role: role}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetStatus(ctx context.Context, id, status string) (*Member, error) {
	var out Member
	if err := c.call(ctx, http.MethodPut, memberPath(id, "/status"), StatusRequest{Status: status}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetPassword(ctx context.Context, id, password string) error {
	return c.call(ctx, http.MethodPut, memberPath(id, "/password"), PasswordRequest{Password: password}, nil, http.StatusNoContent)
}

// Me returns the caller's own member record.
func (c *Client) Me(ctx context.Context) (*Member, error) {
	var out Member
	if err := c.call(ctx, http.MethodGet, "/v1/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Card(ctx context.Context, id string) (*Card, error) {
	var out Card
	if err := c.call(ctx, http.MethodGet, memberPath(id, "/card"), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func memberPath(id, suffix string) string {
	return "/v1/members/" + url.PathEscape(id) + suffix
}

// ============================================================================
// Indicators, news, payslip
// ============================================================================

func (c *Client) Indicators(ctx context.Context) (*IndicatorsResponse, error) {
	var out IndicatorsResponse
	if err := c.call(ctx, http.MethodGet, "/v1/indicators", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAPS(ctx context.Context, ind APSIndicator) (*APSIndicator, error) {
	var out APSIndicator
	if err := c.call(ctx, http.MethodPut, "/v1/indicators/aps/"+url.PathEscape(ind.Code), ind, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDental(ctx context.Context, ind DentalIndicator) (*DentalIndicator, error) {
	var out DentalIndicator
	if err := c.call(ctx, http.MethodPut, "/v1/indicators/dental/"+url.PathEscape(ind.Code), ind, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) News(ctx context.Context) ([]NewsItem, error) {
	var out NewsResponse
	if err := c.call(ctx, http.MethodGet, "/v1/news", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// PayslipURL returns where the payslip link redirects to.
func (c *Client) PayslipURL(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/payslip", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		body, _ := io.ReadAll(resp.Body)
		if err := parseErrorResponse(resp, body); err != nil {
			return "", err
		}
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.Header.Get("Location"), nil
}

// ============================================================================
// Health and keys
// ============================================================================

func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.call(ctx, http.MethodGet, "/livez", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.call(ctx, http.MethodGet, "/readyz", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJWKS retrieves the keys session tokens are signed with.
func (c *Client) GetJWKS(ctx context.Context) (*jwtx.JWKS, error) {
	var out jwtx.JWKS
	if err := c.call(ctx, http.MethodGet, "/.well-known/jwks.json", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListKeys lists signing keys. Requires a master session.
func (c *Client) ListKeys(ctx context.Context) ([]SigningKey, error) {
	var out ListKeysResponse
	if err := c.call(ctx, http.MethodGet, "/v1/keys", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Keys, nil
}

// RotateKeys adds a signing key, optionally retiring the current ones.
func (c *Client) RotateKeys(ctx context.Context, retireExisting bool) (*RotateKeysResponse, error) {
	var out RotateKeysResponse
	if err := c.call(ctx, http.MethodPost, "/v1/keys/rotate", RotateKeysRequest{RetireExisting: retireExisting}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RetireKey(ctx context.Context, kid string) error {
	return c.call(ctx, http.MethodPost, "/v1/keys/"+url.PathEscape(kid)+"/retire", nil, nil, http.StatusNoContent)
}
