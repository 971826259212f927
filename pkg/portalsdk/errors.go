package portalsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/acsportal/pkg/httpx"
)

// Error codes carried in the "error" field of every failed response.
const (
	ErrorCodeInvalidRequest              = "invalid_request"
	ErrorCodeValidation                  = "validation_error"
	ErrorCodeInvalidCredentials          = "invalid_credentials"
	ErrorCodeRegistrationPending         = "registration_pending"
	ErrorCodeInvalidMasterPassword       = "invalid_master_password"
	ErrorCodeMasterPasswordNotConfigured = "master_password_not_configured"
	ErrorCodeDirectoryUnavailable        = "directory_unavailable"
	ErrorCodeInvalidTransition           = "invalid_transition"
	ErrorCodeSelfModificationForbidden   = "self_modification_forbidden"
	ErrorCodeCPFAlreadyRegistered        = "cpf_already_registered"
	ErrorCodeNotFound                    = "not_found"
	ErrorCodeUnknownTarget               = "unknown_target"
	ErrorCodeLastSigningKey              = "last_signing_key"
	ErrorCodeInvalidToken                = "invalid_token"
	ErrorCodeInsufficientRole            = "insufficient_role"
	ErrorCodeAccessDenied                = "access_denied"
	ErrorCodeRateLimited                 = "rate_limit_exceeded"
	ErrorCodeServerError                 = "server_error"
)

// APIError is a failed API call. The server writes it, the client parses it
// back, so errors.As works on both sides.
type APIError struct {
	StatusCode  int               `json:"-"`
	Code        string            `json:"error"`
	Description string            `json:"error_description"`
	Details     map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on Code so callers can compare against the predefined values.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes e as the response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, httpx.ErrorBody{
		Error:            e.Code,
		ErrorDescription: e.Description,
		Details:          e.Details,
	})
}

// WithDetails returns a copy of e carrying per-field messages.
func (e *APIError) WithDetails(details map[string]string) *APIError {
	cp := *e
	cp.Details = details
	return &cp
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed",
	}

	ErrValidation = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeValidation,
		Description: "one or more fields are invalid",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "CPF ou senha inválidos",
	}

	ErrRegistrationPending = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeRegistrationPending,
		Description: "seu cadastro ainda não foi aprovado pela coordenação",
	}

	ErrInvalidMasterPassword = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidMasterPassword,
		Description: "senha mestra incorreta",
	}

	ErrMasterPasswordNotConfigured = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeMasterPasswordNotConfigured,
		Description: "master password is not configured",
	}

	ErrDirectoryUnavailable = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeDirectoryUnavailable,
		Description: "member directory is not available",
	}

	ErrInvalidTransition = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeInvalidTransition,
		Description: "session is already authenticated",
	}

	ErrSelfModificationForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeSelfModificationForbidden,
		Description: "administrators cannot delete or demote themselves",
	}

	ErrCPFAlreadyRegistered = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeCPFAlreadyRegistered,
		Description: "CPF já cadastrado",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	ErrUnknownTarget = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeUnknownTarget,
		Description: "unknown navigation target",
	}

	ErrLastSigningKey = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeLastSigningKey,
		Description: "cannot retire the last active signing key",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the bearer token is missing, invalid, expired or revoked",
	}

	ErrAccessDenied = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccessDenied,
		Description: "access denied",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var eb httpx.ErrorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        eb.Error,
			Description: eb.ErrorDescription,
			Details:     eb.Details,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

// NewInvalidRequest is ErrInvalidRequest with a specific description.
func NewInvalidRequest(description string) *APIError {
	return &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: description,
	}
}
