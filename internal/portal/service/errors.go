package service

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrInvalidCredentials          = errors.New("invalid_credentials")
	ErrRegistrationPending         = errors.New("registration_pending")
	ErrInvalidMasterPassword       = errors.New("invalid_master_password")
	ErrMasterPasswordNotConfigured = errors.New("master_password_not_configured")
	ErrSelfModificationForbidden   = errors.New("self_modification_forbidden")
	ErrDirectoryUnavailable        = errors.New("directory_unavailable")

	ErrValidation           = errors.New("validation_failed")
	ErrCPFAlreadyRegistered = errors.New("cpf_already_registered")
	ErrMemberNotFound       = errors.New("member_not_found")
	ErrIndicatorNotFound    = errors.New("indicator_not_found")
	ErrForbidden            = errors.New("forbidden")
	ErrUnknownTarget        = errors.New("unknown_target")

	ErrSigningKeyNotFound = errors.New("signing_key_not_found")
	ErrLastSigningKey     = errors.New("last_signing_key")
)

// ValidationError carries per-field messages. errors.Is(err, ErrValidation)
// holds for it.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func validationErr(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// unavailable wraps a store failure so callers can match both the sentinel
// and the cause.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDirectoryUnavailable, err)
}
