package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("unauthorized")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrConflict             = errors.New("conflict")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrExternalService      = errors.New("external service failure")
	ErrSenderNotConfigured  = errors.New("sender email address is not configured")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountDeactivated   = errors.New("account is deactivated")
	ErrEmailExists          = errors.New("email already registered")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrObjectStorageMissing = errors.New("object storage is not configured")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field detail and matches ErrValidation via errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// ExternalError wraps a collaborator failure so it matches ErrExternalService.
func ExternalError(service string, err error) error {
	return fmt.Errorf("%s: %w: %w", service, ErrExternalService, err)
}
