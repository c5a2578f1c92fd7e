package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Failure taxonomy shared by every service. Handlers translate these
// into HTTP status codes; nothing at or below this layer knows about
// HTTP.
var (
	// ErrUnauthenticated covers bad login credentials and missing,
	// malformed, or expired tokens.
	ErrUnauthenticated = errors.New("invalid authentication credentials")
	// ErrInactiveAccount is returned for a valid identity whose account
	// has been deactivated.
	ErrInactiveAccount = errors.New("inactive account")
	// ErrForbidden means the caller is authenticated but not allowed to
	// touch the target resource.
	ErrForbidden = errors.New("not enough permissions")
	// ErrNotFound means the target record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers duplicate ISBNs and duplicate emails.
	ErrConflict = errors.New("conflict")
)

// ValidationError reports field-level constraint violations.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// asValidationError converts validator failures into the service
// taxonomy. Anything else passes through untouched.
func asValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = fmt.Sprintf("failed on the '%s' rule", e.Tag())
	}
	return &ValidationError{Fields: fields}
}
