package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned for any failed login. It never says which field was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthorized is returned when a session is missing or carries the wrong role.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation is returned for missing or malformed request fields.
	ErrValidation = errors.New("validation error")
	// ErrDuplicateResource is returned on email, course code or registration collisions.
	ErrDuplicateResource = errors.New("resource already exists")
	// ErrCreditLimitExceeded is returned when a registration would exceed the credit ceiling.
	ErrCreditLimitExceeded = errors.New("credit limit exceeded")
	// ErrNoSelection is returned when a registration request names no courses.
	ErrNoSelection = errors.New("no courses selected")
	// ErrUpstream is returned when the store, cache or signing primitive fails.
	ErrUpstream = errors.New("upstream failure")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// Validation wraps ErrValidation with a user-facing message.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Duplicate wraps ErrDuplicateResource with a user-facing message.
func Duplicate(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDuplicateResource, fmt.Sprintf(format, args...))
}

// Upstream wraps a store or signing failure. A nil err yields nil.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrUpstream, op, err)
}

// IsRetryable reports whether the caller may retry the same request.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUpstream) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// MapErrorToHTTP maps domain errors to HTTP errors. Security-sensitive kinds
// get a fixed message; business-rule kinds carry the wrapped detail.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case IsRetryable(err):
		return NewHTTPError(http.StatusServiceUnavailable, "service temporarily unavailable, please retry", "UPSTREAM_FAILURE")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrDuplicateResource):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_RESOURCE")
	case errors.Is(err, ErrCreditLimitExceeded):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CREDIT_LIMIT_EXCEEDED")
	case errors.Is(err, ErrNoSelection):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_SELECTION")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
