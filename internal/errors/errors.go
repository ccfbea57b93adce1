package errors

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrValidation is the kind behind every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated is returned when a request carries no usable session.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrInvalidToken is returned when a session token is malformed, tampered with or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrForbidden is returned when the caller's role does not allow the action.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique value is already taken.
	ErrConflict = errors.New("conflict")
	// ErrRateLimited is returned when a client exceeded its quota.
	ErrRateLimited = errors.New("too many requests")
	// ErrInvariantViolation is returned when an action would break a data invariant.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrConfig is returned when the process is misconfigured.
	ErrConfig = errors.New("configuration error")
	// ErrCrypto is returned when the hashing backend fails.
	ErrCrypto = errors.New("crypto error")
)

// Error attaches a user facing message to one of the sentinel kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New creates an error of the given kind with a specific message.
func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// NotFound builds a NotFound error naming the missing entity, e.g. "Resource not found".
func NotFound(entity string) error {
	return New(ErrNotFound, entity+" not found")
}

// FieldError is a single rule violation on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field-level violation found in one input.
type ValidationError struct {
	Details []FieldError
}

// NewValidationError creates a validation error with the given details.
func NewValidationError(details ...FieldError) *ValidationError {
	return &ValidationError{Details: details}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		msgs = append(msgs, d.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Add appends a violation.
func (e *ValidationError) Add(field, message string) {
	e.Details = append(e.Details, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no violation was recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Details) == 0 {
		return nil
	}
	return e
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error     string       `json:"error"`
	Code      string       `json:"code"`
	Details   []FieldError `json:"details,omitempty"`
	Timestamp string       `json:"timestamp,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    []FieldError
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Internal reports whether the error is a server-side failure whose detail must stay private.
func (e *HTTPError) Internal() bool {
	return e.StatusCode >= http.StatusInternalServerError
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
		Error:     e.Message,
		Code:      e.Code,
		Details:   e.Details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// MapErrorToHTTP maps domain and store errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		httpErr := NewHTTPError(http.StatusBadRequest, "Validation failed", "VALIDATION_ERROR")
		httpErr.Details = verr.Details
		return httpErr
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, messageOf(err, "Authentication required"), "UNAUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, messageOf(err, "Insufficient permissions"), "FORBIDDEN")
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, messageOf(err, "Record not found"), "NOT_FOUND")
	case errors.Is(err, ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		return NewHTTPError(http.StatusConflict, messageOf(err, "Record already exists"), "CONFLICT")
	case errors.Is(err, ErrRateLimited):
		return NewHTTPError(http.StatusTooManyRequests, messageOf(err, "Too many requests, please try again later"), "RATE_LIMITED")
	case errors.Is(err, ErrInvariantViolation):
		return NewHTTPError(http.StatusBadRequest, messageOf(err, "Operation not allowed"), "INVARIANT_VIOLATION")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	}
}

// messageOf prefers the message of an *Error, falling back to def for bare sentinels.
func messageOf(err error, def string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return def
}
