package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// Code identifies an APIError in responses and logs.
type Code string

const (
	CodeInvalidRequest     Code = "INVALID_REQUEST"
	CodeInvalidJSON        Code = "INVALID_JSON"
	CodeValidationFailed   Code = "VALIDATION_FAILED"
	CodeMissingContentType Code = "MISSING_CONTENT_TYPE"
	CodeUnsupportedMedia   Code = "UNSUPPORTED_MEDIA_TYPE"
	CodeNotFound           Code = "NOT_FOUND"
	CodeRateLimited        Code = "RATE_LIMIT_EXCEEDED"
)

func (c Code) problemType() string {
	switch c {
	case CodeInvalidRequest, CodeInvalidJSON, CodeValidationFailed, CodeMissingContentType:
		return TypeValidation
	case CodeUnsupportedMedia:
		return TypeUnsupportedMedia
	case CodeNotFound:
		return TypeNotFound
	case CodeRateLimited:
		return TypeRateLimit
	default:
		return TypeInternal
	}
}

// APIError is a request-level failure raised by handlers and middleware
// that already knows its HTTP status.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       Code   `json:"error_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

// Render implements render.Renderer.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

func New(status int, code Code, message string) *APIError {
	return &APIError{StatusCode: status, Code: code, Message: message}
}

func NewWithDetails(status int, code Code, message string, details any) *APIError {
	return &APIError{StatusCode: status, Code: code, Message: message, Details: details}
}

var (
	ErrInvalidRequest    = New(http.StatusBadRequest, CodeInvalidRequest, "Invalid request format")
	ErrNotFound          = New(http.StatusNotFound, CodeNotFound, "Resource not found")
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, CodeRateLimited, "Rate limit exceeded")
)

// InvalidRequestWithError reports an undecodable request, keeping the
// decoder's message as details.
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeInvalidRequest, "Invalid request format", err.Error())
}

// FieldError is one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrorList is the details payload of a validation failure.
type FieldErrorList struct {
	Errors []FieldError `json:"errors"`
}

func NewValidationErrors(fields []FieldError) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeValidationFailed, "Request validation failed",
		FieldErrorList{Errors: fields})
}
