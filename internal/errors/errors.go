package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized = "UNAUTHORIZED"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	// Service errors
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Messages shared by several handlers.
const (
	MsgUnknown       = "An unknown error occured. Please try again."
	MsgNoToken       = "No token provided."
	MsgInvalidToken  = "Invalid token."
	MsgInternalError = "Internal Server Error"
)

// APIError is an error annotated with the HTTP status and the sanitized
// message shown to the client. Err keeps the underlying cause for logging.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new APIError
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Wrap attaches the cause to a copy of e.
func (e *APIError) Wrap(err error) *APIError {
	cp := *e
	cp.Err = err
	return &cp
}

// Unauthorized builds a 401 error.
func Unauthorized(message string) *APIError {
	if message == "" {
		message = "Authentication required"
	}
	return NewAPIError(http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Validation builds a 400 error for malformed or out-of-range input.
func Validation(message string) *APIError {
	if message == "" {
		message = "Invalid request"
	}
	return NewAPIError(http.StatusBadRequest, ErrCodeInvalidInput, message)
}

// Conflict builds an error for a uniqueness violation. It is reported as
// 400 to keep the registration contract stable for existing clients.
func Conflict(message string) *APIError {
	if message == "" {
		message = "Resource conflict"
	}
	return NewAPIError(http.StatusBadRequest, ErrCodeConflict, message)
}

// Forbidden builds a 403 error.
func Forbidden(message string) *APIError {
	if message == "" {
		message = "Access denied"
	}
	return NewAPIError(http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound builds a 404 error.
func NotFound(message string) *APIError {
	if message == "" {
		message = "Resource not found"
	}
	return NewAPIError(http.StatusNotFound, ErrCodeNotFound, message)
}

// Internal builds a 500 error carrying the cause.
func Internal(err error) *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    ErrCodeInternalError,
		Message: MsgUnknown,
		Err:     err,
	}
}

// From converts any error into an APIError. Errors that are not already
// annotated become internal errors.
func From(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(err)
}

// Abort records err on the request and stops the handler chain. The
// response is written by the error responder middleware.
func Abort(c *gin.Context, err *APIError) {
	_ = c.Error(err)
	c.Abort()
}
