// Package apperr defines the structured errors returned by the service
// layer. Handlers map them to HTTP responses; everything else stays a
// plain error wrapped as Internal.
package apperr

import (
	"errors"
	"net/http"
)

type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, kept for server-side logging only.
	Cause error `json:"-"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// As extracts an *AppError from an error chain, or nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// NotFound reports that a named resource does not exist.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Forbidden reports a failed ownership or role check. Never used for
// missing resources, so callers can tell the two apart.
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "PERMISSION_DENIED",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict reports a unique-constraint collision that an idempotent retry
// cannot resolve, e.g. renaming a tag onto an existing name.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// TooManyTags reports that an operation would push a photo past the
// configured tag limit.
func TooManyTags(msg string) *AppError {
	return &AppError{
		Code:       "TOO_MANY_TAGS",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Validation reports malformed input.
func Validation(msg string) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Unauthorized reports a missing or invalid credential.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// ExternalService reports a failure in the media collaborator. The cause
// is logged server-side, never sent to clients.
func ExternalService(msg string, cause error) *AppError {
	return &AppError{
		Code:       "EXTERNAL_SERVICE_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// Internal wraps an unexpected server-side error.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Status returns the HTTP status for any error, defaulting to 500.
func Status(err error) int {
	if ae := As(err); ae != nil {
		return ae.HTTPStatus
	}
	return http.StatusInternalServerError
}
