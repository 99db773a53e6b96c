// Package apperror defines the domain error taxonomy shared by the
// service and repository layers. Handlers translate these into HTTP
// status codes in one place (handler/response.go) — the rest of the
// codebase never mentions HTTP.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers match on these with errors.Is(), which walks
// the wrap chain through AppError.Unwrap().
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDuplicate          = errors.New("duplicate action")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUpstream           = errors.New("upstream error")
)

// AppError pairs a sentinel with a human-readable message. The message
// is safe to return to API clients; the sentinel drives status mapping.
type AppError struct {
	Err     error  // sentinel from the list above
	Message string // human-readable, client-facing
	Field   string // optional: field that caused a validation failure
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(message string) *AppError {
	return &AppError{Err: ErrNotFound, Message: message}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Message: message}
}

// Forbidden is returned when the authenticated identity is not the
// owner of the resource it is trying to mutate.
func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Message: message}
}

// Unauthorized is returned when no valid identity could be established
// (missing, malformed, or expired token).
func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Message: message}
}

// Duplicate is returned when a set-like mutation would be a no-op:
// liking an already-liked post, unliking a post that was never liked.
// The API rejects these rather than silently absorbing them.
func Duplicate(message string) *AppError {
	return &AppError{Err: ErrDuplicate, Message: message}
}

// InvalidCredentials deliberately carries a fixed message so login
// failures never reveal whether the email or the password was wrong.
func InvalidCredentials() *AppError {
	return &AppError{Err: ErrInvalidCredentials, Message: "Invalid Credentials"}
}

// Upstream is returned when a third-party dependency (e.g. the GitHub
// API) fails or answers with an unexpected status.
func Upstream(service string) *AppError {
	return &AppError{
		Err:     ErrUpstream,
		Message: fmt.Sprintf("%s is unavailable", service),
	}
}
