// Package handler contains the HTTP layer: request parsing, shape
// validation, and response writing. Business rules live in the service
// layer; this package only translates between HTTP and the domain.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/sakif/devconnect/internal/apperror"
)

// errorResponse is the error body shape for every endpoint: a list of
// human-readable messages. Validation failures list every violated
// field, not just the first.
type errorResponse struct {
	Errors []string `json:"errors"`
}

// writeJSON sends a JSON response with the given status code. Headers
// must be set before the first body write, hence the ordering.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status and body. This is
// the only place status codes are decided, so the services stay
// HTTP-agnostic. Ownership failures are 403, not 401 — the caller is
// authenticated, just not allowed.
func writeError(w http.ResponseWriter, err error) {
	// ozzo validation errors enumerate every violated field.
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Errors: validationMessages(vErrs)})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation),
			errors.Is(err, apperror.ErrDuplicate),
			errors.Is(err, apperror.ErrInvalidCredentials):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
		case errors.Is(err, apperror.ErrUpstream):
			status = http.StatusBadGateway
		}

		writeJSON(w, status, errorResponse{Errors: []string{appErr.Message}})
		return
	}

	// Unknown error — never leak internals to the client.
	writeJSON(w, http.StatusInternalServerError, errorResponse{Errors: []string{"Server Error"}})
}

// validationMessages flattens ozzo's field→error map into a message
// list, sorted by field name so the order is stable.
func validationMessages(vErrs validation.Errors) []string {
	fields := make([]string, 0, len(vErrs))
	for field := range vErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, vErrs[field].Error())
	}
	return msgs
}

// decodeJSON reads the request body into dst. A malformed body is a
// client error, reported in the standard error shape.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Errors: []string{"Invalid JSON body"}})
		return false
	}
	return true
}
