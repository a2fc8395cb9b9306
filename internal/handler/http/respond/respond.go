// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent; nothing left to do but log
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorBody{Error: err.Error()})
}

// Validation writes a 422 response listing every invalid field.
func Validation(w http.ResponseWriter, details []FieldError) {
	JSON(w, http.StatusUnprocessableEntity, ErrorBody{Error: "validation failed", Details: details})
}

// safeFragments mark messages that are meant for the client.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"cannot be",
	"too long",
	"unknown field",
	"unauthorized",
	"forbidden",
	"rate limit",
}

// SafeError sanitizes error messages before returning them to users.
// Messages containing one of the safe fragments are returned as-is for 4xx
// codes. 5xx responses always carry a generic message; the real error is
// logged with secrets masked.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	isSafe := false
	if code < 500 {
		lower := strings.ToLower(msg)
		for _, frag := range safeFragments {
			if strings.Contains(lower, frag) {
				isSafe = true
				break
			}
		}
	}

	if isSafe {
		JSON(w, code, ErrorBody{Error: msg})
		return
	}

	slog.Default().Error("request failed",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))

	if code < 500 {
		JSON(w, code, ErrorBody{Error: strings.ToLower(http.StatusText(code))})
		return
	}
	JSON(w, code, ErrorBody{Error: "internal server error"})
}
