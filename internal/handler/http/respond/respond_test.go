package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedBody string
	}{
		{
			name:         "success with map",
			code:         http.StatusOK,
			data:         map[string]string{"message": "success"},
			expectedBody: `{"message":"success"}`,
		},
		{
			name:         "success with struct",
			code:         http.StatusCreated,
			data:         struct{ ID int }{ID: 123},
			expectedBody: `{"ID":123}`,
		},
		{
			name:         "success with nil",
			code:         http.StatusNoContent,
			data:         nil,
			expectedBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)

			if w.Code != tt.code {
				t.Errorf("status = %d, want %d", w.Code, tt.code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.expectedBody {
				t.Errorf("body = %q, want %q", got, tt.expectedBody)
			}
		})
	}
}

func TestJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	// channels cannot be encoded
	JSON(w, http.StatusOK, map[string]any{"ch": make(chan int)})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusBadRequest, errors.New("invalid request body"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	var body ErrorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "invalid request body" {
		t.Errorf("error = %q", body.Error)
	}
	if body.Details != nil {
		t.Errorf("details should be omitted, got %v", body.Details)
	}
}

func TestValidation(t *testing.T) {
	w := httptest.NewRecorder()
	Validation(w, []FieldError{
		{Field: "title", Message: "title is required"},
		{Field: "scope", Message: "must be one of GENERAL INTERNAL"},
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}
	want := `{"error":"validation failed","details":[{"field":"title","message":"title is required"},{"field":"scope","message":"must be one of GENERAL INTERNAL"}]}`
	if got := strings.TrimSpace(w.Body.String()); got != want {
		t.Errorf("body = %s\nwant  %s", got, want)
	}
}

/* ───────── SafeError ───────── */

func TestSafeError(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		err     error
		wantMsg string
	}{
		{
			name:    "safe 4xx message is passed through",
			code:    http.StatusNotFound,
			err:     errors.New("news not found"),
			wantMsg: "news not found",
		},
		{
			name:    "safe fragment is case insensitive",
			code:    http.StatusBadRequest,
			err:     errors.New("Invalid id"),
			wantMsg: "Invalid id",
		},
		{
			name:    "unsafe 4xx message becomes status text",
			code:    http.StatusBadRequest,
			err:     errors.New("pq: syntax error at position 12"),
			wantMsg: "bad request",
		},
		{
			name:    "5xx never leaks details",
			code:    http.StatusInternalServerError,
			err:     fmt.Errorf("Update: %w", errors.New("postgres://u:pw@db/x not found")),
			wantMsg: "internal server error",
		},
		{
			name:    "503 is generic too",
			code:    http.StatusServiceUnavailable,
			err:     errors.New("circuit breaker is open"),
			wantMsg: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			SafeError(w, tt.code, tt.err)

			if w.Code != tt.code {
				t.Errorf("status = %d, want %d", w.Code, tt.code)
			}
			var body ErrorBody
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Errorf("error = %q, want %q", body.Error, tt.wantMsg)
			}
		})
	}
}

func TestSafeError_NilError(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, http.StatusInternalServerError, nil)

	if w.Body.Len() != 0 {
		t.Errorf("expected no body, got %q", w.Body.String())
	}
}
