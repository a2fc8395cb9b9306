package pathutil

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ParseUUID reads the named path wildcard (set by http.ServeMux patterns
// such as "GET /api/news/{id}") and parses it as a UUID.
// The nil UUID is rejected.
//
// Example:
//
//	mux.HandleFunc("GET /api/news/{id}", func(w http.ResponseWriter, r *http.Request) {
//	    id, err := pathutil.ParseUUID(r, "id")
//	    ...
//	})
func ParseUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return uuid.Nil, ErrInvalidID
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
