package news

import (
	"net/http"

	"newsdesk/internal/handler/http/auth"
	newsUC "newsdesk/internal/usecase/news"
)

// Register mounts the news endpoints on mux. Every route requires an
// administrator. writeLimit, when non-nil, wraps the mutating routes.
func Register(mux *http.ServeMux, svc *newsUC.Service, authn auth.Authenticator, writeLimit func(http.Handler) http.Handler) {
	admin := auth.RequireAdmin(authn)
	write := func(h http.Handler) http.Handler {
		if writeLimit != nil {
			h = writeLimit(h)
		}
		return admin(h)
	}

	mux.Handle("POST /api/news", write(CreateHandler{svc}))
	mux.Handle("GET /api/news/{id}", admin(GetHandler{svc}))
	mux.Handle("PUT /api/news/{id}", write(UpdateHandler{svc}))
}
