// Package auth resolves the administrator behind a request.
//
// Two authenticators exist: StubAuthenticator, which treats every request as
// the configured administrator, and JWTAuthenticator, which validates HS256
// bearer tokens. RequireAdmin turns either into HTTP middleware.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Role constants carried in the "role" claim.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Actor is the authenticated principal of a request.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// IsAdmin reports whether the actor may manage news.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

type ctxKey struct{}

// WithActor returns a copy of ctx carrying a.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// ActorFromContext returns the actor stored by RequireAdmin.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	return a, ok
}
