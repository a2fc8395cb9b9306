package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrUnauthenticated means no valid credentials were presented.
	ErrUnauthenticated = errors.New("unauthorized")
	// ErrForbidden means the caller is authenticated but not an administrator.
	ErrForbidden = errors.New("forbidden")
)

// Authenticator resolves the actor behind a request. Failures wrap
// ErrUnauthenticated.
type Authenticator interface {
	Authenticate(r *http.Request) (Actor, error)
	Name() string
}

// StubAuthenticator accepts every request as Admin. It stands in until
// user management exists.
type StubAuthenticator struct {
	Admin Actor
}

func (s StubAuthenticator) Authenticate(*http.Request) (Actor, error) {
	return s.Admin, nil
}

func (StubAuthenticator) Name() string { return "stub" }

// claims is the token payload: sub holds the user UUID.
type claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuthenticator validates "Authorization: Bearer <token>" headers signed
// with HS256. Tokens must carry exp.
type JWTAuthenticator struct {
	secret []byte
	now    func() time.Time
}

// NewJWTAuthenticator builds an authenticator for the shared secret.
func NewJWTAuthenticator(secret []byte) *JWTAuthenticator {
	return &JWTAuthenticator{secret: secret, now: time.Now}
}

func (*JWTAuthenticator) Name() string { return "jwt" }

func (a *JWTAuthenticator) Authenticate(r *http.Request) (Actor, error) {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return Actor{}, fmt.Errorf("%w: missing bearer token", ErrUnauthenticated)
	}

	var c claims
	_, err := jwt.ParseWithClaims(strings.TrimPrefix(header, prefix), &c,
		func(*jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return Actor{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return Actor{}, fmt.Errorf("%w: invalid sub claim", ErrUnauthenticated)
	}
	return Actor{ID: id, Email: c.Email, Role: c.Role}, nil
}

// IssueToken signs a token for actor that expires after ttl.
func (a *JWTAuthenticator) IssueToken(actor Actor, ttl time.Duration) (string, error) {
	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:  actor.Role,
		Email: actor.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(a.secret)
}
