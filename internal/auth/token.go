// Package auth implements the stateless admin session: HS256 session
// tokens carried in an HTTP-only cookie, plus the credential check behind
// login. No session state is held server-side; a token is valid exactly
// as long as its signature and expiry check out.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the fixed name of the session cookie.
const CookieName = "admin_session"

// RoleAdmin is the only role minted by this service.
const RoleAdmin = "admin"

// ContextKey is the request-context key under which the middleware stores
// the decoded *Session for downstream handlers.
const ContextKey = "session"

// ErrInvalidToken is returned for any token that fails verification.
// Callers must not distinguish why verification failed.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the typed payload of a session token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Session is the decoded identity attached to authenticated requests.
type Session struct {
	Subject  string `json:"sub"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// NewSessionToken mints a signed session token for the admin user. The
// subject is the constant "1": this is a single-admin design with no user
// table behind it.
func NewSessionToken(secret, username string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username: username,
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseSessionToken verifies the signature, signing method and expiry of
// raw and returns the decoded session. Every failure collapses into
// ErrInvalidToken so that callers cannot leak validation detail.
func ParseSessionToken(secret, raw string) (*Session, error) {
	claims := new(Claims)
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return &Session{
		Subject:  claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
