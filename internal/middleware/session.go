// Package middleware provides the cross-cutting request processing of the
// catalog API: session authentication, role enforcement, request logging,
// response caching and login rate limiting.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bricksdeal/catalog-api/internal/auth"
)

// SessionAuth returns middleware that authenticates requests via the
// session cookie. A missing cookie and an invalid token both fail closed
// with the same 401 so the response leaks nothing about why verification
// failed. On success the decoded session is stored in the context under
// auth.ContextKey for downstream handlers.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(auth.CookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
			}
			sess, err := auth.ParseSessionToken(secret, cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
			}
			c.Set(auth.ContextKey, sess)
			return next(c)
		}
	}
}

// RequireRole returns middleware that rejects authenticated requests
// whose session role is not in the allowed set. Unlike a failed token
// check this is a 403: the caller proved who they are, they just may not
// do this.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := c.Get(auth.ContextKey).(*auth.Session)
			if !ok || !allowed[sess.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "forbidden"})
			}
			return next(c)
		}
	}
}
