package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bricksdeal/catalog-api/internal/auth"
	"github.com/bricksdeal/catalog-api/internal/config"
)

// AuthHandler implements the admin session endpoints. Sessions are
// stateless: login mints a signed cookie, logout tells the client to drop
// it, and nothing is persisted server-side.
type AuthHandler struct {
	Cfg config.Config
	Log *zap.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(cfg config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Log: log}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /auth/login. The failure envelope is identical for a
// wrong username and a wrong password so the endpoint gives no feedback
// to credential guessing.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "username and password required")
	}

	if !auth.VerifyAdminCredentials(h.Cfg, req.Username, req.Password) {
		h.Log.Warn("failed admin login", zap.String("ip", c.RealIP()))
		return respondError(c, http.StatusUnauthorized, "invalid credentials")
	}

	ttl := time.Duration(h.Cfg.SessionTTLHours) * time.Hour
	token, err := auth.NewSessionToken(h.Cfg.JWTSecret, req.Username, ttl)
	if err != nil {
		h.Log.Error("session token signing failed", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "internal error")
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.Cfg.IsProd(),
		// Expiry lives inside the signed token; no cookie Max-Age on login.
	})
	return respondData(c, http.StatusOK, map[string]string{
		"username": req.Username,
		"role":     auth.RoleAdmin,
	})
}

// Logout handles POST /auth/logout. It overwrites the session cookie with
// an empty, immediately expiring value. There is no server-side state to
// clear, so this always succeeds; a copied token remains verifiable until
// its own expiry, which is the accepted trade-off of stateless sessions.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.Cfg.IsProd(),
		MaxAge:   -1, // serialized as Max-Age=0, dropping the cookie now
	})
	return respondData(c, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /auth/me. It echoes the session decoded by the auth
// middleware; reaching this handler implies the request was authenticated.
func (h *AuthHandler) Me(c echo.Context) error {
	sess, ok := c.Get(auth.ContextKey).(*auth.Session)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	return respondData(c, http.StatusOK, sess)
}
