// Package router owns the path table of the catalog API and wires the
// cross-cutting middleware in a fixed order: request logging first, then
// CORS, then per-group extras (cache on the public API, the session guard
// on the admin group).
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bricksdeal/catalog-api/internal/auth"
	"github.com/bricksdeal/catalog-api/internal/config"
	"github.com/bricksdeal/catalog-api/internal/handler"
	"github.com/bricksdeal/catalog-api/internal/middleware"
)

// Handlers bundles the handler instances the router dispatches to.
type Handlers struct {
	Auth     *handler.AuthHandler
	Sets     *handler.SetHandler
	Minifigs *handler.MinifigHandler
	Themes   *handler.ThemeHandler
	Admin    *handler.AdminHandler
}

// Register mounts all routes and middleware on the provided Echo
// instance. rdb may be nil, in which case caching and login rate limiting
// are disabled.
func Register(e *echo.Echo, cfg config.Config, log *zap.Logger, rdb *redis.Client, h Handlers) {
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))

	// Liveness, independent of the store.
	e.GET("/", handler.Health)

	// Session endpoints. Only login is rate limited; logout and me are
	// harmless to hammer.
	a := e.Group("/auth")
	a.POST("/login", h.Auth.Login, middleware.LoginRateLimit(cfg.RateLimit, rdb))
	a.POST("/logout", h.Auth.Logout)
	a.GET("/me", h.Auth.Me, middleware.SessionAuth(cfg.JWTSecret))

	// Admin group: every path sits behind the session guard and the role
	// gate as a blanket.
	adm := e.Group("/admin",
		middleware.SessionAuth(cfg.JWTSecret),
		middleware.RequireRole(auth.RoleAdmin),
	)
	adm.GET("", h.Admin.Dashboard)
	adm.PUT("/sets/:id", h.Admin.UpdateSet)
	adm.PUT("/minifigs/:id", h.Admin.UpdateMinifig)
	adm.POST("/refresh", h.Admin.Refresh)

	// Public catalog. Reads are cached; mutations guarded by the session
	// middleware per route so cached GETs stay anonymous.
	api := e.Group("/api", middleware.ResponseCache(cfg.Cache, rdb))
	guard := middleware.SessionAuth(cfg.JWTSecret)

	api.GET("/sets", h.Sets.List)
	api.POST("/sets", h.Sets.Create, guard)
	api.GET("/sets/:set_num", h.Sets.Get)
	api.PUT("/sets/:set_num", h.Sets.Update, guard)
	api.DELETE("/sets/:set_num", h.Sets.Delete, guard)

	api.GET("/minifigs", h.Minifigs.List)
	api.POST("/minifigs", h.Minifigs.Create, guard)
	api.GET("/minifigs/:fig_num", h.Minifigs.Get)
	api.PUT("/minifigs/:fig_num", h.Minifigs.Update, guard)
	api.DELETE("/minifigs/:fig_num", h.Minifigs.Delete, guard)

	api.GET("/themes", h.Themes.List)
	api.POST("/themes", h.Themes.Create, guard)
	api.GET("/themes/:id", h.Themes.Get)
	api.PUT("/themes/:id", h.Themes.Update, guard)
	api.DELETE("/themes/:id", h.Themes.Delete, guard)
	api.GET("/themes/:id/sets", h.Themes.ListSets)
}
