package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bricksdeal/catalog-api/internal/auth"
	"github.com/bricksdeal/catalog-api/internal/queue"
	"github.com/bricksdeal/catalog-api/internal/repository"
)

// RefreshPublisher is the slice of the queue publisher the admin handler
// needs; tests substitute a recording fake.
type RefreshPublisher interface {
	PublishRefreshRequested(ctx context.Context, ev queue.RefreshRequestedEvent) error
}

// AdminHandler implements the admin dashboard and the admin-side mutation
// endpoints. Every route it serves sits behind the session middleware.
type AdminHandler struct {
	Stats     *repository.StatsRepo
	Sets      *repository.SetRepo
	Minifigs  *repository.MinifigRepo
	Publisher RefreshPublisher
	Log       *zap.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(stats *repository.StatsRepo, sets *repository.SetRepo,
	minifigs *repository.MinifigRepo, pub RefreshPublisher, log *zap.Logger) *AdminHandler {
	return &AdminHandler{Stats: stats, Sets: sets, Minifigs: minifigs, Publisher: pub, Log: log}
}

// Dashboard handles GET /admin, returning the aggregate catalog counters.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.Stats.Dashboard(c.Request().Context())
	if err != nil {
		return respondStoreError(c, h.Log, err, "dashboard")
	}
	return respondData(c, http.StatusOK, stats)
}

// UpdateSet handles PUT /admin/sets/:id. It shares the partial-update
// path with the public API; only the route and its guard differ.
func (h *AdminHandler) UpdateSet(c echo.Context) error {
	var u repository.SetUpdate
	if err := c.Bind(&u); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}
	setNum := c.Param("id")
	meta, err := h.Sets.Update(c.Request().Context(), setNum, u)
	if err != nil {
		return respondStoreError(c, h.Log, err, "set")
	}
	return respondMeta(c, http.StatusOK, map[string]string{"set_num": setNum}, meta)
}

// UpdateMinifig handles PUT /admin/minifigs/:id.
func (h *AdminHandler) UpdateMinifig(c echo.Context) error {
	var u repository.MinifigUpdate
	if err := c.Bind(&u); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}
	figNum := c.Param("id")
	meta, err := h.Minifigs.Update(c.Request().Context(), figNum, u)
	if err != nil {
		return respondStoreError(c, h.Log, err, "minifig")
	}
	return respondMeta(c, http.StatusOK, map[string]string{"fig_num": figNum}, meta)
}

type refreshReq struct {
	Scope string `json:"scope"`
}

// Refresh handles POST /admin/refresh. It enqueues a refresh job for the
// ETL toolchain and answers 202; the API itself does no scraping.
func (h *AdminHandler) Refresh(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req) // missing or empty body means "refresh everything"
	scope := strings.ToLower(strings.TrimSpace(req.Scope))
	switch scope {
	case "":
		scope = "all"
	case "all", "sets", "minifigs", "prices":
	default:
		return respondError(c, http.StatusBadRequest, "scope must be one of all, sets, minifigs, prices")
	}

	requestedBy := ""
	if sess, ok := c.Get(auth.ContextKey).(*auth.Session); ok {
		requestedBy = sess.Username
	}
	ev := queue.RefreshRequestedEvent{
		RequestedBy: requestedBy,
		Scope:       scope,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Publisher.PublishRefreshRequested(c.Request().Context(), ev); err != nil {
		return respondError(c, http.StatusServiceUnavailable, "refresh queue unavailable")
	}
	return respondData(c, http.StatusAccepted, map[string]string{
		"status": "queued",
		"scope":  scope,
	})
}
