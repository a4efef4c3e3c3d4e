package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bricksdeal/catalog-api/internal/repository"
)

// ThemeHandler exposes CRUD over catalog themes plus the per-theme set
// listing.
type ThemeHandler struct {
	Themes *repository.ThemeRepo
	Log    *zap.Logger
}

// NewThemeHandler constructs a ThemeHandler.
func NewThemeHandler(themes *repository.ThemeRepo, log *zap.Logger) *ThemeHandler {
	return &ThemeHandler{Themes: themes, Log: log}
}

func themeID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// List handles GET /api/themes with parent_id and search query
// parameters. The theme table is small, so no pagination.
func (h *ThemeHandler) List(c echo.Context) error {
	q := repository.ThemeListQuery{
		ParentID: int64Param(c, "parent_id"),
		Search:   strings.TrimSpace(c.QueryParam("search")),
	}
	themes, err := h.Themes.List(c.Request().Context(), q)
	if err != nil {
		return respondStoreError(c, h.Log, err, "themes")
	}
	if themes == nil {
		themes = []*repository.Theme{}
	}
	return respondData(c, http.StatusOK, themes)
}

// Get handles GET /api/themes/:id.
func (h *ThemeHandler) Get(c echo.Context) error {
	id, err := themeID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid theme id")
	}
	t, err := h.Themes.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondStoreError(c, h.Log, err, "theme")
	}
	return respondData(c, http.StatusOK, t)
}

type createThemeReq struct {
	ID       *int64 `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

// Create handles POST /api/themes. Theme IDs come from the upstream
// catalog, so the client supplies them rather than the store assigning
// one.
func (h *ThemeHandler) Create(c echo.Context) error {
	var req createThemeReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.ID == nil || req.Name == "" {
		return respondError(c, http.StatusBadRequest, "id and name are required")
	}

	t := &repository.Theme{ID: *req.ID, Name: req.Name, ParentID: req.ParentID}
	meta, err := h.Themes.Create(c.Request().Context(), t)
	if err != nil {
		return respondStoreError(c, h.Log, err, "theme")
	}
	return respondMeta(c, http.StatusCreated, t, meta)
}

// Update handles PUT /api/themes/:id.
func (h *ThemeHandler) Update(c echo.Context) error {
	id, err := themeID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid theme id")
	}
	var u repository.ThemeUpdate
	if err := c.Bind(&u); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}
	meta, err := h.Themes.Update(c.Request().Context(), id, u)
	if err != nil {
		return respondStoreError(c, h.Log, err, "theme")
	}
	return respondMeta(c, http.StatusOK, map[string]int64{"id": id}, meta)
}

// Delete handles DELETE /api/themes/:id. A theme still referenced by sets
// or child themes is refused with a conflict.
func (h *ThemeHandler) Delete(c echo.Context) error {
	id, err := themeID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid theme id")
	}
	meta, err := h.Themes.Delete(c.Request().Context(), id)
	if err != nil {
		return respondStoreError(c, h.Log, err, "theme")
	}
	return respondMeta(c, http.StatusOK, map[string]int64{"id": id}, meta)
}

// ListSets handles GET /api/themes/:id/sets with limit and offset query
// parameters.
func (h *ThemeHandler) ListSets(c echo.Context) error {
	id, err := themeID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid theme id")
	}
	limit, offset := pageParams(c)
	sets, total, err := h.Themes.ListSets(c.Request().Context(), id, limit, offset)
	if err != nil {
		return respondStoreError(c, h.Log, err, "theme")
	}
	if sets == nil {
		sets = []*repository.Set{}
	}
	return respondList(c, sets, Pagination{Limit: limit, Offset: offset, Total: total})
}
