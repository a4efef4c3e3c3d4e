package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bricksdeal/catalog-api/internal/repository"
)

// MinifigHandler exposes CRUD over catalog minifigures.
type MinifigHandler struct {
	Minifigs *repository.MinifigRepo
	Log      *zap.Logger
}

// NewMinifigHandler constructs a MinifigHandler.
func NewMinifigHandler(minifigs *repository.MinifigRepo, log *zap.Logger) *MinifigHandler {
	return &MinifigHandler{Minifigs: minifigs, Log: log}
}

// List handles GET /api/minifigs with search, limit and offset query
// parameters.
func (h *MinifigHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)
	q := repository.MinifigListQuery{
		Search: strings.TrimSpace(c.QueryParam("search")),
		Limit:  limit,
		Offset: offset,
	}
	figs, total, err := h.Minifigs.List(c.Request().Context(), q)
	if err != nil {
		return respondStoreError(c, h.Log, err, "minifigs")
	}
	if figs == nil {
		figs = []*repository.Minifig{}
	}
	return respondList(c, figs, Pagination{Limit: limit, Offset: offset, Total: total})
}

// Get handles GET /api/minifigs/:fig_num.
func (h *MinifigHandler) Get(c echo.Context) error {
	m, err := h.Minifigs.GetByNum(c.Request().Context(), c.Param("fig_num"))
	if err != nil {
		return respondStoreError(c, h.Log, err, "minifig")
	}
	return respondData(c, http.StatusOK, m)
}

type createMinifigReq struct {
	FigNum   string  `json:"fig_num"`
	Name     string  `json:"name"`
	NumParts *int    `json:"num_parts"`
	ImgURL   *string `json:"img_url"`
}

// Create handles POST /api/minifigs. fig_num and name are required.
func (h *MinifigHandler) Create(c echo.Context) error {
	var req createMinifigReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}
	req.FigNum = strings.TrimSpace(req.FigNum)
	req.Name = strings.TrimSpace(req.Name)
	if req.FigNum == "" || req.Name == "" {
		return respondError(c, http.StatusBadRequest, "fig_num and name are required")
	}

	m := &repository.Minifig{
		FigNum:   req.FigNum,
		Name:     req.Name,
		NumParts: req.NumParts,
		ImgURL:   req.ImgURL,
	}
	meta, err := h.Minifigs.Create(c.Request().Context(), m)
	if err != nil {
		return respondStoreError(c, h.Log, err, "minifig")
	}
	return respondMeta(c, http.StatusCreated, m, meta)
}

// Update handles PUT /api/minifigs/:fig_num.
func (h *MinifigHandler) Update(c echo.Context) error {
	var u repository.MinifigUpdate
	if err := c.Bind(&u); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}
	meta, err := h.Minifigs.Update(c.Request().Context(), c.Param("fig_num"), u)
	if err != nil {
		return respondStoreError(c, h.Log, err, "minifig")
	}
	return respondMeta(c, http.StatusOK, map[string]string{"fig_num": c.Param("fig_num")}, meta)
}

// Delete handles DELETE /api/minifigs/:fig_num.
func (h *MinifigHandler) Delete(c echo.Context) error {
	meta, err := h.Minifigs.Delete(c.Request().Context(), c.Param("fig_num"))
	if err != nil {
		return respondStoreError(c, h.Log, err, "minifig")
	}
	return respondMeta(c, http.StatusOK, map[string]string{"fig_num": c.Param("fig_num")}, meta)
}
