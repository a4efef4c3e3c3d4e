package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bricksdeal/catalog-api/internal/repository"
)

// SetHandler exposes CRUD over catalog sets.
type SetHandler struct {
	Sets *repository.SetRepo
	Log  *zap.Logger
}

// NewSetHandler constructs a SetHandler.
func NewSetHandler(sets *repository.SetRepo, log *zap.Logger) *SetHandler {
	return &SetHandler{Sets: sets, Log: log}
}

// List handles GET /api/sets with theme_id, year, search, limit and
// offset query parameters.
func (h *SetHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)
	q := repository.SetListQuery{
		ThemeID: int64Param(c, "theme_id"),
		Year:    intParam(c, "year"),
		Search:  strings.TrimSpace(c.QueryParam("search")),
		Limit:   limit,
		Offset:  offset,
	}
	sets, total, err := h.Sets.List(c.Request().Context(), q)
	if err != nil {
		return respondStoreError(c, h.Log, err, "sets")
	}
	if sets == nil {
		sets = []*repository.Set{}
	}
	return respondList(c, sets, Pagination{Limit: limit, Offset: offset, Total: total})
}

// Get handles GET /api/sets/:set_num.
func (h *SetHandler) Get(c echo.Context) error {
	s, err := h.Sets.GetByNum(c.Request().Context(), c.Param("set_num"))
	if err != nil {
		return respondStoreError(c, h.Log, err, "set")
	}
	return respondData(c, http.StatusOK, s)
}

type createSetReq struct {
	SetNum         string   `json:"set_num"`
	Name           string   `json:"name"`
	Year           *int     `json:"year"`
	ThemeID        *int64   `json:"theme_id"`
	NumParts       *int     `json:"num_parts"`
	ImgURL         *string  `json:"img_url"`
	Price          *float64 `json:"price"`
	PriceUpdatedAt *string  `json:"price_updated_at"`
}

// Create handles POST /api/sets. set_num, name, year and theme_id are
// required; the rest is optional.
func (h *SetHandler) Create(c echo.Context) error {
	var req createSetReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}
	req.SetNum = strings.TrimSpace(req.SetNum)
	req.Name = strings.TrimSpace(req.Name)
	if req.SetNum == "" || req.Name == "" || req.Year == nil || req.ThemeID == nil {
		return respondError(c, http.StatusBadRequest, "set_num, name, year and theme_id are required")
	}

	s := &repository.Set{
		SetNum:         req.SetNum,
		Name:           req.Name,
		Year:           *req.Year,
		ThemeID:        *req.ThemeID,
		NumParts:       req.NumParts,
		ImgURL:         req.ImgURL,
		Price:          req.Price,
		PriceUpdatedAt: req.PriceUpdatedAt,
	}
	meta, err := h.Sets.Create(c.Request().Context(), s)
	if err != nil {
		return respondStoreError(c, h.Log, err, "set")
	}
	return respondMeta(c, http.StatusCreated, s, meta)
}

// Update handles PUT /api/sets/:set_num. Only fields present in the body
// are written; the set number itself is not settable.
func (h *SetHandler) Update(c echo.Context) error {
	var u repository.SetUpdate
	if err := c.Bind(&u); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}
	meta, err := h.Sets.Update(c.Request().Context(), c.Param("set_num"), u)
	if err != nil {
		return respondStoreError(c, h.Log, err, "set")
	}
	return respondMeta(c, http.StatusOK, map[string]string{"set_num": c.Param("set_num")}, meta)
}

// Delete handles DELETE /api/sets/:set_num. Sets are deleted
// unconditionally; nothing references them.
func (h *SetHandler) Delete(c echo.Context) error {
	meta, err := h.Sets.Delete(c.Request().Context(), c.Param("set_num"))
	if err != nil {
		return respondStoreError(c, h.Log, err, "set")
	}
	return respondMeta(c, http.StatusOK, map[string]string{"set_num": c.Param("set_num")}, meta)
}
