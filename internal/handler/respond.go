// Package handler defines the HTTP handlers of the catalog API. Every
// response uses one envelope shape so clients never branch on layout:
//
//	{ success, data?, error?, pagination?, meta? }
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/bricksdeal/catalog-api/internal/repository"
)

// jsonIndent is applied to every response body. The browse frontend and
// the curl-driven admin workflow both read these payloads by eye.
const jsonIndent = "  "

// Pagination is the envelope block describing a list page. Total is the
// count of all rows matching the filter, not the page length.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// Envelope is the uniform JSON wrapper for all API responses.
type Envelope struct {
	Success    bool             `json:"success"`
	Data       any              `json:"data,omitempty"`
	Error      string           `json:"error,omitempty"`
	Pagination *Pagination      `json:"pagination,omitempty"`
	Meta       *repository.Meta `json:"meta,omitempty"`
}

func respondData(c echo.Context, status int, data any) error {
	return c.JSONPretty(status, Envelope{Success: true, Data: data}, jsonIndent)
}

func respondList(c echo.Context, data any, p Pagination) error {
	return c.JSONPretty(http.StatusOK, Envelope{Success: true, Data: data, Pagination: &p}, jsonIndent)
}

func respondMeta(c echo.Context, status int, data any, meta repository.Meta) error {
	return c.JSONPretty(status, Envelope{Success: true, Data: data, Meta: &meta}, jsonIndent)
}

func respondError(c echo.Context, status int, msg string) error {
	return c.JSONPretty(status, Envelope{Success: false, Error: msg}, jsonIndent)
}

// respondStoreError maps repository sentinels onto the error taxonomy.
// Anything unrecognized becomes a 500 with a generic message; the
// underlying detail is logged server-side and never echoed to the client.
func respondStoreError(c echo.Context, log *zap.Logger, err error, resource string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return respondError(c, http.StatusNotFound, resource+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return respondError(c, http.StatusConflict, resource+" already exists")
	case errors.Is(err, repository.ErrConflict):
		return respondError(c, http.StatusConflict, "cannot delete "+resource+" while dependent rows reference it")
	case errors.Is(err, repository.ErrEmptyUpdate):
		return respondError(c, http.StatusBadRequest, "no updatable fields in payload")
	case errors.Is(err, repository.ErrBadReference):
		return respondError(c, http.StatusBadRequest, "referenced row does not exist")
	}
	log.Error("store operation failed",
		zap.String("resource", resource),
		zap.String("path", c.Path()),
		zap.Error(err))
	return respondError(c, http.StatusInternalServerError, "internal error")
}
