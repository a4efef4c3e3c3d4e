package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// pageParams reads limit/offset with string-to-int coercion. Garbage or
// absent values fall back to the defaults; limit is clamped.
func pageParams(c echo.Context) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// intParam parses an optional integer query parameter, returning nil when
// absent or malformed.
func intParam(c echo.Context, name string) *int {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// int64Param parses an optional int64 query parameter, returning nil when
// absent or malformed.
func int64Param(c echo.Context, name string) *int64 {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
