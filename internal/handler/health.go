package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Version is the API version reported by the health endpoint.
const Version = "1.2.0"

// Health answers liveness probes. It never touches the store, so a broken
// database still reports the process as up.
func Health(c echo.Context) error {
	return respondData(c, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": Version,
	})
}
