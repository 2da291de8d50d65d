package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	completionMode string
	version        string
}

func NewHealthHandler(completionMode, version string) *HealthHandler {
	return &HealthHandler{
		completionMode: completionMode,
		version:        version,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":          "ok",
		"version":         h.version,
		"completion_mode": h.completionMode,
		"time":            time.Now().Format(time.RFC3339),
	})
}
