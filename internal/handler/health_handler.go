package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health handles the health check endpoint
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": h.cfg.ServiceName,
	})
}
