package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thumbtack/onlineshop/internal/core/ports"
)

// ServerHandler exposes server settings and the debug reset.
type ServerHandler struct {
	service ports.ServerService
}

func NewServerHandler(service ports.ServerService) *ServerHandler {
	return &ServerHandler{service: service}
}

// Settings handles GET /api/settings. No session is required.
//
// @Summary      Validation limits
// @Tags         server
// @Produce      json
// @Success      200  {object}  settingsResponse
// @Router       /api/settings [get]
func (h *ServerHandler) Settings(c echo.Context) error {
	s := h.service.Settings()
	return c.JSON(http.StatusOK, settingsResponse{
		MaxNameLength:     s.MaxNameLength,
		MinPasswordLength: s.MinPasswordLength,
	})
}

// Clear handles POST /api/debug/clear. Only routed outside production.
//
// @Summary      Wipe all data
// @Tags         server
// @Produce      json
// @Success      200  {object}  emptyResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/debug/clear [post]
func (h *ServerHandler) Clear(c echo.Context) error {
	if err := h.service.Clear(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyResponse{})
}
