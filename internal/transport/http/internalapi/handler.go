// Package internalapi provides HTTP handlers for internal operator APIs.
// These endpoints expose live session state and the audit log and are only
// served on the internal port.
package internalapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hiveguard/honeytrap/internal/service"
)

// Handler handles internal HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new internal API handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers internal routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Session state
	e.GET("/internal/sessions/:session_id", h.GetSession)

	// Audit log
	e.GET("/internal/sessions/:session_id/events", h.GetSessionEvents)

	// Process stats
	e.GET("/internal/stats", h.GetStats)
}

// GetStats reports process-level counters. Sessions are retained for the
// process lifetime, so the count only grows.
func (h *Handler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sessions": h.service.SessionCount(),
	})
}
