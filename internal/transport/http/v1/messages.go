package v1

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hiveguard/honeytrap/internal/domain"
	"github.com/hiveguard/honeytrap/internal/service"
)

// PostMessage ingests one inbound scammer message.
// POST /message
func (h *Handler) PostMessage(c echo.Context) error {
	var req domain.IngestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"status":  "error",
			"message": "invalid request body",
		})
	}

	if err := service.ValidateIngest(req); err != nil {
		log.Printf("WARN: rejected message request: %v", err)
		return c.JSON(http.StatusBadRequest, map[string]string{
			"status":  "error",
			"message": "Missing required fields",
		})
	}

	log.Printf("Incoming message for session %s", req.SessionID)

	// Ingest never fails; internal errors degrade to a generic reply so
	// the scammer-facing exchange always succeeds.
	resp := h.service.Ingest(c.Request().Context(), req)
	return c.JSON(http.StatusOK, resp)
}
