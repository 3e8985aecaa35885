package internalapi

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// GetSession returns a live session snapshot.
// GET /internal/sessions/:session_id
func (h *Handler) GetSession(c echo.Context) error {
	sessionID := c.Param("session_id")

	sess, ok := h.service.GetSession(sessionID)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	return c.JSON(http.StatusOK, sess)
}

// GetSessionEvents returns audit events for a session.
// GET /internal/sessions/:session_id/events
func (h *Handler) GetSessionEvents(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	afterTs, _ := strconv.ParseInt(c.QueryParam("after_ts"), 10, 64)
	typesStr := c.QueryParam("types")
	var types []string
	if typesStr != "" {
		types = strings.Split(typesStr, ",")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 100
	}

	events, err := h.service.GetEvents(ctx, sessionID, afterTs, types, limit+1)
	if err != nil {
		log.Printf("ERROR: failed to get events: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get events"})
	}

	hasMore := len(events) > limit
	if hasMore {
		events = events[:limit]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"events":   events,
		"has_more": hasMore,
	})
}
