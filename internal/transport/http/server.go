// Package http provides the HTTP server implementation for the orchestrator.
package http

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hiveguard/honeytrap/internal/service"
	"github.com/hiveguard/honeytrap/internal/transport/http/internalapi"
	v1 "github.com/hiveguard/honeytrap/internal/transport/http/v1"
)

// NewExternalServer creates and configures the external-facing HTTP server.
// This server handles inbound scammer messages from the platform; every
// route except /health requires the shared-secret X-API-Key header.
func NewExternalServer(svc *service.Service, apiKey string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup: "header:X-API-Key",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health"
		},
		Validator: func(key string, c echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return c.JSON(401, map[string]string{"status": "error", "message": "Unauthorized"})
		},
	}))

	// Handlers
	v1Handler := v1.NewHandler(svc)

	// Register Routes
	v1Handler.RegisterRoutes(e)

	return e
}

// NewInternalServer creates and configures the internal-facing HTTP server.
// This server exposes operator endpoints for inspecting live session state
// and the audit log; it must not be reachable from outside.
func NewInternalServer(svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Handlers
	internalHandler := internalapi.NewHandler(svc)

	// Register Routes
	internalHandler.RegisterRoutes(e)

	return e
}
