// handlers_health.go - Health check handler
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version    string
	configured bool
}

// NewHealthHandler creates a new health handler. configured reports
// whether the analysis pipeline is usable, so probes can distinguish
// "up" from "up but missing AWS configuration".
func NewHealthHandler(version string, configured bool) HealthHandler {
	return &HealthHandlerImpl{
		version:    version,
		configured: configured,
	}
}

// HandleHealth returns server health status
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"version":    h.version,
		"configured": h.configured,
	})
}
