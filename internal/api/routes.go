// routes.go - Route registration helpers
package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/docsight/backend/internal/config"
	"github.com/docsight/backend/internal/document"
	"github.com/docsight/backend/internal/history"
	"github.com/docsight/backend/internal/pipeline"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Config    *config.AppConfig
	Processor *pipeline.Processor
	Inspector document.Inspector
	History   *history.Store
	Log       *slog.Logger
	Version   string

	// ConfigError carries the startup validation failure, if any;
	// analysis is blocked while it is set.
	ConfigError error
}

// Handlers holds all handler instances
type Handlers struct {
	Health   HealthHandler
	Analyze  AnalyzeHandler
	Document DocumentHandler
	History  HistoryHandler
	Defaults DefaultsHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{
		Health:   NewHealthHandler(deps.Version, deps.ConfigError == nil),
		Analyze:  NewAnalyzeHandler(deps.Processor, deps.Inspector, deps.History, deps.Config.Analysis, deps.ConfigError, log),
		Document: NewDocumentHandler(deps.Inspector),
		History:  NewHistoryHandler(deps.History),
		Defaults: NewDefaultsHandler(deps.Config, deps.ConfigError),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, h *Handlers) {
	apiGroup := e.Group("/api")

	apiGroup.GET("/health", h.Health.HandleHealth)
	apiGroup.GET("/defaults", h.Defaults.HandleGetDefaults)

	apiGroup.POST("/documents/inspect", h.Document.HandleInspectDocument)
	apiGroup.POST("/analyze", h.Analyze.HandleAnalyze)

	apiGroup.GET("/analyses/recent", h.History.HandleRecentAnalyses)
	apiGroup.GET("/analyses/:id", h.History.HandleGetAnalysis)
}
