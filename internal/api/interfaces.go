// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
)

// AnalyzeHandler runs the document-analysis pipeline
type AnalyzeHandler interface {
	HandleAnalyze(c echo.Context) error
}

// DocumentHandler validates documents before processing
type DocumentHandler interface {
	HandleInspectDocument(c echo.Context) error
}

// HistoryHandler serves recent analysis runs
type HistoryHandler interface {
	HandleRecentAnalyses(c echo.Context) error
	HandleGetAnalysis(c echo.Context) error
}

// DefaultsHandler serves UI defaults (prompt, sampling parameters)
type DefaultsHandler interface {
	HandleGetDefaults(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}
