// handlers_history.go - Recent analyses handlers
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/docsight/backend/internal/history"
)

// HistoryHandlerImpl implements the HistoryHandler interface
type HistoryHandlerImpl struct {
	store *history.Store
}

// NewHistoryHandler creates a new history handler instance
func NewHistoryHandler(store *history.Store) HistoryHandler {
	return &HistoryHandlerImpl{store: store}
}

// HandleRecentAnalyses returns recent analysis runs, newest first
func (h *HistoryHandlerImpl) HandleRecentAnalyses(c echo.Context) error {
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return NewValidationError("limit")
		}
		limit = n
	}

	return c.JSON(http.StatusOK, h.store.Recent(limit))
}

// HandleGetAnalysis returns a single analysis run by ID
func (h *HistoryHandlerImpl) HandleGetAnalysis(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	rec, ok := h.store.Get(id)
	if !ok {
		return NewNotFoundError("analysis", id)
	}

	return c.JSON(http.StatusOK, rec)
}
