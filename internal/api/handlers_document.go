// handlers_document.go - Document validation handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docsight/backend/internal/document"
)

// DocumentHandlerImpl implements the DocumentHandler interface
type DocumentHandlerImpl struct {
	inspector document.Inspector
}

// NewDocumentHandler creates a new document handler instance
func NewDocumentHandler(inspector document.Inspector) DocumentHandler {
	return &DocumentHandlerImpl{inspector: inspector}
}

// HandleInspectDocument validates an uploaded document without
// processing it. The frontend calls this on file selection so a
// multi-page PDF can be rejected and the selection cleared before the
// analyze button is ever enabled.
func (h *DocumentHandlerImpl) HandleInspectDocument(c echo.Context) error {
	doc, err := readDocument(c)
	if err != nil {
		return err
	}

	result, err := h.inspector.Inspect(doc)
	if err != nil {
		return NewInternalError("failed to inspect document", err)
	}

	return c.JSON(http.StatusOK, result)
}
