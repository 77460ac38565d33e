// handlers_analyze.go - Document analysis pipeline handler
package api

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/docsight/backend/internal/config"
	"github.com/docsight/backend/internal/document"
	"github.com/docsight/backend/internal/history"
	"github.com/docsight/backend/internal/models"
	"github.com/docsight/backend/internal/pipeline"
)

// AnalyzeHandlerImpl implements the AnalyzeHandler interface
type AnalyzeHandlerImpl struct {
	processor   *pipeline.Processor
	inspector   document.Inspector
	history     *history.Store
	defaults    config.AnalysisConfig
	configError error
	log         *slog.Logger
}

// NewAnalyzeHandler creates a new analyze handler instance
func NewAnalyzeHandler(processor *pipeline.Processor, inspector document.Inspector, hist *history.Store, defaults config.AnalysisConfig, configError error, log *slog.Logger) AnalyzeHandler {
	return &AnalyzeHandlerImpl{
		processor:   processor,
		inspector:   inspector,
		history:     hist,
		defaults:    defaults,
		configError: configError,
		log:         log,
	}
}

// HandleAnalyze accepts a document and a prompt as multipart form data
// and runs the full pipeline: store, extract, analyze. The document is
// validated before any network call; a rejected document produces zero
// calls to storage, OCR, or the model.
func (h *AnalyzeHandlerImpl) HandleAnalyze(c echo.Context) error {
	if h.configError != nil {
		return NewNotConfiguredError(h.configError.Error())
	}

	doc, err := readDocument(c)
	if err != nil {
		return err
	}

	prompt := c.FormValue("prompt")
	if prompt == "" {
		prompt = h.defaults.DefaultPrompt
	}

	params, err := h.readSamplingParams(c)
	if err != nil {
		return err
	}

	inspection, err := h.inspector.Inspect(doc)
	if err != nil {
		return NewInternalError("failed to inspect document", err)
	}
	if !inspection.Accepted {
		return NewDocumentRejectedError(inspection.Reason)
	}

	rec, err := h.processor.Process(c.Request().Context(), pipeline.Request{
		Document: doc,
		Prompt:   prompt,
		Params:   params,
	})
	if err != nil {
		return NewUploadFailedError(err)
	}

	if h.history != nil {
		if err := h.history.Add(*rec); err != nil {
			h.log.Warn("api.history_save_failed", "id", rec.ID, "error", err)
		}
	}

	return c.JSON(http.StatusOK, rec)
}

// readDocument extracts the uploaded file from the multipart form.
func readDocument(c echo.Context) (models.Document, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.Document{}, NewBadRequestError("no file provided", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return models.Document{}, NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return models.Document{}, NewInternalError("failed to read uploaded file", err)
	}

	return models.Document{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Bytes:       data,
	}, nil
}

// readSamplingParams parses the four sampling knobs, applying the
// configured defaults for absent fields and rejecting out-of-range
// values to match the UI slider bounds.
func (h *AnalyzeHandlerImpl) readSamplingParams(c echo.Context) (models.SamplingParams, error) {
	params := models.SamplingParams{
		MaxNewTokens: h.defaults.DefaultMaxNewTokens,
		Temperature:  h.defaults.DefaultTemperature,
		TopP:         h.defaults.DefaultTopP,
		TopK:         h.defaults.DefaultTopK,
	}

	if v := c.FormValue("maxTokens"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 100 || n > 2000 {
			return params, NewValidationError("maxTokens")
		}
		params.MaxNewTokens = n
	}
	if v := c.FormValue("temperature"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return params, NewValidationError("temperature")
		}
		params.Temperature = f
	}
	if v := c.FormValue("topP"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return params, NewValidationError("topP")
		}
		params.TopP = f
	}
	if v := c.FormValue("topK"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return params, NewValidationError("topK")
		}
		params.TopK = n
	}

	return params, nil
}
