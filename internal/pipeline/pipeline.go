// Package pipeline runs the document-analysis flow: upload the
// document to the object store, extract its text, analyze the text
// with the model. Stages run strictly in sequence; each stage's
// wall-clock duration is measured for display.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/docsight/backend/internal/docstore"
	"github.com/docsight/backend/internal/inference"
	"github.com/docsight/backend/internal/models"
	"github.com/docsight/backend/internal/ocr"
)

// Processor wires the three stage clients together.
type Processor struct {
	uploader  docstore.Uploader
	extractor ocr.Extractor
	analyzer  inference.Analyzer
	log       *slog.Logger
	now       func() time.Time
}

// NewProcessor creates a pipeline processor. A nil logger falls back to
// slog.Default.
func NewProcessor(uploader docstore.Uploader, extractor ocr.Extractor, analyzer inference.Analyzer, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{
		uploader:  uploader,
		extractor: extractor,
		analyzer:  analyzer,
		log:       log,
		now:       time.Now,
	}
}

// Request is one user-triggered analysis run.
type Request struct {
	Document models.Document
	Prompt   string
	Params   models.SamplingParams
}

// Process runs the pipeline. An upload failure aborts the run and is
// returned as the error; extraction and inference failures are
// recorded on the result and the run continues with empty values, so
// callers can always show whatever was produced.
func (p *Processor) Process(ctx context.Context, req Request) (*models.AnalysisRecord, error) {
	totalStart := p.now()

	key := docstore.ObjectKey(totalStart, req.Document.Extension())

	rec := &models.AnalysisRecord{
		ID:        uuid.New().String(),
		FileName:  req.Document.Name,
		ObjectKey: key,
		Prompt:    req.Prompt,
		CreatedAt: totalStart,
	}

	ref, err := p.uploader.Upload(ctx, req.Document, key)
	if err != nil {
		p.log.Error("pipeline.upload_failed", "key", key, "error", err)
		return nil, err
	}
	p.log.Info("pipeline.uploaded", "key", key, "size", len(req.Document.Bytes))

	extractStart := p.now()
	text, err := p.extractor.ExtractText(ctx, ref)
	rec.Timings.ExtractionSeconds = p.now().Sub(extractStart).Seconds()
	if err != nil {
		// Non-fatal: continue with empty text, record the reason.
		rec.ExtractionError = err.Error()
		p.log.Error("pipeline.extraction_failed", "key", key, "error", err)
	} else {
		rec.ExtractedText = text
		p.log.Info("pipeline.extracted", "key", key, "chars", len(text),
			"elapsed_ms", int64(rec.Timings.ExtractionSeconds*1000))
	}

	inferStart := p.now()
	analysis, err := p.analyzer.Analyze(ctx, req.Prompt, rec.ExtractedText, req.Params)
	rec.Timings.InferenceSeconds = p.now().Sub(inferStart).Seconds()
	if err != nil {
		// Non-fatal: empty result, record the reason.
		rec.AnalysisError = err.Error()
		p.log.Error("pipeline.inference_failed", "key", key, "error", err)
	} else {
		rec.AnalysisText = analysis
		p.log.Info("pipeline.analyzed", "key", key, "chars", len(analysis),
			"elapsed_ms", int64(rec.Timings.InferenceSeconds*1000))
	}

	rec.Timings.TotalSeconds = p.now().Sub(totalStart).Seconds()
	return rec, nil
}
