// Package document validates uploaded files before any network call is
// made. Only single-page documents are accepted for processing.
package document

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/docsight/backend/internal/models"
)

// Accepted upload extensions.
var imageExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
}

// Inspector validates a document and reports its kind and page count.
// Implementations must not perform network calls.
type Inspector interface {
	Inspect(doc models.Document) (models.InspectResult, error)
}

// PDFInspector counts PDF pages with pdfcpu. The bytes are staged in a
// temp file because pdfcpu resolves the xref table from a file path.
type PDFInspector struct{}

// NewInspector returns the default Inspector.
func NewInspector() Inspector {
	return &PDFInspector{}
}

// Inspect classifies the document and applies the single-page rule.
// The returned error is reserved for local I/O problems; a rejected
// document is reported through InspectResult.Accepted and Reason.
func (i *PDFInspector) Inspect(doc models.Document) (models.InspectResult, error) {
	// Classification is case-insensitive; the key builder keeps the
	// extension's original case.
	ext := strings.ToLower(doc.Extension())

	if imageExtensions[ext] {
		return models.InspectResult{Accepted: true, Kind: "image"}, nil
	}

	if ext != "pdf" {
		return models.InspectResult{
			Accepted: false,
			Reason:   fmt.Sprintf("unsupported file type: .%s (allowed: png, jpg, jpeg, pdf)", ext),
		}, nil
	}

	pages, err := countPages(doc.Bytes)
	if err != nil {
		return models.InspectResult{
			Accepted: false,
			Kind:     "pdf",
			Reason:   "could not read PDF: " + err.Error(),
		}, nil
	}

	if pages > 1 {
		return models.InspectResult{
			Accepted:  false,
			Kind:      "pdf",
			PageCount: pages,
			Reason:    "multi-page documents are not supported; please upload a single-page document",
		}, nil
	}

	return models.InspectResult{Accepted: true, Kind: "pdf", PageCount: pages}, nil
}

func countPages(data []byte) (int, error) {
	tmp, err := os.CreateTemp("", "docsight-*.pdf")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("staging PDF: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("staging PDF: %w", err)
	}

	count, err := api.PageCountFile(tmp.Name())
	if err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return count, nil
}
