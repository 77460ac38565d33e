// mock_clients.go - Mock pipeline clients for testing
package testutil

import (
	"context"
	"sync"

	"github.com/docsight/backend/internal/models"
)

// MockUploader implements docstore.Uploader for testing
type MockUploader struct {
	mu      sync.Mutex
	Bucket  string
	Err     error
	Calls   int
	Keys    []string
	LastDoc models.Document
}

// NewMockUploader creates a mock uploader storing into the given bucket
func NewMockUploader(bucket string) *MockUploader {
	return &MockUploader{Bucket: bucket}
}

func (m *MockUploader) Upload(ctx context.Context, doc models.Document, key string) (models.ObjectRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.Keys = append(m.Keys, key)
	m.LastDoc = doc

	if m.Err != nil {
		return models.ObjectRef{}, m.Err
	}
	return models.ObjectRef{Bucket: m.Bucket, Key: key}, nil
}

// MockExtractor implements ocr.Extractor for testing
type MockExtractor struct {
	mu    sync.Mutex
	Text  string
	Err   error
	Calls int
	Refs  []models.ObjectRef
}

func (m *MockExtractor) ExtractText(ctx context.Context, ref models.ObjectRef) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.Refs = append(m.Refs, ref)

	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// MockAnalyzer implements inference.Analyzer for testing
type MockAnalyzer struct {
	mu         sync.Mutex
	Result     string
	Err        error
	Calls      int
	LastPrompt string
	LastText   string
	LastParams models.SamplingParams
}

func (m *MockAnalyzer) Analyze(ctx context.Context, prompt, extractedText string, params models.SamplingParams) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.LastPrompt = prompt
	m.LastText = extractedText
	m.LastParams = params

	if m.Err != nil {
		return "", m.Err
	}
	return m.Result, nil
}

// MockInspector implements document.Inspector for testing
type MockInspector struct {
	Result models.InspectResult
	Err    error
	Calls  int
}

func (m *MockInspector) Inspect(doc models.Document) (models.InspectResult, error) {
	m.Calls++
	if m.Err != nil {
		return models.InspectResult{}, m.Err
	}
	return m.Result, nil
}

// AcceptAllInspector returns a MockInspector that accepts any document
func AcceptAllInspector() *MockInspector {
	return &MockInspector{Result: models.InspectResult{Accepted: true, Kind: "image"}}
}
