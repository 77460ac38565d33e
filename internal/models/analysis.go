package models

import (
	"path/filepath"
	"strings"
	"time"
)

// Document represents an uploaded file held in memory for the duration
// of a single request. Nothing is retained after the request completes
// except the copy placed in object storage.
type Document struct {
	Name        string
	ContentType string
	Bytes       []byte
}

// Extension returns the original filename's extension without the dot,
// case preserved so the stored object key matches the uploaded name.
// Empty if the name carries none.
func (d Document) Extension() string {
	return strings.TrimPrefix(filepath.Ext(d.Name), ".")
}

// ObjectRef identifies the stored copy of a document in the object
// store. Created at upload time, never updated, never deleted by us.
type ObjectRef struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// SamplingParams are the four model sampling knobs exposed by the UI.
type SamplingParams struct {
	MaxNewTokens int     `json:"maxNewTokens"`
	Temperature  float64 `json:"temperature"`
	TopP         float64 `json:"topP"`
	TopK         int     `json:"topK"`
}

// StageTimings holds wall-clock durations measured around each external
// call, for display only.
type StageTimings struct {
	ExtractionSeconds float64 `json:"extractionSeconds"`
	InferenceSeconds  float64 `json:"inferenceSeconds"`
	TotalSeconds      float64 `json:"totalSeconds"`
}

// AnalysisRecord is one completed pipeline run as kept in the history
// store and returned by the analyze endpoint.
type AnalysisRecord struct {
	ID              string       `json:"id" msgpack:"id"`
	FileName        string       `json:"fileName" msgpack:"file_name"`
	ObjectKey       string       `json:"objectKey" msgpack:"object_key"`
	Prompt          string       `json:"prompt" msgpack:"prompt"`
	ExtractedText   string       `json:"extractedText" msgpack:"extracted_text"`
	AnalysisText    string       `json:"analysisText" msgpack:"analysis_text"`
	ExtractionError string       `json:"extractionError,omitempty" msgpack:"extraction_error"`
	AnalysisError   string       `json:"analysisError,omitempty" msgpack:"analysis_error"`
	Timings         StageTimings `json:"timings" msgpack:"timings"`
	CreatedAt       time.Time    `json:"createdAt" msgpack:"created_at"`
}

// InspectResult is returned by the document inspect endpoint before any
// network call is made.
type InspectResult struct {
	Accepted  bool   `json:"accepted"`
	Kind      string `json:"kind"` // "image" or "pdf"
	PageCount int    `json:"pageCount,omitempty"`
	Reason    string `json:"reason,omitempty"`
}
