// Package history keeps a bounded list of recent analysis runs,
// persisted to disk between restarts.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/docsight/backend/internal/models"
)

// Store holds recent analysis records, newest first.
type Store struct {
	mu      sync.RWMutex
	path    string
	maxSize int
	records []models.AnalysisRecord
}

// NewStore creates a store persisting to path, loading any existing
// records. maxSize bounds the list; older records fall off the end.
func NewStore(path string, maxSize int) (*Store, error) {
	if maxSize <= 0 {
		maxSize = 50
	}

	s := &Store{path: path, maxSize: maxSize}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
		if err := s.load(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Add prepends a record and persists the list. Persistence failures
// are returned but the record stays in memory.
func (s *Store) Add(rec models.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]models.AnalysisRecord{rec}, s.records...)
	if len(s.records) > s.maxSize {
		s.records = s.records[:s.maxSize]
	}

	return s.save()
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) []models.AnalysisRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]models.AnalysisRecord, n)
	copy(out, s.records[:n])
	return out
}

// Get returns a record by ID.
func (s *Store) Get(id string) (models.AnalysisRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.AnalysisRecord{}, false
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading history file: %w", err)
	}

	if err := msgpack.Unmarshal(data, &s.records); err != nil {
		return fmt.Errorf("decoding history file: %w", err)
	}
	return nil
}

// save writes the list to disk via a temp file rename. Callers hold
// the lock.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}

	data, err := msgpack.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing history file: %w", err)
	}
	return nil
}
