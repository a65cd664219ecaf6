package records

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/studio-matra/portfolio-backend/internal/catalog"
)

// Document is the single persisted JSON document.
type Document struct {
	Locations []catalog.Location `json:"locations"`
	Projects  []catalog.Project  `json:"projects"`
}

// Store reads and writes the backing JSON file as a whole document.
// Writes are last-writer-wins; there is no cross-process locking and two
// concurrent admin writes can clobber each other. The mutex only keeps
// writers within this process from interleaving file operations.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Read returns the current document. On first use the backing file is
// initialized to an empty document and persisted before returning.
// Malformed content fails the read; no schema validation beyond JSON.
func (s *Store) Read() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		doc := emptyDocument()
		if err := s.writeLocked(doc); err != nil {
			return Document{}, err
		}
		return doc, nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("read records file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse records file: %w", err)
	}
	if doc.Locations == nil {
		doc.Locations = []catalog.Location{}
	}
	if doc.Projects == nil {
		doc.Projects = []catalog.Project{}
	}
	return doc, nil
}

// Write overwrites the whole document. The temp-file rename keeps a crashed
// write from leaving a half-written file; it does not protect against a
// concurrent writer overwriting the result.
func (s *Store) Write(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(doc)
}

func (s *Store) writeLocked(doc Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write records file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace records file: %w", err)
	}
	return nil
}

func emptyDocument() Document {
	return Document{Locations: []catalog.Location{}, Projects: []catalog.Project{}}
}
