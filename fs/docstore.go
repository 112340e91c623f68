// Package fs provides file-based storage for crawled documents.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	assistant "github.com/chaurasiavikash/openSimAssistant"
)

// Ensure DocumentStore implements assistant.DocumentStore at compile time.
var _ assistant.DocumentStore = (*DocumentStore)(nil)

// DocumentStore persists crawled documents as a single JSON file with
// atomic update semantics. Save writes to a temporary file in the same
// directory, then renames it over the target, so readers never observe
// a partially written cache.
type DocumentStore struct {
	path string
}

// NewDocumentStore creates a new DocumentStore backed by the given file.
func NewDocumentStore(path string) *DocumentStore {
	return &DocumentStore{path: path}
}

// Path returns the cache file location.
func (s *DocumentStore) Path() string {
	return s.path
}

// Save replaces the cache with the given documents. Each document is
// validated before anything is written.
func (s *DocumentStore) Save(ctx context.Context, docs []*assistant.Document) error {
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, s.path)
}

// Load reads all documents from the cache. A missing cache file returns
// ENOTFOUND so callers can tell "no crawl yet" apart from a read error.
func (s *DocumentStore) Load(ctx context.Context) ([]*assistant.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, assistant.Errorf(assistant.ENOTFOUND, "document cache not found: %s", s.path)
		}
		return nil, err
	}

	var docs []*assistant.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, assistant.Errorf(assistant.EINTERNAL, "corrupt document cache: %v", err)
	}

	return docs, nil
}
