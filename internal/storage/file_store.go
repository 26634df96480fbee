package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/Alpharn/questionnaire/internal/models"
	"github.com/Alpharn/questionnaire/internal/utils"
)

// FileStore keeps the collection in a single JSON file holding a key to
// document map, the local equivalent of browser local storage. Other keys in
// the file are preserved across saves.
type FileStore struct {
	filename string
	key      string
	mu       sync.Mutex
	logger   utils.Logger
}

// NewFileStore creates a file-backed store. The file is created lazily on the
// first Save; a missing file loads as an empty collection.
func NewFileStore(filename, key string, logger utils.Logger) *FileStore {
	if key == "" {
		key = DefaultKey
	}
	return &FileStore{
		filename: filename,
		key:      key,
		logger:   logger.With("store", "file", "path", filename),
	}
}

// Load reads the collection stored under the configured key. Corrupt file
// content yields an empty collection, never an error.
func (s *FileStore) Load(ctx context.Context) ([]models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readEntries()
	if err != nil {
		return nil, err
	}
	return decodeCollection(entries[s.key], s.logger), nil
}

// Save overwrites the collection under the configured key with a single
// synchronous write.
func (s *FileStore) Save(ctx context.Context, questions []models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readEntries()
	if err != nil {
		return err
	}

	document, err := encodeCollection(questions)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	entries[s.key] = document

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store file: %w", err)
	}
	if err := os.WriteFile(s.filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", s.filename, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) readEntries() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.filename)
	if os.IsNotExist(err) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", s.filename, err)
	}
	if len(data) == 0 {
		return make(map[string]json.RawMessage), nil
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("Discarding malformed store file", "error", err)
		return make(map[string]json.RawMessage), nil
	}
	return entries, nil
}
