package storage

import (
	"context"
	"sync"

	"github.com/Alpharn/questionnaire/internal/models"
)

// MemoryStore is an in-memory Store for tests and examples. It can be primed
// with an error to exercise failure paths.
type MemoryStore struct {
	mu        sync.Mutex
	questions []models.Question
	failWith  error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{questions: []models.Question{}}
}

func (s *MemoryStore) Load(ctx context.Context) ([]models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return cloneAll(s.questions), nil
}

func (s *MemoryStore) Save(ctx context.Context, questions []models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.questions = cloneAll(questions)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// FailWith makes every subsequent Load and Save return err. Pass nil to
// restore normal behavior.
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// Saved returns the last persisted collection.
func (s *MemoryStore) Saved() []models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.questions)
}

func cloneAll(questions []models.Question) []models.Question {
	out := make([]models.Question, len(questions))
	for i, q := range questions {
		out[i] = q.Clone()
	}
	return out
}
