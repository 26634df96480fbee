package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Alpharn/questionnaire/internal/apperrors"
	"github.com/Alpharn/questionnaire/internal/models"
	"github.com/Alpharn/questionnaire/internal/storage"
	"github.com/Alpharn/questionnaire/internal/utils"
	"github.com/Alpharn/questionnaire/internal/validator"
)

type questionRepository struct {
	mu        sync.RWMutex
	questions []models.Question
	store     storage.Store
	validator *validator.Validator
	logger    utils.Logger
}

// NewQuestionRepository builds a repository mirroring the persisted
// collection. Storage is read exactly once, here; corrupt stored content has
// already been degraded to an empty collection by the gateway.
func NewQuestionRepository(ctx context.Context, store storage.Store, v *validator.Validator, logger utils.Logger) (QuestionRepository, error) {
	questions, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded question collection", "count", len(questions))
	return &questionRepository{
		questions: questions,
		store:     store,
		validator: v,
		logger:    logger,
	}, nil
}

func (r *questionRepository) List(ctx context.Context) ([]models.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.questions), nil
}

func (r *questionRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, q := range r.questions {
		if q.ID == id {
			c := q.Clone()
			return &c, nil
		}
	}
	return nil, apperrors.ErrQuestionNotFound
}

func (r *questionRepository) Upsert(ctx context.Context, question models.Question) (*models.Question, error) {
	question = normalize(question, r.validator)
	if err := r.validator.ValidateQuestion(&question); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now().UTC()
	}

	// Replace any record with the same id; new records go to the back.
	next := make([]models.Question, 0, len(r.questions)+1)
	for _, q := range r.questions {
		if q.ID != question.ID {
			next = append(next, q)
		}
	}
	next = append(next, question.Clone())

	if err := r.persist(ctx, next); err != nil {
		return nil, err
	}
	r.questions = next

	stored := question.Clone()
	return &stored, nil
}

func (r *questionRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]models.Question, 0, len(r.questions))
	for _, q := range r.questions {
		if q.ID != id {
			next = append(next, q)
		}
	}

	if err := r.persist(ctx, next); err != nil {
		return err
	}
	r.questions = next
	return nil
}

func (r *questionRepository) SetAnswer(ctx context.Context, id string, answer models.Answer) (*models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, apperrors.ErrQuestionNotFound
	}

	question := r.questions[i].Clone()
	if err := r.validator.ValidateAnswer(&question, answer); err != nil {
		return nil, err
	}

	question.Answer = answer
	question.Answered = true
	// Answering refreshes the timestamp so the question surfaces on top of
	// date-sorted views.
	question.CreatedAt = time.Now().UTC()

	return r.replaceAt(ctx, i, question)
}

func (r *questionRepository) ClearAnswer(ctx context.Context, id string) (*models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, apperrors.ErrQuestionNotFound
	}

	question := r.questions[i].Clone()
	question.Answer = models.Answer{}
	question.Answered = false

	return r.replaceAt(ctx, i, question)
}

// replaceAt swaps in the updated record at index i, persisting first so a
// failed write leaves the in-memory mirror untouched. Callers hold the lock.
func (r *questionRepository) replaceAt(ctx context.Context, i int, question models.Question) (*models.Question, error) {
	next := cloneAll(r.questions)
	next[i] = question.Clone()

	if err := r.persist(ctx, next); err != nil {
		return nil, err
	}
	r.questions = next

	updated := question.Clone()
	return &updated, nil
}

func (r *questionRepository) persist(ctx context.Context, questions []models.Question) error {
	if err := r.store.Save(ctx, questions); err != nil {
		r.logger.LogError(err, "Failed to persist question collection")
		return err
	}
	return nil
}

func (r *questionRepository) indexOf(id string) int {
	for i, q := range r.questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// normalize adjusts a question after an edit may have changed its type:
// open-ended questions lose their option list, and an answer that no longer
// fits the type or options is dropped. The answered flag always tracks the
// answer itself.
func normalize(question models.Question, v *validator.Validator) models.Question {
	if !question.QuestionType.HasOptions() {
		question.Options = nil
	}
	if !question.Answer.IsZero() {
		if err := v.ValidateAnswer(&question, question.Answer); err != nil {
			question.Answer = models.Answer{}
		}
	}
	question.Answered = !question.Answer.IsZero()
	return question
}

func cloneAll(questions []models.Question) []models.Question {
	out := make([]models.Question, len(questions))
	for i, q := range questions {
		out[i] = q.Clone()
	}
	return out
}
