package repositories

import (
	"context"

	"github.com/Alpharn/questionnaire/internal/models"
)

// QuestionRepository owns the authoritative in-memory question collection and
// keeps it synchronized with the persistence gateway on every mutation.
//
// Lookup operations report a missing id with apperrors.ErrQuestionNotFound.
type QuestionRepository interface {
	// List returns the current in-memory snapshot; storage is read once at
	// construction, never per call.
	List(ctx context.Context) ([]models.Question, error)
	GetByID(ctx context.Context, id string) (*models.Question, error)

	// Upsert stores a question, assigning a fresh id and creation timestamp
	// when the question has none, and replacing any existing record with the
	// same id. Returns the stored record.
	Upsert(ctx context.Context, question models.Question) (*models.Question, error)

	// Remove deletes the record with the given id. Removing an unknown id is
	// a no-op, not an error.
	Remove(ctx context.Context, id string) error

	// SetAnswer records an answer: marks the question answered and refreshes
	// its creation timestamp so it surfaces on top of date-sorted views.
	SetAnswer(ctx context.Context, id string, answer models.Answer) (*models.Question, error)

	// ClearAnswer rolls an answer back, restoring the unanswered state.
	ClearAnswer(ctx context.Context, id string) (*models.Question, error)
}
