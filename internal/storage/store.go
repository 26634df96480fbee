package storage

import (
	"context"
	"encoding/json"

	"github.com/Alpharn/questionnaire/internal/models"
	"github.com/Alpharn/questionnaire/internal/utils"
)

// DefaultKey is the storage key the question collection is persisted under.
const DefaultKey = "questions"

// Store is the persistence gateway. The entire question collection is one
// serialized document kept under a single storage key; every Save overwrites
// the previous document wholesale.
type Store interface {
	Load(ctx context.Context) ([]models.Question, error)
	Save(ctx context.Context, questions []models.Question) error
	Close() error
}

func encodeCollection(questions []models.Question) ([]byte, error) {
	if questions == nil {
		questions = []models.Question{}
	}
	return json.Marshal(questions)
}

// decodeCollection turns a stored document back into questions. Malformed
// content is discarded and treated as an empty collection rather than
// surfaced as an error.
func decodeCollection(data []byte, logger utils.Logger) []models.Question {
	if len(data) == 0 {
		return []models.Question{}
	}
	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		logger.Warn("Discarding malformed stored collection", "error", err)
		return []models.Question{}
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return questions
}
