package state

import (
	"sort"

	"github.com/Alpharn/questionnaire/internal/models"
)

// Selectors are pure projections over a state snapshot. All list views share
// one ordering: newest first, with the stable sort preserving the original
// relative order of questions created at the same instant.

// AllQuestions returns every question, newest first.
func AllQuestions(s State) []models.Question {
	return sortByCreatedAtDesc(cloneAll(s.Questions))
}

// AnsweredQuestions returns answered questions, newest first.
func AnsweredQuestions(s State) []models.Question {
	return sortByCreatedAtDesc(filter(s.Questions, func(q models.Question) bool { return q.Answered }))
}

// UnansweredQuestions returns unanswered questions, newest first.
func UnansweredQuestions(s State) []models.Question {
	return sortByCreatedAtDesc(filter(s.Questions, func(q models.Question) bool { return !q.Answered }))
}

// QuestionByID returns the question with the given id, or nil.
func QuestionByID(s State, id string) *models.Question {
	for _, q := range s.Questions {
		if q.ID == id {
			c := q.Clone()
			return &c
		}
	}
	return nil
}

func sortByCreatedAtDesc(questions []models.Question) []models.Question {
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].CreatedAt.After(questions[j].CreatedAt)
	})
	return questions
}

func filter(questions []models.Question, keep func(models.Question) bool) []models.Question {
	out := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if keep(q) {
			out = append(out, q.Clone())
		}
	}
	return out
}
