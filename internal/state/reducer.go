package state

import (
	"github.com/Alpharn/questionnaire/internal/actions"
	"github.com/Alpharn/questionnaire/internal/apperrors"
	"github.com/Alpharn/questionnaire/internal/models"
)

// Reduce is the pure, total transition function. It never mutates the input
// state; unhandled intents fall through as identity.
//
// Two policies are deliberate here. Adds are optimistic: the add intent
// appends immediately and the success result reconciles by id, so the entry
// is never duplicated. And every success clears the previous failure, so the
// surfaced error is always about the latest outcome.
func Reduce(s State, action actions.Action) State {
	switch a := action.(type) {
	case actions.LoadQuestionsSuccess:
		next := s.Clone()
		next.Questions = cloneAll(a.Questions)
		next.Err = nil
		return next

	case actions.LoadQuestionsFailure:
		next := s.Clone()
		next.Err = apperrors.NewOperationError(apperrors.OpLoad, a.Error)
		return next

	case actions.AddQuestion:
		// Optimistic update. Upserting rather than appending keeps an edit of
		// an existing question from duplicating its entry.
		next := s.Clone()
		next.Questions = upsertByID(next.Questions, a.Question)
		return next

	case actions.AddQuestionSuccess:
		next := s.Clone()
		next.Questions = upsertByID(next.Questions, a.Question)
		next.Err = nil
		return next

	case actions.AddQuestionFailure:
		// The optimistic entry stays; the next load reconciles it away.
		next := s.Clone()
		next.Err = apperrors.NewOperationError(apperrors.OpAdd, a.Error)
		return next

	case actions.DeleteQuestionSuccess:
		next := s.Clone()
		next.Questions = removeByID(next.Questions, a.ID)
		next.Err = nil
		return next

	case actions.DeleteQuestionFailure:
		next := s.Clone()
		next.Err = apperrors.NewOperationError(apperrors.OpDelete, a.Error)
		return next

	case actions.AnswerQuestionSuccess:
		next := s.Clone()
		if a.Question != nil {
			next.Questions = replaceByID(next.Questions, *a.Question)
		}
		next.Err = nil
		return next

	case actions.AnswerQuestionFailure:
		next := s.Clone()
		next.Err = apperrors.NewOperationError(apperrors.OpAnswer, a.Error)
		return next

	case actions.RollbackAnswerSuccess:
		next := s.Clone()
		if a.Question != nil {
			next.Questions = replaceByID(next.Questions, *a.Question)
		}
		next.Err = nil
		return next

	case actions.RollbackAnswerFailure:
		next := s.Clone()
		next.Err = apperrors.NewOperationError(apperrors.OpRollback, a.Error)
		return next

	case actions.LoadQuestions, actions.DeleteQuestion, actions.AnswerQuestion, actions.RollbackAnswer:
		// Intents handled solely by the effect pipeline.
		return s

	default:
		return s
	}
}

func upsertByID(questions []models.Question, question models.Question) []models.Question {
	for i, q := range questions {
		if q.ID == question.ID {
			questions[i] = question.Clone()
			return questions
		}
	}
	return append(questions, question.Clone())
}

func replaceByID(questions []models.Question, question models.Question) []models.Question {
	for i, q := range questions {
		if q.ID == question.ID {
			questions[i] = question.Clone()
		}
	}
	return questions
}

func removeByID(questions []models.Question, id string) []models.Question {
	next := questions[:0]
	for _, q := range questions {
		if q.ID != id {
			next = append(next, q)
		}
	}
	return next
}

func cloneAll(questions []models.Question) []models.Question {
	out := make([]models.Question, len(questions))
	for i, q := range questions {
		out[i] = q.Clone()
	}
	return out
}
