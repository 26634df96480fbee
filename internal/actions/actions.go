// Package actions defines the closed message vocabulary of the question
// pipeline: one intent per user-facing mutation and a success/failure result
// for each. Actions are pure data; behavior lives in the effect handlers and
// the reducer.
package actions

import (
	"github.com/Alpharn/questionnaire/internal/models"
)

// Kind identifies one message in the vocabulary.
type Kind string

const (
	KindLoadQuestions        Kind = "load_questions"
	KindLoadQuestionsSuccess Kind = "load_questions_success"
	KindLoadQuestionsFailure Kind = "load_questions_failure"

	KindAddQuestion        Kind = "add_question"
	KindAddQuestionSuccess Kind = "add_question_success"
	KindAddQuestionFailure Kind = "add_question_failure"

	KindDeleteQuestion        Kind = "delete_question"
	KindDeleteQuestionSuccess Kind = "delete_question_success"
	KindDeleteQuestionFailure Kind = "delete_question_failure"

	KindAnswerQuestion        Kind = "answer_question"
	KindAnswerQuestionSuccess Kind = "answer_question_success"
	KindAnswerQuestionFailure Kind = "answer_question_failure"

	KindRollbackAnswer        Kind = "rollback_answer"
	KindRollbackAnswerSuccess Kind = "rollback_answer_success"
	KindRollbackAnswerFailure Kind = "rollback_answer_failure"
)

// Topic layout: every intent has its own topic so the router binds exactly
// one handler per intent kind; all results funnel into a single feed consumed
// by the state store. The navigation topic carries post-add notices for the
// UI layer.
const (
	TopicLoadQuestions  = "questions.intent.load"
	TopicAddQuestion    = "questions.intent.add"
	TopicDeleteQuestion = "questions.intent.delete"
	TopicAnswerQuestion = "questions.intent.answer"
	TopicRollbackAnswer = "questions.intent.rollback"

	TopicResults    = "questions.results"
	TopicNavigation = "questions.navigation"
)

// IntentTopic maps an intent kind to its topic. Result kinds have no intent
// topic and report false.
func IntentTopic(k Kind) (string, bool) {
	switch k {
	case KindLoadQuestions:
		return TopicLoadQuestions, true
	case KindAddQuestion:
		return TopicAddQuestion, true
	case KindDeleteQuestion:
		return TopicDeleteQuestion, true
	case KindAnswerQuestion:
		return TopicAnswerQuestion, true
	case KindRollbackAnswer:
		return TopicRollbackAnswer, true
	default:
		return "", false
	}
}

// Action is the tagged union over the vocabulary. The unexported marker keeps
// the set closed to this package.
type Action interface {
	Kind() Kind
	isAction()
}

type LoadQuestions struct{}

type LoadQuestionsSuccess struct {
	Questions []models.Question `json:"questions"`
}

type LoadQuestionsFailure struct {
	Error string `json:"error"`
}

type AddQuestion struct {
	Question models.Question `json:"question"`
}

type AddQuestionSuccess struct {
	Question models.Question `json:"question"`
}

type AddQuestionFailure struct {
	Error string `json:"error"`
}

type DeleteQuestion struct {
	ID string `json:"id"`
}

type DeleteQuestionSuccess struct {
	ID string `json:"id"`
}

type DeleteQuestionFailure struct {
	Error string `json:"error"`
}

type AnswerQuestion struct {
	ID     string        `json:"id"`
	Answer models.Answer `json:"answer"`
}

// AnswerQuestionSuccess carries the updated question, or nil when the id no
// longer exists and nothing was updated.
type AnswerQuestionSuccess struct {
	Question *models.Question `json:"question"`
}

type AnswerQuestionFailure struct {
	Error string `json:"error"`
}

type RollbackAnswer struct {
	ID string `json:"id"`
}

// RollbackAnswerSuccess carries the updated question, or nil when the id no
// longer exists and nothing was updated.
type RollbackAnswerSuccess struct {
	Question *models.Question `json:"question"`
}

type RollbackAnswerFailure struct {
	Error string `json:"error"`
}

func (LoadQuestions) Kind() Kind        { return KindLoadQuestions }
func (LoadQuestionsSuccess) Kind() Kind { return KindLoadQuestionsSuccess }
func (LoadQuestionsFailure) Kind() Kind { return KindLoadQuestionsFailure }

func (AddQuestion) Kind() Kind        { return KindAddQuestion }
func (AddQuestionSuccess) Kind() Kind { return KindAddQuestionSuccess }
func (AddQuestionFailure) Kind() Kind { return KindAddQuestionFailure }

func (DeleteQuestion) Kind() Kind        { return KindDeleteQuestion }
func (DeleteQuestionSuccess) Kind() Kind { return KindDeleteQuestionSuccess }
func (DeleteQuestionFailure) Kind() Kind { return KindDeleteQuestionFailure }

func (AnswerQuestion) Kind() Kind        { return KindAnswerQuestion }
func (AnswerQuestionSuccess) Kind() Kind { return KindAnswerQuestionSuccess }
func (AnswerQuestionFailure) Kind() Kind { return KindAnswerQuestionFailure }

func (RollbackAnswer) Kind() Kind        { return KindRollbackAnswer }
func (RollbackAnswerSuccess) Kind() Kind { return KindRollbackAnswerSuccess }
func (RollbackAnswerFailure) Kind() Kind { return KindRollbackAnswerFailure }

func (LoadQuestions) isAction()        {}
func (LoadQuestionsSuccess) isAction() {}
func (LoadQuestionsFailure) isAction() {}

func (AddQuestion) isAction()        {}
func (AddQuestionSuccess) isAction() {}
func (AddQuestionFailure) isAction() {}

func (DeleteQuestion) isAction()        {}
func (DeleteQuestionSuccess) isAction() {}
func (DeleteQuestionFailure) isAction() {}

func (AnswerQuestion) isAction()        {}
func (AnswerQuestionSuccess) isAction() {}
func (AnswerQuestionFailure) isAction() {}

func (RollbackAnswer) isAction()        {}
func (RollbackAnswerSuccess) isAction() {}
func (RollbackAnswerFailure) isAction() {}
