// Package effects hosts the asynchronous mediators between intents and the
// repository. Every intent topic gets exactly one handler; each handler
// invokes the matching repository operation and publishes the success or
// failure result on the shared results feed. Failures never nack a message,
// so nothing is retried.
package effects

import (
	"encoding/json"
	"errors"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/Alpharn/questionnaire/internal/actions"
	"github.com/Alpharn/questionnaire/internal/apperrors"
	"github.com/Alpharn/questionnaire/internal/repositories"
	"github.com/Alpharn/questionnaire/internal/utils"
)

// RouteQuestionList is where the UI is sent after a question was added.
const RouteQuestionList = "/questions"

// Navigation is the post-success notice published after an add so the UI
// layer can move back to the listing view.
type Navigation struct {
	Route string `json:"route"`
}

type handlers struct {
	repo   repositories.QuestionRepository
	pub    message.Publisher
	logger utils.Logger
}

// Register binds one handler per intent topic. Results are published to the
// results feed by the router; the navigation notice is published out of band
// by the add handler itself.
func Register(router *message.Router, sub message.Subscriber, pub message.Publisher, repo repositories.QuestionRepository, logger utils.Logger) {
	h := &handlers{repo: repo, pub: pub, logger: logger.With("component", "effects")}

	router.AddHandler("load_questions", actions.TopicLoadQuestions, sub, actions.TopicResults, pub, h.handleLoad)
	router.AddHandler("add_question", actions.TopicAddQuestion, sub, actions.TopicResults, pub, h.handleAdd)
	router.AddHandler("delete_question", actions.TopicDeleteQuestion, sub, actions.TopicResults, pub, h.handleDelete)
	router.AddHandler("answer_question", actions.TopicAnswerQuestion, sub, actions.TopicResults, pub, h.handleAnswer)
	router.AddHandler("rollback_answer", actions.TopicRollbackAnswer, sub, actions.TopicResults, pub, h.handleRollback)
}

func (h *handlers) handleLoad(msg *message.Message) ([]*message.Message, error) {
	if _, ok := h.decode(msg).(actions.LoadQuestions); !ok {
		return nil, nil
	}

	questions, err := h.repo.List(msg.Context())
	if err != nil {
		return h.result(actions.LoadQuestionsFailure{Error: err.Error()})
	}
	return h.result(actions.LoadQuestionsSuccess{Questions: questions})
}

func (h *handlers) handleAdd(msg *message.Message) ([]*message.Message, error) {
	intent, ok := h.decode(msg).(actions.AddQuestion)
	if !ok {
		return nil, nil
	}

	stored, err := h.repo.Upsert(msg.Context(), intent.Question)
	if err != nil {
		return h.result(actions.AddQuestionFailure{Error: err.Error()})
	}

	h.notifyNavigation()
	return h.result(actions.AddQuestionSuccess{Question: *stored})
}

func (h *handlers) handleDelete(msg *message.Message) ([]*message.Message, error) {
	intent, ok := h.decode(msg).(actions.DeleteQuestion)
	if !ok {
		return nil, nil
	}

	if err := h.repo.Remove(msg.Context(), intent.ID); err != nil {
		return h.result(actions.DeleteQuestionFailure{Error: err.Error()})
	}
	return h.result(actions.DeleteQuestionSuccess{ID: intent.ID})
}

func (h *handlers) handleAnswer(msg *message.Message) ([]*message.Message, error) {
	intent, ok := h.decode(msg).(actions.AnswerQuestion)
	if !ok {
		return nil, nil
	}

	updated, err := h.repo.SetAnswer(msg.Context(), intent.ID, intent.Answer)
	if errors.Is(err, apperrors.ErrQuestionNotFound) {
		// Nothing to update; an empty success payload is a reducer no-op.
		return h.result(actions.AnswerQuestionSuccess{})
	}
	if err != nil {
		return h.result(actions.AnswerQuestionFailure{Error: err.Error()})
	}
	return h.result(actions.AnswerQuestionSuccess{Question: updated})
}

func (h *handlers) handleRollback(msg *message.Message) ([]*message.Message, error) {
	intent, ok := h.decode(msg).(actions.RollbackAnswer)
	if !ok {
		return nil, nil
	}

	updated, err := h.repo.ClearAnswer(msg.Context(), intent.ID)
	if errors.Is(err, apperrors.ErrQuestionNotFound) {
		return h.result(actions.RollbackAnswerSuccess{})
	}
	if err != nil {
		return h.result(actions.RollbackAnswerFailure{Error: err.Error()})
	}
	return h.result(actions.RollbackAnswerSuccess{Question: updated})
}

// decode unwraps an intent message, dropping undecodable ones instead of
// letting the router retry them.
func (h *handlers) decode(msg *message.Message) actions.Action {
	action, err := actions.Unmarshal(msg)
	if err != nil {
		h.logger.LogError(err, "Dropping undecodable intent message", "message_id", msg.UUID)
		return nil
	}
	return action
}

func (h *handlers) result(action actions.Action) ([]*message.Message, error) {
	msg, err := actions.Marshal(action)
	if err != nil {
		h.logger.LogError(err, "Failed to marshal result action", "kind", action.Kind())
		return nil, nil
	}
	return []*message.Message{msg}, nil
}

func (h *handlers) notifyNavigation() {
	payload, err := json.Marshal(Navigation{Route: RouteQuestionList})
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := h.pub.Publish(actions.TopicNavigation, msg); err != nil {
		h.logger.LogError(err, "Failed to publish navigation notice")
	}
}
