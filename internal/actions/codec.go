package actions

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// MetadataKind is the message metadata key carrying the action kind.
const MetadataKind = "kind"

// Marshal encodes an action into a watermill message: JSON payload plus the
// kind as a metadata header.
func Marshal(action Action) (*message.Message, error) {
	payload, err := json.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s action: %w", action.Kind(), err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataKind, string(action.Kind()))
	return msg, nil
}

// Unmarshal decodes a message back into its action. The switch covers the
// whole vocabulary; an unknown kind is an error, never a silent skip.
func Unmarshal(msg *message.Message) (Action, error) {
	kind := Kind(msg.Metadata.Get(MetadataKind))

	var (
		action Action
		err    error
	)
	switch kind {
	case KindLoadQuestions:
		action, err = decode[LoadQuestions](msg)
	case KindLoadQuestionsSuccess:
		action, err = decode[LoadQuestionsSuccess](msg)
	case KindLoadQuestionsFailure:
		action, err = decode[LoadQuestionsFailure](msg)
	case KindAddQuestion:
		action, err = decode[AddQuestion](msg)
	case KindAddQuestionSuccess:
		action, err = decode[AddQuestionSuccess](msg)
	case KindAddQuestionFailure:
		action, err = decode[AddQuestionFailure](msg)
	case KindDeleteQuestion:
		action, err = decode[DeleteQuestion](msg)
	case KindDeleteQuestionSuccess:
		action, err = decode[DeleteQuestionSuccess](msg)
	case KindDeleteQuestionFailure:
		action, err = decode[DeleteQuestionFailure](msg)
	case KindAnswerQuestion:
		action, err = decode[AnswerQuestion](msg)
	case KindAnswerQuestionSuccess:
		action, err = decode[AnswerQuestionSuccess](msg)
	case KindAnswerQuestionFailure:
		action, err = decode[AnswerQuestionFailure](msg)
	case KindRollbackAnswer:
		action, err = decode[RollbackAnswer](msg)
	case KindRollbackAnswerSuccess:
		action, err = decode[RollbackAnswerSuccess](msg)
	case KindRollbackAnswerFailure:
		action, err = decode[RollbackAnswerFailure](msg)
	default:
		return nil, fmt.Errorf("unknown action kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return action, nil
}

func decode[T Action](msg *message.Message) (Action, error) {
	var action T
	if err := json.Unmarshal(msg.Payload, &action); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s action: %w", action.Kind(), err)
	}
	return action, nil
}
