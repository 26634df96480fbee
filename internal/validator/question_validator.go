package validator

import (
	"fmt"

	"github.com/Alpharn/questionnaire/internal/apperrors"
	"github.com/Alpharn/questionnaire/internal/models"
)

// QuestionValidator handles question-specific validation
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion validates a complete question object against the entity
// invariants: known type, option list matching the type, and a coherent
// answer when one is present.
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if question.QuestionText == "" {
		return apperrors.ErrEmptyQuestionText
	}
	if !question.QuestionType.IsValid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidQuestionType, question.QuestionType)
	}

	switch {
	case question.QuestionType.HasOptions() && len(question.Options) < 2:
		return apperrors.ErrTooFewOptions
	case !question.QuestionType.HasOptions() && len(question.Options) > 0:
		return apperrors.ErrOptionsNotAllowed
	}

	// answered must track the presence of an answer
	if question.Answered == question.Answer.IsZero() {
		return apperrors.ErrAnsweredInconsistent
	}

	if !question.Answer.IsZero() {
		return v.ValidateAnswer(question, question.Answer)
	}
	return nil
}

// ValidateAnswer validates an answer against the question's type and options.
func (v *QuestionValidator) ValidateAnswer(question *models.Question, answer models.Answer) error {
	if !answer.Matches(question.QuestionType) {
		return apperrors.ErrAnswerTypeMismatch
	}

	switch question.QuestionType {
	case models.SingleChoice:
		value, _ := answer.Single()
		if !containsOption(question.Options, value) {
			return fmt.Errorf("%w: %q", apperrors.ErrUnknownOption, value)
		}
	case models.MultipleChoice:
		selections := answer.Selections()
		if len(selections) < 2 {
			return apperrors.ErrTooFewSelections
		}
		for _, s := range selections {
			if !containsOption(question.Options, s) {
				return fmt.Errorf("%w: %q", apperrors.ErrUnknownOption, s)
			}
		}
	case models.OpenEnded:
		// Any text is acceptable.
	}
	return nil
}

func containsOption(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
