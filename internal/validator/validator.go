package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Alpharn/questionnaire/internal/apperrors"
	"github.com/Alpharn/questionnaire/internal/models"
)

// Validator combines struct-tag validation with the question business rules.
// It is the single place entity invariants are enforced; form-level checks in
// a UI may duplicate these rules for usability but never replace them.
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Report json tag names instead of Go field names in errors.
	structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return ve
		}
		return err
	}
	return nil
}

// ValidateQuestion performs complete question validation (struct tags plus
// type-specific business rules).
func (v *Validator) ValidateQuestion(question *models.Question) error {
	if err := v.ValidateStruct(question); err != nil {
		return err
	}
	return v.questionValidator.ValidateQuestion(question)
}

// ValidateAnswer validates an answer against the question it is meant for.
func (v *Validator) ValidateAnswer(question *models.Question, answer models.Answer) error {
	return v.questionValidator.ValidateAnswer(question, answer)
}

// Question returns the question validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}
