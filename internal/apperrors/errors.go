package apperrors

import (
	"errors"
	"fmt"
)

// ===== QUESTION ERRORS =====

var (
	ErrQuestionNotFound = errors.New("question not found")

	// Entity invariants enforced by the repository.
	ErrEmptyQuestionText    = errors.New("question text is required")
	ErrInvalidQuestionType  = errors.New("invalid question type")
	ErrTooFewOptions        = errors.New("choice questions require at least two options")
	ErrOptionsNotAllowed    = errors.New("open-ended questions cannot have options")
	ErrAnswerTypeMismatch   = errors.New("answer does not match question type")
	ErrTooFewSelections     = errors.New("multiple-choice answers require at least two selections")
	ErrUnknownOption        = errors.New("answer refers to an option the question does not have")
	ErrAnsweredInconsistent = errors.New("answered flag does not match answer presence")
)

// Op names the operation an error originated from. The set mirrors the action
// vocabulary: one value per intent.
type Op string

const (
	OpLoad     Op = "load"
	OpAdd      Op = "add"
	OpDelete   Op = "delete"
	OpAnswer   Op = "answer"
	OpRollback Op = "rollback"
)

// OperationError is the failure surfaced in application state after an
// operation goes wrong. The message is kept as opaque text because failure
// actions cross a serialization boundary.
type OperationError struct {
	Op      Op     `json:"op"`
	Message string `json:"message"`
}

func NewOperationError(op Op, message string) *OperationError {
	return &OperationError{Op: op, Message: message}
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}
