package models

import (
	"time"
)

// QuestionType determines how a question is answered and whether it carries
// answer options.
type QuestionType string

const (
	SingleChoice   QuestionType = "single"
	MultipleChoice QuestionType = "multiple"
	OpenEnded      QuestionType = "open"
)

// IsValid reports whether the type is one of the known question types.
func (t QuestionType) IsValid() bool {
	switch t {
	case SingleChoice, MultipleChoice, OpenEnded:
		return true
	default:
		return false
	}
}

// HasOptions reports whether questions of this type carry an option list.
func (t QuestionType) HasOptions() bool {
	return t == SingleChoice || t == MultipleChoice
}

// Question is a single authored question together with its current answer
// state. The JSON layout is the persisted storage layout.
type Question struct {
	ID           string       `json:"id"`
	QuestionText string       `json:"questionText" validate:"required"`
	QuestionType QuestionType `json:"questionType" validate:"required,oneof=single multiple open"`
	Options      []string     `json:"options"`
	Answer       Answer       `json:"answer"`
	Answered     bool         `json:"answered"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Clone returns a deep copy so callers can hand questions across component
// boundaries without sharing option or answer slices.
func (q Question) Clone() Question {
	c := q
	if q.Options != nil {
		c.Options = append([]string(nil), q.Options...)
	}
	c.Answer = q.Answer.clone()
	return c
}
