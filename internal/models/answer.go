package models

import (
	"encoding/json"
	"fmt"
)

// Answer holds the answer to a question: a single value for single-choice and
// open-ended questions, a set of selected options for multiple-choice ones, or
// nothing at all. The zero value means "not answered".
//
// On the wire an answer is null, a JSON string or a JSON array of strings,
// matching the persisted storage layout.
type Answer struct {
	single   *string
	multiple []string
}

// SingleAnswer builds an answer holding one value.
func SingleAnswer(value string) Answer {
	return Answer{single: &value}
}

// MultipleAnswer builds an answer holding a set of selected options.
func MultipleAnswer(values ...string) Answer {
	return Answer{multiple: append([]string(nil), values...)}
}

// IsZero reports whether no answer is set.
func (a Answer) IsZero() bool {
	return a.single == nil && a.multiple == nil
}

// Single returns the single value and whether one is set.
func (a Answer) Single() (string, bool) {
	if a.single == nil {
		return "", false
	}
	return *a.single, true
}

// Selections returns the selected options of a multiple-choice answer.
func (a Answer) Selections() []string {
	return append([]string(nil), a.multiple...)
}

// Matches reports whether the answer's shape fits the given question type.
func (a Answer) Matches(t QuestionType) bool {
	switch t {
	case SingleChoice, OpenEnded:
		return a.single != nil && a.multiple == nil
	case MultipleChoice:
		return a.single == nil && a.multiple != nil
	default:
		return false
	}
}

// Equal reports value equality between two answers.
func (a Answer) Equal(b Answer) bool {
	if (a.single == nil) != (b.single == nil) {
		return false
	}
	if a.single != nil && *a.single != *b.single {
		return false
	}
	if (a.multiple == nil) != (b.multiple == nil) {
		return false
	}
	if len(a.multiple) != len(b.multiple) {
		return false
	}
	for i := range a.multiple {
		if a.multiple[i] != b.multiple[i] {
			return false
		}
	}
	return true
}

func (a Answer) clone() Answer {
	c := Answer{}
	if a.single != nil {
		v := *a.single
		c.single = &v
	}
	if a.multiple != nil {
		c.multiple = append([]string(nil), a.multiple...)
	}
	return c
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch {
	case a.multiple != nil:
		return json.Marshal(a.multiple)
	case a.single != nil:
		return json.Marshal(*a.single)
	default:
		return []byte("null"), nil
	}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	*a = Answer{}
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("invalid answer selections: %w", err)
		}
		if values == nil {
			values = []string{}
		}
		a.multiple = values
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("invalid answer value: %w", err)
	}
	a.single = &value
	return nil
}
