// Package state holds the single authoritative application state: the
// question list and the last operation failure. The state changes only by
// running result messages through the pure reducer.
package state

import (
	"github.com/Alpharn/questionnaire/internal/apperrors"
	"github.com/Alpharn/questionnaire/internal/models"
)

// State is the authoritative in-memory application state.
type State struct {
	Questions []models.Question
	Err       *apperrors.OperationError
}

// Clone returns a deep copy safe to hand outside the store.
func (s State) Clone() State {
	c := State{}
	if s.Questions != nil {
		c.Questions = make([]models.Question, len(s.Questions))
		for i, q := range s.Questions {
			c.Questions[i] = q.Clone()
		}
	}
	if s.Err != nil {
		e := *s.Err
		c.Err = &e
	}
	return c
}
