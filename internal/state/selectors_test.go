package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alpharn/questionnaire/internal/models"
)

func listState() State {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	oldest := models.Question{ID: "oldest", QuestionType: models.OpenEnded, CreatedAt: base}
	middle := models.Question{ID: "middle", QuestionType: models.OpenEnded, CreatedAt: base.Add(time.Hour), Answered: true, Answer: models.SingleAnswer("done")}
	newest := models.Question{ID: "newest", QuestionType: models.OpenEnded, CreatedAt: base.Add(2 * time.Hour)}
	return State{Questions: []models.Question{oldest, middle, newest}}
}

func TestAllQuestionsSortsNewestFirst(t *testing.T) {
	got := AllQuestions(listState())

	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].ID)
	assert.Equal(t, "middle", got[1].ID)
	assert.Equal(t, "oldest", got[2].ID)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt), "timestamps must be non-increasing")
	}
}

func TestAnsweredAndUnansweredFilters(t *testing.T) {
	s := listState()

	answered := AnsweredQuestions(s)
	require.Len(t, answered, 1)
	assert.Equal(t, "middle", answered[0].ID)

	unanswered := UnansweredQuestions(s)
	require.Len(t, unanswered, 2)
	assert.Equal(t, "newest", unanswered[0].ID)
	assert.Equal(t, "oldest", unanswered[1].ID)
}

func TestSortIsStableForEqualTimestamps(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := State{Questions: []models.Question{
		{ID: "first", QuestionType: models.OpenEnded, CreatedAt: ts},
		{ID: "second", QuestionType: models.OpenEnded, CreatedAt: ts},
		{ID: "third", QuestionType: models.OpenEnded, CreatedAt: ts},
	}}

	got := AllQuestions(s)

	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
	assert.Equal(t, "third", got[2].ID)
}

func TestQuestionByID(t *testing.T) {
	s := listState()

	found := QuestionByID(s, "middle")
	require.NotNil(t, found)
	assert.Equal(t, "middle", found.ID)

	assert.Nil(t, QuestionByID(s, "no-such-id"))
}

func TestSelectorsDoNotMutateState(t *testing.T) {
	s := listState()

	_ = AllQuestions(s)

	assert.Equal(t, "oldest", s.Questions[0].ID, "sorting must work on a copy")
}
