package storage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alpharn/questionnaire/internal/models"
	"github.com/Alpharn/questionnaire/internal/utils"
)

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sampleQuestions() []models.Question {
	now := time.Now().UTC()
	return []models.Question{
		{
			ID:           "q1",
			QuestionText: "Pick one",
			QuestionType: models.SingleChoice,
			Options:      []string{"A", "B"},
			Answer:       models.SingleAnswer("A"),
			Answered:     true,
			CreatedAt:    now,
		},
		{
			ID:           "q2",
			QuestionText: "Anything on your mind?",
			QuestionType: models.OpenEnded,
			CreatedAt:    now.Add(-time.Hour),
		},
	}
}

func requireSameQuestions(t *testing.T, want, got []models.Question) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].QuestionText, got[i].QuestionText)
		assert.Equal(t, want[i].QuestionType, got[i].QuestionType)
		assert.Equal(t, want[i].Options, got[i].Options)
		assert.True(t, want[i].Answer.Equal(got[i].Answer), "answer mismatch for %s", want[i].ID)
		assert.Equal(t, want[i].Answered, got[i].Answered)
		assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt), "createdAt mismatch for %s", want[i].ID)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "questions.json"), "", testLogger())
	ctx := context.Background()

	questions := sampleQuestions()
	require.NoError(t, store.Save(ctx, questions))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	requireSameQuestions(t, questions, loaded)
}

func TestFileStoreRoundTripEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "questions.json"), "", testLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, nil))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileStoreMissingFileLoadsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"), "", testLogger())

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileStoreMalformedFileLoadsEmpty(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(filename, []byte("definitely not json"), 0644))

	store := NewFileStore(filename, "", testLogger())
	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileStoreMalformedCollectionLoadsEmpty(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(filename, []byte(`{"questions": "garbage"}`), 0644))

	store := NewFileStore(filename, "", testLogger())
	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileStorePreservesOtherKeys(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(filename, []byte(`{"settings": {"theme": "dark"}}`), 0644))

	store := NewFileStore(filename, "", testLogger())
	require.NoError(t, store.Save(context.Background(), sampleQuestions()))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"settings"`)
	assert.Contains(t, string(data), `"dark"`)
}
