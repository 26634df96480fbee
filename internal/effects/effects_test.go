package effects

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Alpharn/questionnaire/internal/actions"
	"github.com/Alpharn/questionnaire/internal/apperrors"
	"github.com/Alpharn/questionnaire/internal/models"
	"github.com/Alpharn/questionnaire/internal/utils"
)

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) List(ctx context.Context) ([]models.Question, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) Upsert(ctx context.Context, question models.Question) (*models.Question, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) SetAnswer(ctx context.Context, id string, answer models.Answer) (*models.Question, error) {
	args := m.Called(ctx, id, answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) ClearAnswer(ctx context.Context, id string) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

type pipeline struct {
	pubsub  *gochannel.GoChannel
	results <-chan *message.Message
	navs    <-chan *message.Message
}

func newPipeline(t *testing.T, repo *MockQuestionRepository) *pipeline {
	t.Helper()

	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	logger := utils.NewSlogLogger(slogger)
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(slogger))

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(slogger))
	require.NoError(t, err)
	Register(router, pubsub, pubsub, repo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		router.Close()
		pubsub.Close()
	})

	results, err := pubsub.Subscribe(ctx, actions.TopicResults)
	require.NoError(t, err)
	navs, err := pubsub.Subscribe(ctx, actions.TopicNavigation)
	require.NoError(t, err)

	go func() { _ = router.Run(ctx) }()
	<-router.Running()

	return &pipeline{pubsub: pubsub, results: results, navs: navs}
}

func (p *pipeline) dispatch(t *testing.T, action actions.Action) {
	t.Helper()
	topic, ok := actions.IntentTopic(action.Kind())
	require.True(t, ok)
	msg, err := actions.Marshal(action)
	require.NoError(t, err)
	require.NoError(t, p.pubsub.Publish(topic, msg))
}

func (p *pipeline) nextResult(t *testing.T) actions.Action {
	t.Helper()
	select {
	case msg := <-p.results:
		msg.Ack()
		action, err := actions.Unmarshal(msg)
		require.NoError(t, err)
		return action
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a result message")
		return nil
	}
}

func TestLoadIntentProducesSuccess(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("List", mock.Anything).Return([]models.Question{
		{ID: "q1", QuestionText: "one", QuestionType: models.OpenEnded},
		{ID: "q2", QuestionText: "two", QuestionType: models.OpenEnded},
	}, nil)

	p := newPipeline(t, repo)
	p.dispatch(t, actions.LoadQuestions{})

	result, ok := p.nextResult(t).(actions.LoadQuestionsSuccess)
	require.True(t, ok, "expected a load success")
	assert.Len(t, result.Questions, 2)
	repo.AssertExpectations(t)
}

func TestAddIntentProducesSuccessAndNavigation(t *testing.T) {
	stored := models.Question{ID: "q1", QuestionText: "one", QuestionType: models.OpenEnded}
	repo := new(MockQuestionRepository)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(&stored, nil)

	p := newPipeline(t, repo)
	p.dispatch(t, actions.AddQuestion{Question: stored})

	result, ok := p.nextResult(t).(actions.AddQuestionSuccess)
	require.True(t, ok, "expected an add success")
	assert.Equal(t, "q1", result.Question.ID)

	select {
	case msg := <-p.navs:
		msg.Ack()
		var nav Navigation
		require.NoError(t, json.Unmarshal(msg.Payload, &nav))
		assert.Equal(t, RouteQuestionList, nav.Route)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the navigation notice")
	}
}

func TestAddIntentMapsErrorToFailure(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil, apperrors.ErrTooFewOptions)

	p := newPipeline(t, repo)
	p.dispatch(t, actions.AddQuestion{Question: models.Question{QuestionText: "bad", QuestionType: models.SingleChoice}})

	result, ok := p.nextResult(t).(actions.AddQuestionFailure)
	require.True(t, ok, "expected an add failure")
	assert.Equal(t, apperrors.ErrTooFewOptions.Error(), result.Error)
}

func TestDeleteIntentProducesSuccess(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("Remove", mock.Anything, "q1").Return(nil)

	p := newPipeline(t, repo)
	p.dispatch(t, actions.DeleteQuestion{ID: "q1"})

	result, ok := p.nextResult(t).(actions.DeleteQuestionSuccess)
	require.True(t, ok, "expected a delete success")
	assert.Equal(t, "q1", result.ID)
}

func TestAnswerIntentForMissingQuestionProducesEmptySuccess(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("SetAnswer", mock.Anything, "gone", mock.Anything).Return(nil, apperrors.ErrQuestionNotFound)

	p := newPipeline(t, repo)
	p.dispatch(t, actions.AnswerQuestion{ID: "gone", Answer: models.SingleAnswer("yes")})

	result, ok := p.nextResult(t).(actions.AnswerQuestionSuccess)
	require.True(t, ok, "a missing id is an empty success, not a failure")
	assert.Nil(t, result.Question)
}

func TestRollbackIntentMapsErrorToFailure(t *testing.T) {
	repo := new(MockQuestionRepository)
	repo.On("ClearAnswer", mock.Anything, "q1").Return(nil, errors.New("storage broke"))

	p := newPipeline(t, repo)
	p.dispatch(t, actions.RollbackAnswer{ID: "q1"})

	result, ok := p.nextResult(t).(actions.RollbackAnswerFailure)
	require.True(t, ok, "expected a rollback failure")
	assert.Equal(t, "storage broke", result.Error)
}
