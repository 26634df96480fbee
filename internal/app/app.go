// Package app assembles the whole pipeline into one application context: the
// persistence gateway, the repository, the effect router and the state store.
// The container is explicit and passed by reference; there are no package
// level singletons anywhere in the module.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"github.com/Alpharn/questionnaire/internal/actions"
	"github.com/Alpharn/questionnaire/internal/config"
	"github.com/Alpharn/questionnaire/internal/effects"
	"github.com/Alpharn/questionnaire/internal/models"
	"github.com/Alpharn/questionnaire/internal/repositories"
	"github.com/Alpharn/questionnaire/internal/services"
	"github.com/Alpharn/questionnaire/internal/state"
	"github.com/Alpharn/questionnaire/internal/storage"
	"github.com/Alpharn/questionnaire/internal/utils"
	"github.com/Alpharn/questionnaire/internal/validator"
)

// ErrMissingID is returned when an operation that targets an existing
// question is called without an id.
var ErrMissingID = errors.New("question id is required")

// App owns every component of the question pipeline and exposes the
// UI-facing commands: dispatching intents and reading derived views.
type App struct {
	cfg    *config.Config
	logger utils.Logger

	store        storage.Store
	repo         repositories.QuestionRepository
	validator    *validator.Validator
	importExport services.ImportExportService

	pubsub *gochannel.GoChannel
	router *message.Router
	state  *state.Store

	nav    chan effects.Navigation
	cancel context.CancelFunc
}

// New wires the application together and dispatches the initial load. The
// returned App must be closed to release the storage backend.
func New(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (*App, error) {
	logger := utils.NewSlogLogger(slogger)
	wmLogger := watermill.NewSlogLogger(slogger)

	store, err := cfg.Storage.CreateStore(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	v := validator.New()
	repo, err := repositories.NewQuestionRepository(ctx, store, v, logger)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	appCtx, cancel := context.WithCancel(ctx)
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		cancel()
		store.Close()
		return nil, fmt.Errorf("failed to create router: %w", err)
	}
	effects.Register(router, pubsub, pubsub, repo, logger)

	// Subscriptions must exist before the first intent goes out; the channel
	// pub/sub does not replay messages to late subscribers.
	stateStore, err := state.NewStore(appCtx, pubsub, logger)
	if err != nil {
		cancel()
		store.Close()
		return nil, fmt.Errorf("failed to create state store: %w", err)
	}
	navMsgs, err := pubsub.Subscribe(appCtx, actions.TopicNavigation)
	if err != nil {
		cancel()
		store.Close()
		return nil, fmt.Errorf("failed to subscribe to navigation notices: %w", err)
	}

	a := &App{
		cfg:          cfg,
		logger:       logger.With("component", "app"),
		store:        store,
		repo:         repo,
		validator:    v,
		importExport: services.NewImportExportService(repo, logger),
		pubsub:       pubsub,
		router:       router,
		state:        stateStore,
		nav:          make(chan effects.Navigation, 16),
		cancel:       cancel,
	}
	go a.forwardNavigations(navMsgs)

	go func() {
		if err := router.Run(appCtx); err != nil {
			a.logger.LogError(err, "Effect router stopped")
		}
	}()
	<-router.Running()

	if err := a.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// ===== COMMANDS =====

// Load re-reads the repository snapshot into the state store.
func (a *App) Load(ctx context.Context) error {
	return a.Dispatch(ctx, actions.LoadQuestions{})
}

// CreateQuestion builds a new question and dispatches the add intent. The
// question is validated here as well, so an invalid form never reaches the
// optimistic state update; the repository re-checks the same invariants.
func (a *App) CreateQuestion(ctx context.Context, text string, questionType models.QuestionType, options []string) (models.Question, error) {
	question := models.Question{
		ID:           uuid.NewString(),
		QuestionText: text,
		QuestionType: questionType,
		Options:      options,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.validator.ValidateQuestion(&question); err != nil {
		return models.Question{}, err
	}
	return question, a.Dispatch(ctx, actions.AddQuestion{Question: question})
}

// EditQuestion updates an existing question in place. Changing the type
// adjusts the option list and answer downstream in the repository.
func (a *App) EditQuestion(ctx context.Context, question models.Question) error {
	if question.ID == "" {
		return ErrMissingID
	}
	return a.Dispatch(ctx, actions.AddQuestion{Question: question})
}

func (a *App) DeleteQuestion(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	return a.Dispatch(ctx, actions.DeleteQuestion{ID: id})
}

func (a *App) AnswerQuestion(ctx context.Context, id string, answer models.Answer) error {
	if id == "" {
		return ErrMissingID
	}
	return a.Dispatch(ctx, actions.AnswerQuestion{ID: id, Answer: answer})
}

func (a *App) RollbackAnswer(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	return a.Dispatch(ctx, actions.RollbackAnswer{ID: id})
}

// Dispatch publishes an intent to its topic. Result handling is asynchronous;
// the error only covers handing the intent to the pipeline.
func (a *App) Dispatch(ctx context.Context, action actions.Action) error {
	topic, ok := actions.IntentTopic(action.Kind())
	if !ok {
		return fmt.Errorf("action %s is not a dispatchable intent", action.Kind())
	}
	msg, err := actions.Marshal(action)
	if err != nil {
		return err
	}
	msg.SetContext(ctx)
	return a.pubsub.Publish(topic, msg)
}

// ===== VIEWS =====

// State returns a deep copy of the current application state.
func (a *App) State() state.State {
	return a.state.Snapshot()
}

// Questions returns all questions, newest first.
func (a *App) Questions() []models.Question {
	return state.AllQuestions(a.state.Snapshot())
}

// Answered returns answered questions, newest first.
func (a *App) Answered() []models.Question {
	return state.AnsweredQuestions(a.state.Snapshot())
}

// Unanswered returns unanswered questions, newest first.
func (a *App) Unanswered() []models.Question {
	return state.UnansweredQuestions(a.state.Snapshot())
}

// QuestionByID returns the question with the given id, or nil.
func (a *App) QuestionByID(id string) *models.Question {
	return state.QuestionByID(a.state.Snapshot(), id)
}

// Navigations exposes the post-add navigation notices for the UI layer.
func (a *App) Navigations() <-chan effects.Navigation {
	return a.nav
}

// ImportExport returns the spreadsheet import/export service.
func (a *App) ImportExport() services.ImportExportService {
	return a.importExport
}

// Close stops the pipeline and releases the storage backend.
func (a *App) Close() error {
	a.cancel()
	err := a.router.Close()
	if closeErr := a.pubsub.Close(); err == nil {
		err = closeErr
	}
	<-a.state.Done()
	if closeErr := a.store.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (a *App) forwardNavigations(msgs <-chan *message.Message) {
	for msg := range msgs {
		var nav effects.Navigation
		if err := json.Unmarshal(msg.Payload, &nav); err != nil {
			a.logger.LogError(err, "Dropping undecodable navigation notice")
			msg.Ack()
			continue
		}
		select {
		case a.nav <- nav:
		default:
			a.logger.Warn("Navigation notice dropped, no listener keeping up")
		}
		msg.Ack()
	}
}
