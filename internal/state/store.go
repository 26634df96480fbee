package state

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/Alpharn/questionnaire/internal/actions"
	"github.com/Alpharn/questionnaire/internal/utils"
)

// Store owns the application state. It consumes the results feed plus the add
// intent topic (the optimistic path) on a single goroutine, so reductions are
// strictly sequential and the state needs no further coordination beyond the
// snapshot lock.
type Store struct {
	mu     sync.RWMutex
	state  State
	logger utils.Logger
	done   chan struct{}
}

// NewStore subscribes to the result feed and starts the reduction loop. The
// loop stops when ctx is canceled or the subscriber closes.
func NewStore(ctx context.Context, sub message.Subscriber, logger utils.Logger) (*Store, error) {
	results, err := sub.Subscribe(ctx, actions.TopicResults)
	if err != nil {
		return nil, err
	}
	adds, err := sub.Subscribe(ctx, actions.TopicAddQuestion)
	if err != nil {
		return nil, err
	}

	s := &Store{
		logger: logger.With("component", "state"),
		done:   make(chan struct{}),
	}
	go s.run(results, adds)
	return s, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Done is closed once the reduction loop has exited.
func (s *Store) Done() <-chan struct{} {
	return s.done
}

func (s *Store) run(results, adds <-chan *message.Message) {
	defer close(s.done)

	for results != nil || adds != nil {
		var (
			msg *message.Message
			ok  bool
		)
		select {
		case msg, ok = <-results:
			if !ok {
				results = nil
				continue
			}
		case msg, ok = <-adds:
			if !ok {
				adds = nil
				continue
			}
		}
		s.apply(msg)
	}
}

func (s *Store) apply(msg *message.Message) {
	defer msg.Ack()

	action, err := actions.Unmarshal(msg)
	if err != nil {
		s.logger.LogError(err, "Dropping undecodable result message", "message_id", msg.UUID)
		return
	}

	s.mu.Lock()
	s.state = Reduce(s.state, action)
	s.mu.Unlock()

	s.logger.Debug("Applied action", "kind", action.Kind())
}
