package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/on-the-ground/composable_go/config"
	"github.com/on-the-ground/composable_go/log"
)

type options[S any, A any] struct {
	middleware []Middleware[S, A]
	executor   *Executor
}

type Option[S any, A any] func(*options[S, A])

// WithMiddleware appends mw to the middleware chain, in order.
func WithMiddleware[S any, A any](mw ...Middleware[S, A]) Option[S, A] {
	return func(o *options[S, A]) {
		o.middleware = append(o.middleware, mw...)
	}
}

// WithExecutor makes Enqueue run on exec. The store does not close exec.
func WithExecutor[S any, A any](exec *Executor) Option[S, A] {
	return func(o *options[S, A]) {
		o.executor = exec
	}
}

// Store sequences middleware, reduction, effect resolution and change
// notification for a single Logic.
//
// Send is not safe for overlapping calls: the diff baseline is shared by
// every call. Use Enqueue when several goroutines produce actions.
type Store[S State[S, C], C any, A any] struct {
	id         string
	logic      Logic[S, A]
	middleware []Middleware[S, A]
	previous   S
	handlers   *registry[StateChangedInfo[S, C]]

	streamOnce sync.Once
	stream     *Stream[StateChangedInfo[S, C]]

	mu          sync.Mutex
	executor    *Executor
	ownExecutor bool
	disposed    atomic.Bool
}

// New calls newLogic once and snapshots its state as the diff baseline.
func New[S State[S, C], C any, A any](newLogic func() Logic[S, A], opts ...Option[S, A]) *Store[S, C, A] {
	o := options[S, A]{}
	for _, opt := range opts {
		opt(&o)
	}

	logic := newLogic()
	return &Store[S, C, A]{
		id:         uuid.New().String(),
		logic:      logic,
		middleware: o.middleware,
		previous:   logic.State().Copy(),
		handlers:   &registry[StateChangedInfo[S, C]]{},
		executor:   o.executor,
	}
}

// ID identifies the store in logs and partitions its queued sends.
func (s *Store[S, C, A]) ID() string {
	return s.id
}

// State returns the Logic's current state. Callers must not mutate it.
func (s *Store[S, C, A]) State() S {
	return s.logic.State()
}

// PreviousState returns a copy of the last published snapshot.
func (s *Store[S, C, A]) PreviousState() S {
	return s.previous.Copy()
}

// Send runs action through middleware and the Logic, then resolves the
// returned effect, following up actions until an effect yields none.
//
// Errors from middleware, the Logic and effect tasks are returned wrapped in
// MiddlewareError, ReductionError and EffectError. Panics raised by handlers
// are not recovered.
func (s *Store[S, C, A]) Send(ctx context.Context, action A) error {
	for {
		// a handler or task may dispose the store between iterations
		if s.disposed.Load() {
			return ErrDisposed
		}

		log.Effect(ctx, log.LogDebug, "dispatching action", map[string]interface{}{
			"store":  s.id,
			"action": fmt.Sprintf("%T", action),
		})

		effect, err := s.reduce(ctx, action)
		if err != nil {
			return err
		}

		if effect == nil || effect.Task == nil {
			s.publish(ctx)
			return nil
		}

		if effect.DispatchChanged {
			s.publish(ctx)
			if s.disposed.Load() {
				return ErrDisposed
			}
		}

		next, ok, err := effect.Task(ctx, s.Send)
		if err != nil {
			log.Effect(ctx, log.LogDebug, "effect failed", map[string]interface{}{
				"store": s.id,
				"error": err,
			})
			return &EffectError{Err: err}
		}

		if !ok {
			s.publish(ctx)
			return nil
		}
		action = next
	}
}

func (s *Store[S, C, A]) reduce(ctx context.Context, action A) (*Effect[A], error) {
	processed, err := runMiddleware(ctx, s.middleware, action, s.logic.State)
	if err != nil {
		return nil, err
	}

	effect, err := s.logic.Reduce(ctx, processed)
	if err != nil {
		return nil, &ReductionError{Err: err}
	}
	return effect, nil
}

// publish notifies handlers if the state differs from the last published snapshot.
func (s *Store[S, C, A]) publish(ctx context.Context) {
	state := s.logic.State()
	changes := state.Diff(s.previous)
	if len(changes) == 0 {
		return
	}

	info := newStateChangedInfo(s.previous.Copy(), state.Copy(), changes)
	s.previous = state.Copy()

	log.Effect(ctx, log.LogDebug, "state changed", map[string]interface{}{
		"store":   s.id,
		"changes": len(changes),
	})
	s.handlers.publish(info)
}

// AddHandler registers handler for every published notification.
// Handlers are called in registration order on the goroutine running Send.
func (s *Store[S, C, A]) AddHandler(handler func(StateChangedInfo[S, C])) *Subscription {
	return s.handlers.add(handler)
}

// Stream returns the broadcast view of the store's notifications.
func (s *Store[S, C, A]) Stream() *Stream[StateChangedInfo[S, C]] {
	s.streamOnce.Do(func() {
		s.stream = newStream(s.handlers)
	})
	return s.stream
}

// Enqueue runs Send on the store's Executor. Enqueued sends never overlap
// each other; the returned channel yields Send's error once it has run.
//
// Without WithExecutor, the store starts a single-worker Executor on first use
// and closes it on Dispose.
func (s *Store[S, C, A]) Enqueue(ctx context.Context, action A) <-chan Result {
	exec, err := s.executorForEnqueue()
	if err != nil {
		resultCh := make(chan Result, 1)
		resultCh <- Result{Err: err}
		return resultCh
	}
	return exec.Do(ctx, s.id, func(ctx context.Context) error {
		return s.Send(ctx, action)
	})
}

func (s *Store[S, C, A]) executorForEnqueue() (*Executor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed.Load() {
		return nil, ErrDisposed
	}
	if s.executor == nil {
		s.executor = NewExecutor(context.Background(), config.Default().Executor)
		s.ownExecutor = true
	}
	return s.executor, nil
}

// Dispose disposes the Logic exactly once. Handler registrations are left to
// their owners.
//
// An Executor the store started for Enqueue is closed in the background, so
// Dispose may be called from a handler or task running on that Executor.
func (s *Store[S, C, A]) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.disposed.CompareAndSwap(false, true) {
		return
	}
	s.logic.Dispose()
	if s.ownExecutor {
		go s.executor.Close()
	}
}
